// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package meta

import (
	"context"
	"sync"
)

// MemTable is an in-process Table. It backs the legacy adapter in tests and
// in dependency-free demo runs, the same way the demo persisters let the
// rate-limiter demo run without infrastructure. Safe for concurrent use.
type MemTable struct {
	mu   sync.RWMutex
	rows map[int64]map[string]string
}

// NewMemTable returns an empty in-memory table.
func NewMemTable() *MemTable {
	return &MemTable{rows: make(map[int64]map[string]string)}
}

func (t *MemTable) Get(ctx context.Context, id int64, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows[id][key], nil
}

func (t *MemTable) Set(ctx context.Context, id int64, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		row = make(map[string]string)
		t.rows[id] = row
	}
	row[key] = value
	return nil
}
