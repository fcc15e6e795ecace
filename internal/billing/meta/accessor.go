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

// Package meta provides the two chargeflow.MetaStore implementations: the
// modern adapter backed by the entity's own attribute bag, and the legacy
// adapter backed by a global key/value table addressed by numeric entity id.
//
// Both are semantically identical (Set followed by Get returns the last-set
// value, unset keys read as ""), so the rest of the system never knows
// which one is in effect. Select picks one per process from the host
// platform's version string.
package meta

import (
	"context"
	"fmt"

	"chargeflow"
)

// Modern reads and writes attributes through the entity's own accessor and
// mutator. Writes are buffered in the entity until the caller saves it, so
// these operations themselves cannot fail.
type Modern struct{}

func (Modern) Get(_ context.Context, r chargeflow.Resource, key string) (string, error) {
	return r.Meta(key), nil
}

func (Modern) Set(_ context.Context, r chargeflow.Resource, key, value string) error {
	r.SetMeta(key, value)
	return nil
}

// Table abstracts the minimal surface of the legacy global metadata table:
// one row per (entity id, key) pair. Implementations may wrap Redis or any
// equivalent store.
type Table interface {
	Get(ctx context.Context, id int64, key string) (string, error)
	Set(ctx context.Context, id int64, key, value string) error
}

// Legacy addresses the global table using the entity's numeric identifier
// rather than the entity object itself. Writes hit the table directly; the
// host's Save is a no-op on this path but callers still invoke it so the two
// adapters stay interchangeable.
type Legacy struct {
	table Table
}

// NewLegacy returns a legacy adapter over the given table.
func NewLegacy(table Table) *Legacy {
	return &Legacy{table: table}
}

func (l *Legacy) Get(ctx context.Context, r chargeflow.Resource, key string) (string, error) {
	v, err := l.table.Get(ctx, chargeflow.ResolveID(r), key)
	if err != nil {
		return "", fmt.Errorf("legacy meta get %q: %w", key, err)
	}
	return v, nil
}

func (l *Legacy) Set(ctx context.Context, r chargeflow.Resource, key, value string) error {
	if err := l.table.Set(ctx, chargeflow.ResolveID(r), key, value); err != nil {
		return fmt.Errorf("legacy meta set %q: %w", key, err)
	}
	return nil
}
