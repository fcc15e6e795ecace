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

// Package meta contains the adapter-equivalence tests: both MetaStore
// implementations must be observationally identical to their callers.
package meta

import (
	"context"
	"errors"
	"testing"

	"chargeflow"
)

// bagEntity is a minimal Resource with an in-object attribute bag.
type bagEntity struct {
	id  int64
	bag map[string]string
}

func newBagEntity(id int64) *bagEntity {
	return &bagEntity{id: id, bag: make(map[string]string)}
}

func (e *bagEntity) ID() int64                  { return e.id }
func (e *bagEntity) Meta(key string) string     { return e.bag[key] }
func (e *bagEntity) SetMeta(key, value string)  { e.bag[key] = value }
func (e *bagEntity) Save(context.Context) error { return nil }

// failingTable returns a fixed error from every operation.
type failingTable struct{ err error }

func (f failingTable) Get(context.Context, int64, string) (string, error) { return "", f.err }
func (f failingTable) Set(context.Context, int64, string, string) error   { return f.err }

// TestAdapters_SetThenGet verifies the shared contract on both adapters:
// Set followed by Get returns the last-set value, unset keys read as "", and
// a write touches only its own key.
func TestAdapters_SetThenGet(t *testing.T) {
	ctx := context.Background()
	stores := map[string]chargeflow.MetaStore{
		"modern": Modern{},
		"legacy": NewLegacy(NewMemTable()),
	}

	for name, store := range stores {
		entity := newBagEntity(42)

		got, err := store.Get(ctx, entity, "_charge_id")
		if err != nil {
			t.Fatalf("%s: unexpected: %v", name, err)
		}
		if got != "" {
			t.Fatalf("%s: unset key must read empty, got %q", name, got)
		}

		if err := store.Set(ctx, entity, "_charge_id", "chr-1"); err != nil {
			t.Fatalf("%s: unexpected: %v", name, err)
		}
		if err := store.Set(ctx, entity, "_charge_id", "chr-2"); err != nil {
			t.Fatalf("%s: unexpected: %v", name, err)
		}
		got, err = store.Get(ctx, entity, "_charge_id")
		if err != nil {
			t.Fatalf("%s: unexpected: %v", name, err)
		}
		if got != "chr-2" {
			t.Fatalf("%s: expected last-set value, got %q", name, got)
		}

		// Neighboring keys stay untouched.
		got, err = store.Get(ctx, entity, "_agreement_id")
		if err != nil {
			t.Fatalf("%s: unexpected: %v", name, err)
		}
		if got != "" {
			t.Fatalf("%s: neighboring key leaked a value: %q", name, got)
		}
	}
}

// TestLegacy_AddressesByResolvedID verifies the legacy adapter goes through
// the numeric identifier, not the entity's own bag: two entities with the
// same id share rows, and the bag stays empty.
func TestLegacy_AddressesByResolvedID(t *testing.T) {
	ctx := context.Background()
	table := NewMemTable()
	store := NewLegacy(table)

	a := newBagEntity(7)
	b := newBagEntity(7) // same id, different object

	if err := store.Set(ctx, a, "_charge_id", "chr-1"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	got, err := store.Get(ctx, b, "_charge_id")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != "chr-1" {
		t.Fatalf("same-id entity must observe the write, got %q", got)
	}
	if len(a.bag) != 0 {
		t.Fatalf("legacy adapter must not touch the attribute bag; bag=%v", a.bag)
	}
}

// TestLegacy_WrapsTableErrors verifies table failures surface to the caller
// with context attached.
func TestLegacy_WrapsTableErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	store := NewLegacy(failingTable{err: boom})
	entity := newBagEntity(7)

	if _, err := store.Get(ctx, entity, "_charge_id"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped table error, got %v", err)
	}
	if err := store.Set(ctx, entity, "_charge_id", "x"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped table error, got %v", err)
	}
}

// TestMemTable_IsolatesRows verifies per-id row isolation.
func TestMemTable_IsolatesRows(t *testing.T) {
	ctx := context.Background()
	table := NewMemTable()

	if err := table.Set(ctx, 1, "_charge_id", "chr-1"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	got, err := table.Get(ctx, 2, "_charge_id")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != "" {
		t.Fatalf("row isolation violated: got %q", got)
	}
}
