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

import "testing"

// TestSelect_VersionDispatch verifies the one-time adapter decision: legacy
// below the pivot and on unknown versions, modern at or above it.
func TestSelect_VersionDispatch(t *testing.T) {
	table := NewMemTable()
	cases := []struct {
		name       string
		version    string
		wantLegacy bool
	}{
		{"below pivot", "2.6.14", true},
		{"well below pivot", "1.0", true},
		{"unknown version is the safe default", "", true},
		{"at pivot", "3.0", false},
		{"above pivot", "3.0.1", false},
		{"far above pivot", "10.2", false},
	}
	for _, c := range cases {
		store, err := Select(SelectorConfig{PlatformVersion: c.version, Table: table})
		if err != nil {
			t.Fatalf("%s: unexpected: %v", c.name, err)
		}
		_, isLegacy := store.(*Legacy)
		if isLegacy != c.wantLegacy {
			t.Fatalf("%s: legacy=%v, want %v", c.name, isLegacy, c.wantLegacy)
		}
	}
}

// TestSelect_CustomPivot verifies the pivot override.
func TestSelect_CustomPivot(t *testing.T) {
	store, err := Select(SelectorConfig{PlatformVersion: "3.5", ModernSince: "4.0", Table: NewMemTable()})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, ok := store.(*Legacy); !ok {
		t.Fatalf("3.5 must be legacy under a 4.0 pivot")
	}
}

// TestSelect_LegacyWithoutTable verifies the misconfiguration is surfaced at
// startup rather than as a nil dereference later.
func TestSelect_LegacyWithoutTable(t *testing.T) {
	if _, err := Select(SelectorConfig{PlatformVersion: ""}); err == nil {
		t.Fatalf("expected error when legacy adapter has no table")
	}
}
