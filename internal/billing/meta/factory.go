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
	"errors"

	"chargeflow"
	"chargeflow/internal/platform"
)

// defaultModernSince is the first host platform version whose entities carry
// their own attribute bag. Older hosts only offer the global key/value table.
const defaultModernSince = "3.0"

// SelectorConfig carries the inputs for the one-time adapter decision. It
// replaces ad hoc version checks at every call site: evaluate once at
// startup, then hand the chosen store to everything else.
type SelectorConfig struct {
	// PlatformVersion is the host platform's version string. Empty means the
	// version could not be determined, which selects the legacy adapter.
	PlatformVersion string
	// ModernSince overrides the version pivot. Empty uses the default.
	ModernSince string
	// Table backs the legacy adapter. Required whenever the legacy adapter
	// can be chosen.
	Table Table
}

// Select returns the metadata store matching the host platform: the legacy
// global-table adapter for hosts before the pivot (or of unknown version),
// the modern attribute-bag adapter otherwise.
func Select(cfg SelectorConfig) (chargeflow.MetaStore, error) {
	pivot := cfg.ModernSince
	if pivot == "" {
		pivot = defaultModernSince
	}
	if platform.IsBefore(cfg.PlatformVersion, pivot) {
		if cfg.Table == nil {
			return nil, errors.New("legacy metadata adapter selected but no table configured")
		}
		return NewLegacy(cfg.Table), nil
	}
	return Modern{}, nil
}
