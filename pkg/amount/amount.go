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

// Package amount converts between decimal monetary amounts and the integer
// minor-unit amounts (cents, øre) used for network-level payment requests.
package amount

import (
	"fmt"
	"math"
)

// Config carries the host's currency formatting convention. It replaces the
// host's global settings bag: construct a Codec with it once and pass the
// Codec around.
type Config struct {
	// PriceDecimals is the number of decimal places the host displays prices
	// with. Negative values fall back to the default of 2.
	PriceDecimals int
}

const defaultPriceDecimals = 2

// Codec converts decimal amounts using a fixed currency precision.
type Codec struct {
	decimals int
}

// New returns a Codec for the given configuration.
func New(cfg Config) Codec {
	d := cfg.PriceDecimals
	if d < 0 {
		d = defaultPriceDecimals
	}
	return Codec{decimals: d}
}

// ToMinorUnits converts a decimal amount into an integer minor-unit amount:
// multiply by 100, round to the configured price decimals, take the absolute
// value and truncate. The result is never negative; a negative input is
// treated as its absolute value. Callers must not rely on sign preservation.
func (c Codec) ToMinorUnits(total float64) int64 {
	v := roundTo(total*100, c.decimals)
	if v < 0 {
		v = -v
	}
	return int64(v)
}

// BalanceTransaction is the structured balance record exposed by the payment
// network, with its net amount in minor units.
type BalanceTransaction struct {
	Net int64 `json:"net"`
}

// FormatBalance renders a balance record's net minor-unit amount as a fixed
// two-decimal string. The amount is not used in calculations, so a string is
// sufficient. Inputs that are not a structured balance record yield "",
// never a panic, so malformed webhook payloads cannot take the caller down.
func FormatBalance(balance any) string {
	switch b := balance.(type) {
	case BalanceTransaction:
		return formatNet(b.Net)
	case *BalanceTransaction:
		if b == nil {
			return ""
		}
		return formatNet(b.Net)
	case map[string]any:
		// JSON-decoded payloads arrive as generic maps.
		switch n := b["net"].(type) {
		case float64:
			return formatNet(int64(n))
		case int64:
			return formatNet(n)
		case int:
			return formatNet(int64(n))
		default:
			return ""
		}
	default:
		return ""
	}
}

func formatNet(net int64) string {
	return fmt.Sprintf("%.2f", float64(net)/100)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
