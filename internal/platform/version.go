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

// Package platform answers version-compatibility questions about the host
// order-management platform. The answers drive one-time decisions (adapter
// selection at startup); nothing here is consulted on hot paths.
package platform

import (
	"strconv"
	"strings"
)

// Compare compares two dotted-numeric version strings segment by segment.
// Missing segments count as zero, so "3.0" equals "3.0.0". Non-numeric
// segment content is ignored beyond its leading digits ("2.0-beta" reads as
// "2.0"). Returns -1, 0 or 1.
func Compare(a, b string) int {
	as := segments(a)
	bs := segments(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

// IsBefore reports whether the host platform version is strictly lower than
// the pivot. An empty version means the host version could not be determined;
// that reads as "before" so callers fall back to the legacy behavior, which
// is the safe default on unknown platforms.
func IsBefore(version, pivot string) bool {
	if version == "" {
		return true
	}
	return Compare(version, pivot) < 0
}

func segments(v string) []int {
	parts := strings.Split(strings.TrimSpace(v), ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		digits := p
		for i, r := range p {
			if r < '0' || r > '9' {
				digits = p[:i]
				break
			}
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}
