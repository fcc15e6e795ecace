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

package chargeflow

import "time"

// rfc3339Zulu is the timestamp layout the payment network expects: RFC 3339
// in UTC with a literal Z and no fractional seconds.
const rfc3339Zulu = "2006-01-02T15:04:05Z"

// IsValidPhoneNumber reports whether a phone number is acceptable to the
// payment network: between 8 and 16 characters.
func IsValidPhoneNumber(phoneNumber string) bool {
	return len(phoneNumber) >= 8 && len(phoneNumber) <= 16
}

// FormatRFC3339 renders a time in the network's RFC 3339 Zulu layout.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(rfc3339Zulu)
}

// ParseRFC3339ToUnix converts an RFC 3339 timestamp string from the network
// into a Unix timestamp.
func ParseRFC3339ToUnix(date string) (int64, error) {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
