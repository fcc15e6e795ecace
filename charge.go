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

// ChargeStatus is the raw status string reported by the payment network for
// a charge attempt.
type ChargeStatus string

const (
	ChargeStatusPending    ChargeStatus = "PENDING"
	ChargeStatusDue        ChargeStatus = "DUE"
	ChargeStatusReserved   ChargeStatus = "RESERVED"
	ChargeStatusProcessing ChargeStatus = "PROCESSING"
	ChargeStatusCharged    ChargeStatus = "CHARGED"
	ChargeStatusFailed     ChargeStatus = "FAILED"
	ChargeStatusCancelled  ChargeStatus = "CANCELLED"
	ChargeStatusRefunded   ChargeStatus = "REFUNDED"
)

// Charge is the transient charge-result value arriving from a payment-network
// callback. It is a subset of the upstream webhook body and is never
// persisted as its own record; its fields are flattened into order and
// subscription metadata by the lifecycle operations.
type Charge struct {
	ID                 string       `json:"id"`
	Status             ChargeStatus `json:"status"`
	FailureReason      string       `json:"failureReason,omitempty"`
	FailureDescription string       `json:"failureDescription,omitempty"`
	TransactionID      string       `json:"transactionId,omitempty"`
}
