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

// Metadata keys for charge state on an order.
const (
	MetaChargeFailed            = "_recurring_failed_charge"
	MetaChargeFailedReason      = "_recurring_failed_charge_reason"
	MetaChargeFailedDescription = "_recurring_failed_charge_description"
	MetaChargeCaptured          = "_recurring_captured"
	MetaChargePending           = "_recurring_pending_charge"
	MetaChargeID                = "_charge_id"
	MetaChargeLatestStatus      = "_recurring_latest_api_status"
)

// Metadata keys for payment agreements.
const (
	MetaAgreementID              = "_agreement_id"
	MetaAgreementConfirmationURL = "_agreement_confirmation_url"
)

// Metadata keys for orders.
const (
	MetaOrderStockReduced   = "_order_stock_reduced"
	MetaOrderPaymentMethod  = "_payment_method"
	MetaOrderTransactionID  = "_transaction_id"
	MetaOrderInitial        = "_recurring_initial"
	MetaOrderZeroAmount     = "_recurring_zero_amount"
	MetaOrderIdempotencyKey = "_idempotency_key"
)

// Metadata keys for subscriptions. The latest-failed-charge pair mirrors the
// order's failure detail so reporting tools can read it without walking the
// order linkage.
const (
	MetaSubscriptionLatestFailedChargeReason      = "_recurring_latest_failed_charge_reason"
	MetaSubscriptionLatestFailedChargeDescription = "_recurring_latest_failed_charge_description"
)

// Metadata keys for products.
const (
	MetaProductDirectCapture     = "_recurring_direct_capture"
	MetaProductDescriptionSource = "_recurring_product_description_source"
	MetaProductDescriptionText   = "_recurring_product_description_text"
)

// Boolean meta encoding. The legacy table stores everything as strings, so
// flags are written as "1"/"0" and anything empty or "0" reads as false.
const (
	metaTrue  = "1"
	metaFalse = "0"
)

func metaTruthy(v string) bool {
	return v != "" && v != metaFalse && v != "false"
}
