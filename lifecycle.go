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

// Package chargeflow tracks the payment lifecycle of a recurring charge
// attached to an order and its linked subscription(s). It owns the
// four-state charge machine (idle, awaiting capture, failed, and the
// not-pending sub-state reached after a reversal) and the propagation of
// failure detail onto the owning subscription, persisted through a
// version-tolerant key/value metadata layer rather than a dedicated schema.
package chargeflow

import (
	"context"

	"github.com/google/uuid"
)

// MetaStore is the uniform attribute read/write contract the lifecycle uses
// for every entity. Two semantically identical implementations exist: a
// legacy adapter addressing a global key/value table by the entity's numeric
// id, and a modern adapter using the entity's own attribute bag. Which one is
// in effect is decided once per process by a host-version predicate.
//
// Set followed by Get with the same key must return the last-set value, and
// unset keys must yield "" rather than an error. Implementations perform no
// side effects beyond the single attribute access; persisting the entity
// afterwards (where the backing store buffers writes) is the caller's job.
type MetaStore interface {
	Get(ctx context.Context, r Resource, key string) (string, error)
	Set(ctx context.Context, r Resource, key, value string) error
}

// Lifecycle is the charge state machine. All mutating entry points operate on
// a single order and delegate every read and write to the configured
// MetaStore. None of the operations catch storage errors: if the store fails,
// the error surfaces to the enclosing callback handler, which owns retry
// policy for the delivery.
//
// Invariants maintained across operations:
//   - captured == pending outside the failure transition; the two flags are
//     always set and cleared together.
//   - failed == true implies pending == false and captured == false.
//   - exactly one charge id is associated with the current attempt; a new
//     MarkPending overwrites it.
//
// Concurrent mutation of the same order must be serialized by the caller;
// the lifecycle itself holds no locks (one payment callback at a time per
// order, per the payment network's idempotency key).
type Lifecycle struct {
	meta MetaStore
}

// NewLifecycle returns a Lifecycle backed by the given metadata store.
func NewLifecycle(meta MetaStore) *Lifecycle {
	return &Lifecycle{meta: meta}
}

// MarkPending records the start (or duplicate delivery) of a charge attempt:
// pending and captured are raised together and the charge id is overwritten.
// Calling it twice with the same charge id is a no-op in effect.
func (l *Lifecycle) MarkPending(ctx context.Context, order Resource, chargeID string) error {
	if err := l.meta.Set(ctx, order, MetaChargePending, metaTrue); err != nil {
		return err
	}
	if err := l.meta.Set(ctx, order, MetaChargeCaptured, metaTrue); err != nil {
		return err
	}
	return l.meta.Set(ctx, order, MetaChargeID, chargeID)
}

// MarkNotPending clears pending and captured together, leaving the charge id
// and the failed flag untouched. Used after a reversal or cancellation.
func (l *Lifecycle) MarkNotPending(ctx context.Context, order Resource) error {
	if err := l.meta.Set(ctx, order, MetaChargePending, metaFalse); err != nil {
		return err
	}
	return l.meta.Set(ctx, order, MetaChargeCaptured, metaFalse)
}

// MarkFailed moves the order to the failed state: pending and captured are
// cleared first, then the failed flag is raised, then the charge's failure
// detail is recorded on the order and mirrored onto its first linked
// subscription. The order and that subscription are saved before returning.
//
// Missing failure reason or description fields on the charge are simply not
// written; partial detail is acceptable.
func (l *Lifecycle) MarkFailed(ctx context.Context, order Order, ch Charge) error {
	if err := l.MarkNotPending(ctx, order); err != nil {
		return err
	}
	if err := l.meta.Set(ctx, order, MetaChargeFailed, metaTrue); err != nil {
		return err
	}
	return l.setFailureReasons(ctx, order, ch)
}

// MarkNotFailed clears the failed flag and re-enters the awaiting-capture
// state under the given charge id. Used when a retried charge succeeds after
// a prior failure.
func (l *Lifecycle) MarkNotFailed(ctx context.Context, order Resource, chargeID string) error {
	if err := l.meta.Set(ctx, order, MetaChargeFailed, metaFalse); err != nil {
		return err
	}
	return l.MarkPending(ctx, order, chargeID)
}

// setFailureReasons copies the charge's failure detail onto the order and
// onto the first subscription linked to it, then persists both. Orders with
// no linked subscriptions (an origination order not yet converted) skip the
// mirroring entirely.
//
// Only the first subscription receives the mirrored detail when several are
// linked. The order save and the subscription save are two sequential writes
// with no transaction around them; the order remains the source of truth if
// a crash lands between the two.
func (l *Lifecycle) setFailureReasons(ctx context.Context, order Order, ch Charge) error {
	var sub Resource
	if subs := LinkedSubscriptions(order); len(subs) > 0 {
		sub = subs[0]
	}

	if ch.FailureReason != "" {
		if err := l.meta.Set(ctx, order, MetaChargeFailedReason, ch.FailureReason); err != nil {
			return err
		}
		if sub != nil {
			// Mirrored on the subscription too; useful for sheet-style
			// reporting tools that only look at subscriptions.
			if err := l.meta.Set(ctx, sub, MetaSubscriptionLatestFailedChargeReason, ch.FailureReason); err != nil {
				return err
			}
		}
	}

	if ch.FailureDescription != "" {
		if err := l.meta.Set(ctx, order, MetaChargeFailedDescription, ch.FailureDescription); err != nil {
			return err
		}
		if sub != nil {
			if err := l.meta.Set(ctx, sub, MetaSubscriptionLatestFailedChargeDescription, ch.FailureDescription); err != nil {
				return err
			}
		}
	}

	if err := order.Save(ctx); err != nil {
		return err
	}
	if sub != nil {
		return sub.Save(ctx)
	}
	return nil
}

// IsPending reports whether a charge attempt is awaiting capture.
func (l *Lifecycle) IsPending(ctx context.Context, order Resource) (bool, error) {
	v, err := l.meta.Get(ctx, order, MetaChargePending)
	return metaTruthy(v), err
}

// IsCaptured reports whether the current charge attempt has been captured.
func (l *Lifecycle) IsCaptured(ctx context.Context, order Resource) (bool, error) {
	v, err := l.meta.Get(ctx, order, MetaChargeCaptured)
	return metaTruthy(v), err
}

// IsFailed reports whether the order's latest charge attempt failed.
func (l *Lifecycle) IsFailed(ctx context.Context, order Resource) (bool, error) {
	v, err := l.meta.Get(ctx, order, MetaChargeFailed)
	return metaTruthy(v), err
}

// ChargeID returns the charge id associated with the order's current attempt.
func (l *Lifecycle) ChargeID(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaChargeID)
}

// FailureReason returns the machine-readable reason of the last failure.
func (l *Lifecycle) FailureReason(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaChargeFailedReason)
}

// FailureDescription returns the human-readable detail of the last failure.
func (l *Lifecycle) FailureDescription(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaChargeFailedDescription)
}

// LatestAPIStatus returns the raw status string last reported by the payment
// network for this order. Diagnostic only; never consulted by transitions.
func (l *Lifecycle) LatestAPIStatus(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaChargeLatestStatus)
}

// SetLatestAPIStatus caches the raw API status string. Settable at any time
// regardless of the current state.
func (l *Lifecycle) SetLatestAPIStatus(ctx context.Context, order Resource, status string) error {
	return l.meta.Set(ctx, order, MetaChargeLatestStatus, status)
}

// AgreementID returns the recurring-payment agreement id recorded on the
// order. Immutable once set.
func (l *Lifecycle) AgreementID(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaAgreementID)
}

// PaymentMethod returns the payment method identifier recorded on the order,
// or "" when the order was placed through an unrecorded channel.
func (l *Lifecycle) PaymentMethod(ctx context.Context, order Resource) (string, error) {
	return l.meta.Get(ctx, order, MetaOrderPaymentMethod)
}

// TransactionID returns the payment transaction id recorded on the order, or
// "" when none has been recorded. A stored integer zero counts as unset.
func (l *Lifecycle) TransactionID(ctx context.Context, order Resource) (string, error) {
	v, err := l.meta.Get(ctx, order, MetaOrderTransactionID)
	if err != nil {
		return "", err
	}
	if v == "0" {
		return "", nil
	}
	return v, nil
}

// SetTransactionID records the payment transaction id on the order.
func (l *Lifecycle) SetTransactionID(ctx context.Context, order Resource, transactionID string) error {
	return l.meta.Set(ctx, order, MetaOrderTransactionID, transactionID)
}

// IsStockReduced reports whether stock levels have already been adjusted for
// the order. The adjustment itself belongs to the host order-management
// system; this is only the bookkeeping flag it maintains.
func (l *Lifecycle) IsStockReduced(ctx context.Context, order Resource) (bool, error) {
	v, err := l.meta.Get(ctx, order, MetaOrderStockReduced)
	return metaTruthy(v), err
}

// EnsureIdempotencyKey returns the order's idempotency key, minting and
// recording one when the order has none yet. The payment network uses this
// key to deduplicate repeated charge attempts for the same billing cycle.
func (l *Lifecycle) EnsureIdempotencyKey(ctx context.Context, order Resource) (string, error) {
	key, err := l.meta.Get(ctx, order, MetaOrderIdempotencyKey)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	key = uuid.NewString()
	if err := l.meta.Set(ctx, order, MetaOrderIdempotencyKey, key); err != nil {
		return "", err
	}
	return key, nil
}

// ProductDescription selects the description used when presenting a
// recurring product to the payment network: the product name by default, the
// short description or a custom text when the product's meta says so.
func (l *Lifecycle) ProductDescription(ctx context.Context, product Resource, name, shortDescription string) (string, error) {
	source, err := l.meta.Get(ctx, product, MetaProductDescriptionSource)
	if err != nil {
		return "", err
	}

	description := name
	if source == "short_description" {
		description = shortDescription
	}

	custom, err := l.meta.Get(ctx, product, MetaProductDescriptionText)
	if err != nil {
		return "", err
	}
	if source == "custom" && custom != "" {
		description = custom
	}
	return description, nil
}
