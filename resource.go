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

import "context"

// Resource is the narrow contract every billable entity (order, subscription,
// product) must satisfy. Meta and SetMeta operate on the entity's own
// attribute bag; Save persists any buffered attribute writes where the
// backing store requires an explicit flush.
//
// The charge lifecycle depends only on this interface; it never inspects the
// concrete entity type.
type Resource interface {
	// ID returns the canonical numeric identifier of the entity.
	ID() int64
	// Meta returns the value of a named attribute. Unset keys return "".
	Meta(key string) string
	// SetMeta writes a named attribute. The write may be buffered in memory
	// until Save is called, depending on the host's backing store.
	SetMeta(key, value string)
	// Save persists the entity, flushing buffered attribute writes.
	Save(ctx context.Context) error
}

// Order extends Resource with the renewal predicate and the
// subscription-linkage queries supplied by the host order-management system.
type Order interface {
	Resource

	// IsRenewal reports whether the order represents a subsequent billing
	// cycle of an existing subscription, as opposed to an origination order.
	IsRenewal() bool
	// RenewalSubscriptions returns the subscription(s) this order renews.
	RenewalSubscriptions() []Resource
	// OriginSubscriptions returns the subscription(s) created by this order.
	OriginSubscriptions() []Resource
}

// identifiable matches entities exposing their id through an accessor.
type identifiable interface {
	ID() int64
}

// getIdentifiable matches entities using the alternate accessor spelling
// found on some host types.
type getIdentifiable interface {
	GetID() int64
}

// ResolveID returns the canonical identifier of an entity: via its accessor
// when one is available, otherwise by treating the value as a raw identifier.
// Unknown shapes resolve to 0, which the legacy metadata table treats as an
// unaddressable entity.
func ResolveID(entity any) int64 {
	switch e := entity.(type) {
	case identifiable:
		return e.ID()
	case getIdentifiable:
		return e.GetID()
	case int64:
		return e
	case int:
		return int64(e)
	default:
		return 0
	}
}

// LinkedSubscriptions resolves the subscription set associated with an order:
// the renewal-source subscriptions when the order is a renewal, otherwise the
// subscriptions originated by the order. An order with no linked
// subscriptions yields an empty slice, never an error; callers must treat the
// empty set as "skip subscription work".
func LinkedSubscriptions(order Order) []Resource {
	if order == nil {
		return nil
	}
	if order.IsRenewal() {
		return order.RenewalSubscriptions()
	}
	return order.OriginSubscriptions()
}
