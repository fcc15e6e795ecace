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

// Package api implements the charge-callback HTTP surface: the endpoint a
// payment network delivers charge outcomes to. It translates callback
// payloads into charge lifecycle transitions and returns a retryable error
// status whenever the metadata store fails, leaving redelivery to the
// network. Signature verification of deliveries is owned upstream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"chargeflow"
	"chargeflow/internal/billing/telemetry"
)

// ErrOrderNotFound is returned by OrderLocator implementations when no order
// matches the callback's order reference.
var ErrOrderNotFound = errors.New("order not found")

// OrderLocator resolves the order a charge callback refers to. Supplied by
// the host order-management system.
type OrderLocator interface {
	FindOrder(ctx context.Context, id int64) (chargeflow.Order, error)
}

// Server handles charge-result callbacks.
type Server struct {
	lifecycle *chargeflow.Lifecycle
	orders    OrderLocator
	logger    *log.Logger
}

// NewServer returns a callback server over the given lifecycle and locator.
func NewServer(lifecycle *chargeflow.Lifecycle, orders OrderLocator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{lifecycle: lifecycle, orders: orders, logger: logger}
}

// chargeCallback is the delivery body: the order reference plus the charge
// subset of the upstream webhook payload.
type chargeCallback struct {
	OrderID int64             `json:"orderId"`
	Charge  chargeflow.Charge `json:"charge"`
}

// Routes builds the router for the callback surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/callbacks/charge", s.handleChargeCallback)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleChargeCallback applies one charge outcome to its order. Duplicate
// deliveries are safe: repeated MarkPending/MarkFailed calls for the same
// charge are idempotent in effect.
func (s *Server) handleChargeCallback(w http.ResponseWriter, r *http.Request) {
	var cb chargeCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload: " + err.Error()})
		return
	}
	if cb.OrderID <= 0 || cb.Charge.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "orderId and charge.id are required"})
		return
	}

	ctx := r.Context()
	order, err := s.orders.FindOrder(ctx, cb.OrderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown order"})
			return
		}
		s.fail(w, "locate order", cb, err)
		return
	}

	status := chargeflow.ChargeStatus(strings.ToUpper(string(cb.Charge.Status)))
	if err := s.lifecycle.SetLatestAPIStatus(ctx, order, string(status)); err != nil {
		s.fail(w, "record api status", cb, err)
		return
	}

	switch status {
	case chargeflow.ChargeStatusFailed:
		if err := s.lifecycle.MarkFailed(ctx, order, cb.Charge); err != nil {
			s.fail(w, "mark failed", cb, err)
			return
		}
		telemetry.ObserveTransition("failed")
		if len(chargeflow.LinkedSubscriptions(order)) > 0 {
			telemetry.ObservePropagation()
		}

	case chargeflow.ChargeStatusCancelled, chargeflow.ChargeStatusRefunded:
		if err := s.lifecycle.MarkNotPending(ctx, order); err != nil {
			s.fail(w, "mark not pending", cb, err)
			return
		}
		if err := order.Save(ctx); err != nil {
			s.fail(w, "save order", cb, err)
			return
		}
		telemetry.ObserveTransition("not_pending")

	default:
		// PENDING, DUE, RESERVED, PROCESSING, CHARGED: the attempt is live.
		failed, err := s.lifecycle.IsFailed(ctx, order)
		if err != nil {
			s.fail(w, "read failed flag", cb, err)
			return
		}
		if failed {
			err = s.lifecycle.MarkNotFailed(ctx, order, cb.Charge.ID)
		} else {
			err = s.lifecycle.MarkPending(ctx, order, cb.Charge.ID)
		}
		if err != nil {
			s.fail(w, "mark pending", cb, err)
			return
		}
		if cb.Charge.TransactionID != "" {
			if err := s.lifecycle.SetTransactionID(ctx, order, cb.Charge.TransactionID); err != nil {
				s.fail(w, "record transaction id", cb, err)
				return
			}
		}
		if err := order.Save(ctx); err != nil {
			s.fail(w, "save order", cb, err)
			return
		}
		// Counted only once the transition is applied and saved; a failed
		// delivery is redelivered and must not inflate the counter.
		if failed {
			telemetry.ObserveTransition("not_failed")
		} else {
			telemetry.ObserveTransition("pending")
		}
	}

	s.logger.WithFields(log.Fields{
		"order_id":  cb.OrderID,
		"charge_id": cb.Charge.ID,
		"status":    string(status),
	}).Info("charge callback applied")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail reports a storage-layer error to the payment network as a retryable
// server error. The network redelivers the callback; the partial attribute
// writes are safe to repeat.
func (s *Server) fail(w http.ResponseWriter, op string, cb chargeCallback, err error) {
	telemetry.ObserveStoreError()
	s.logger.WithFields(log.Fields{
		"order_id":  cb.OrderID,
		"charge_id": cb.Charge.ID,
	}).WithError(err).Error("charge callback failed: " + op)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": op + ": " + err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ListenAndServe starts the HTTP server on the specified address with the
// usual production timeouts.
func (s *Server) ListenAndServe(addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.logger.WithField("addr", addr).Info("charge callback server listening")
	return httpServer.ListenAndServe()
}
