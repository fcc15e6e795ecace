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

// Package main runs the charge-callback demo service.
//
// It wires the full stack the library is meant to live in:
//  1. Metadata store selection (legacy global table vs. modern attribute bag)
//     from the host platform version.
//  2. The charge lifecycle state machine over that store.
//  3. The HTTP callback endpoint a payment network would deliver charge
//     outcomes to.
//  4. Opt-in Prometheus transition metrics and graceful shutdown.
//
// Orders are held in an in-process demo locator so the service runs without
// a host order-management system. Point redis_addr at a real Redis to give
// the legacy table durable storage.
//
// Try it:
//
//	curl -X POST localhost:8080/callbacks/charge \
//	  -d '{"orderId":1,"charge":{"id":"chr-1","status":"RESERVED"}}'
//	curl -X POST localhost:8080/callbacks/charge \
//	  -d '{"orderId":1,"charge":{"id":"chr-1","status":"FAILED","failureReason":"insufficient_funds"}}'
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"chargeflow"
	"chargeflow/internal/billing/api"
	"chargeflow/internal/billing/meta"
	"chargeflow/internal/billing/telemetry"
)

func main() {
	// Configuration knobs. The platform version decides the metadata adapter
	// once at startup; everything downstream is oblivious to the choice.
	httpAddr := flag.String("http_addr", ":8080", "HTTP listen address for the callback endpoint")
	platformVersion := flag.String("platform_version", "", "Host platform version string; empty selects the legacy metadata adapter")
	modernSince := flag.String("modern_since", "", "First platform version with in-object attribute bags (default 3.0)")
	redisAddr := flag.String("redis_addr", "", "Redis address backing the legacy metadata table; empty uses an in-memory table")
	metricsEnabled := flag.Bool("metrics", false, "Enable Prometheus transition metrics")
	metricsAddr := flag.String("metrics_addr", "", "If non-empty, expose Prometheus /metrics on this address (e.g., :9090)")
	flag.Parse()

	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
	logger := log.StandardLogger()

	telemetry.Enable(telemetry.Config{
		Enabled:     *metricsEnabled,
		MetricsAddr: *metricsAddr,
	})

	// Legacy table backing: real Redis when an address is given, in-memory
	// otherwise so the demo runs without infrastructure.
	var table meta.Table
	if *redisAddr != "" {
		table = meta.NewRedisTable(meta.NewGoRedisHasher(*redisAddr))
	} else {
		table = meta.NewMemTable()
	}

	store, err := meta.Select(meta.SelectorConfig{
		PlatformVersion: *platformVersion,
		ModernSince:     *modernSince,
		Table:           table,
	})
	if err != nil {
		logger.WithError(err).Fatal("metadata adapter selection failed")
	}

	lifecycle := chargeflow.NewLifecycle(store)
	server := api.NewServer(lifecycle, newDemoLocator(), logger)

	httpServer := &http.Server{
		Addr:         *httpAddr,
		Handler:      server.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("addr", *httpAddr).Info("charge callback server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("could not listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server shutdown failed")
	}
	logger.Info("server stopped")
}

// demoOrder is a minimal in-process order. Its attribute bag makes it usable
// with the modern adapter, and its numeric id with the legacy one.
type demoOrder struct {
	id  int64
	mu  sync.Mutex
	bag map[string]string
}

func (o *demoOrder) ID() int64 { return o.id }

func (o *demoOrder) Meta(key string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bag[key]
}

func (o *demoOrder) SetMeta(key, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bag[key] = value
}

func (o *demoOrder) Save(context.Context) error { return nil }

func (o *demoOrder) IsRenewal() bool { return false }

func (o *demoOrder) RenewalSubscriptions() []chargeflow.Resource { return nil }

func (o *demoOrder) OriginSubscriptions() []chargeflow.Resource { return nil }

// demoLocator hands out demo orders, creating them on first reference so any
// orderId in a callback resolves.
type demoLocator struct {
	mu     sync.Mutex
	orders map[int64]*demoOrder
}

func newDemoLocator() *demoLocator {
	return &demoLocator{orders: make(map[int64]*demoOrder)}
}

func (d *demoLocator) FindOrder(_ context.Context, id int64) (chargeflow.Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o, ok := d.orders[id]
	if !ok {
		o = &demoOrder{id: id, bag: make(map[string]string)}
		d.orders[id] = o
	}
	return o, nil
}
