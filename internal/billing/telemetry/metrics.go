// Package telemetry provides opt-in Prometheus metrics for charge lifecycle
// activity. When disabled, all public functions are no-ops so call sites can
// stay unconditional.
package telemetry

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls the telemetry module.
//
// MetricsAddr, when non-empty, starts a dedicated HTTP server serving
// /metrics. If you already expose Prometheus elsewhere, leave it empty and
// register promhttp yourself.
type Config struct {
	Enabled     bool
	MetricsAddr string
}

var modEnabled atomic.Bool

// Prometheus metrics. Transition label only, no unbounded cardinality.
var (
	transitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chargeflow_transitions_total",
		Help: "Total charge state transitions applied, by transition kind",
	}, []string{"transition"})
	propagationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chargeflow_failure_propagations_total",
		Help: "Total failure transitions that mirrored detail onto a subscription",
	})
	storeErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chargeflow_meta_store_errors_total",
		Help: "Total metadata store errors surfaced to the callback handler",
	})
)

func init() {
	// Register eagerly. Harmless if no Prometheus endpoint is ever exposed.
	prometheus.MustRegister(transitionsTotal, propagationsTotal, storeErrorsTotal)
}

// Enable configures the module. Safe to call multiple times.
func Enable(cfg Config) {
	modEnabled.Store(cfg.Enabled)
	if cfg.Enabled && cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			_ = http.ListenAndServe(cfg.MetricsAddr, mux)
		}()
	}
}

// ObserveTransition records one applied state transition.
func ObserveTransition(transition string) {
	if !modEnabled.Load() {
		return
	}
	transitionsTotal.WithLabelValues(transition).Inc()
}

// ObservePropagation records one subscription mirror write.
func ObservePropagation() {
	if !modEnabled.Load() {
		return
	}
	propagationsTotal.Inc()
}

// ObserveStoreError records one storage error returned to the caller.
func ObserveStoreError() {
	if !modEnabled.Load() {
		return
	}
	storeErrorsTotal.Inc()
}
