// Package metrics defines and registers all custom Prometheus metrics for the
// rewards API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry at import time via promauto; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rewards"

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "user" or "dashboard"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by session kind and result.",
	},
	[]string{"kind", "result"},
)

// TransactionsRecordedTotal counts transactions appended to the ledger.
// Label:
//   - source: "api" (user submitted) or "simulation"
var TransactionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_recorded_total",
		Help:      "Total number of transactions appended to the ledger, by source.",
	},
	[]string{"source"},
)

// PerkRedemptionsTotal counts perk redemption attempts.
// Labels:
//   - scope: "general" (balance debit) or "partner" (counter only)
//   - result: "success" or "rejected"
var PerkRedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "perk_redemptions_total",
		Help:      "Total number of perk redemption attempts, by scope and result.",
	},
	[]string{"scope", "result"},
)

// SimulationRunsTotal counts simulation lifecycle transitions.
// Label:
//   - outcome: "started", "completed", "stopped"
var SimulationRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation run transitions, by outcome.",
	},
	[]string{"outcome"},
)

// AIRequestDuration measures upstream AI proxy latency end-to-end.
// Labels:
//   - feature: "roast" or "wellbeing"
//   - result: "success" or "error"
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of AI generation requests from handler to upstream response.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"feature", "result"},
)

// WebsocketClients tracks the number of currently connected event listeners.
var WebsocketClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Current number of connected websocket clients.",
	},
)
