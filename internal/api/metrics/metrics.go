// Package metrics defines and registers all custom Prometheus metrics for
// ntumai-core. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ntumai"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "validation_failed", "rejected", "transport_error", "in_flight"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// SessionPersistErrorsTotal counts failed writes of the session snapshot.
// Persistence failures are absorbed, so this counter is the only place
// they become visible.
var SessionPersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_persist_errors_total",
		Help:      "Total number of session snapshot writes that failed.",
	},
)

// SessionRehydrationsTotal counts startup rehydration outcomes.
// Label:
//   - result: "restored" (prior session loaded), "empty" (no prior session),
//     "error" (read or decode failed, treated as empty)
var SessionRehydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rehydrations_total",
		Help:      "Total number of session rehydration attempts at startup, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route-guard evaluations.
// Label:
//   - outcome: "pending", "allow", "redirect", "deny"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)
