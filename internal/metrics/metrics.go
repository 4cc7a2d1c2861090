// Package metrics provides Prometheus metrics for the triage agent.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts completed turns by outcome (ok, completion_error,
	// store_error, round_limit).
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_turns_total",
			Help: "Total number of dialogue turns processed",
		},
		[]string{"outcome"},
	)

	// RoundsPerTurn observes how many completion rounds one turn needed.
	RoundsPerTurn = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_rounds_per_turn",
			Help:    "Completion rounds required per dialogue turn",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	// TurnDuration observes wall-clock time per turn.
	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_turn_duration_seconds",
			Help:    "Duration of dialogue turns in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ToolInvocations counts tool executions by tool name and status.
	ToolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_tool_invocations_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"},
	)
)
