// Package metrics exposes Prometheus counters for play sessions, the stage
// API and the SSH server.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/session"
)

// Metrics holds every collector. The zero value is not usable; call New.
type Metrics struct {
	reg prometheus.Gatherer

	Rotations      *prometheus.CounterVec
	Clears         *prometheus.CounterVec
	ClearRotations prometheus.Histogram
	Evaluations    *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	SSHSessions    prometheus.Gauge
}

// New creates the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		reg: reg,
		Rotations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipes_rotations_total",
				Help: "Rotation attempts by outcome",
			},
			[]string{"outcome"},
		),
		Clears: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipes_clears_total",
				Help: "Stages cleared",
			},
			[]string{"stage"},
		),
		ClearRotations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pipes_clear_rotations",
				Help:    "Rotations needed to clear a stage",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
			},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipes_evaluations_total",
				Help: "Stateless evaluations served by the API",
			},
			[]string{"solved"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipes_api_requests_total",
				Help: "HTTP API requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		SSHSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pipes_ssh_sessions",
				Help: "Active SSH play sessions",
			},
		),
	}

	reg.MustRegister(m.Rotations, m.Clears, m.ClearRotations, m.Evaluations, m.Requests, m.SSHSessions)
	return m
}

// Hooks returns session callbacks that record rotations and clears.
func (m *Metrics) Hooks() session.Hooks {
	return session.Hooks{
		OnRotate: func(_ context.Context, e session.RotateEvent) {
			m.Rotations.WithLabelValues(rotationOutcome(e.Err)).Inc()
		},
		OnClear: func(_ context.Context, e session.ClearEvent) {
			m.Clears.WithLabelValues(e.StageID).Inc()
			m.ClearRotations.Observe(float64(e.Rotations))
		},
	}
}

func rotationOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, core.ErrFixedCell):
		return "fixed"
	case errors.Is(err, core.ErrInvalidPosition):
		return "out_of_bounds"
	default:
		return "error"
	}
}

// ObserveEvaluation counts one API evaluation.
func (m *Metrics) ObserveEvaluation(solved bool) {
	label := "false"
	if solved {
		label = "true"
	}
	m.Evaluations.WithLabelValues(label).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
