// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about lookup executions.
package metrics

import (
	"errors"
	"strconv"

	"github.com/gogama/dadata"
	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/transient"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "dadata"
	subsystem = "client"
)

// Outcome label values of the executions_total counter.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTP      = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeInvalid   = "invalid_response"
	OutcomeOther     = "other"
)

// Metrics holds the collectors fed by execution events.
type Metrics struct {
	executions *prometheus.CounterVec   // by outcome
	attempts   *prometheus.CounterVec   // by result: status code or error category
	retries    prometheus.Counter
	timeouts   prometheus.Counter
	duration   *prometheus.HistogramVec // by outcome
	waits      prometheus.Histogram
}

// New creates the collectors and registers them with reg. If reg is
// nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "executions_total",
			Help:      "Total number of lookup executions by outcome",
		}, []string{"outcome"}),

		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempts_total",
			Help:      "Total number of HTTP attempts by status code or transport error category",
		}, []string{"result"}),

		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retries_total",
			Help:      "Total number of retries scheduled",
		}),

		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempt_timeouts_total",
			Help:      "Total number of attempts that timed out",
		}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "execution_duration_seconds",
			Help:      "Lookup execution duration in seconds, including retry waits",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),

		waits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retry_wait_seconds",
			Help:      "Backoff delay before a retry in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}),
	}

	for _, c := range []prometheus.Collector{m.executions, m.attempts, m.retries, m.timeouts, m.duration, m.waits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Install adds the handlers that feed m to g.
func (m *Metrics) Install(g *dadata.HandlerGroup) {
	g.PushBack(dadata.AfterAttempt, dadata.HandlerFunc(m.afterAttempt))
	g.PushBack(dadata.AfterAttemptTimeout, dadata.HandlerFunc(m.afterAttemptTimeout))
	g.PushBack(dadata.BeforeRetryWait, dadata.HandlerFunc(m.beforeRetryWait))
	g.PushBack(dadata.AfterExecutionEnd, dadata.HandlerFunc(m.afterExecutionEnd))
}

func (m *Metrics) afterAttempt(_ dadata.Event, e *request.Execution) {
	m.attempts.WithLabelValues(attemptResult(e)).Inc()
}

func (m *Metrics) afterAttemptTimeout(_ dadata.Event, _ *request.Execution) {
	m.timeouts.Inc()
}

func (m *Metrics) beforeRetryWait(_ dadata.Event, e *request.Execution) {
	m.retries.Inc()
	m.waits.Observe(e.Wait.Seconds())
}

func (m *Metrics) afterExecutionEnd(_ dadata.Event, e *request.Execution) {
	o := Outcome(e.Err)
	m.executions.WithLabelValues(o).Inc()
	m.duration.WithLabelValues(o).Observe(e.Duration().Seconds())
}

func attemptResult(e *request.Execution) string {
	if e.Response != nil {
		return strconv.Itoa(e.Response.StatusCode)
	}
	return transient.Categorize(e.Err).String()
}

// Outcome returns the executions_total label value for the error an
// execution ended with.
func Outcome(err error) string {
	var transportErr *dadata.TransportError
	var httpErr *dadata.HTTPError
	var decodeErr *dadata.DecodeError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, dadata.ErrInvalidResponse):
		return OutcomeInvalid
	case errors.As(err, &httpErr):
		return OutcomeHTTP
	case errors.As(err, &transportErr):
		return OutcomeTransport
	case errors.As(err, &decodeErr):
		return OutcomeDecode
	default:
		return OutcomeOther
	}
}
