// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging installs event handlers that log lookup executions
// with zerolog.
//
// Each execution is logged with its X-Request-ID so the lines of one
// lookup can be correlated. Request and response headers are never
// logged, so the Authorization token cannot leak into logs.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/gogama/dadata"
	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/transient"
	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New returns a zerolog logger writing to w at the named level. An
// unknown level falls back to info. If pretty is true, output is
// formatted for humans.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Install adds logging handlers for all events to g.
func Install(g *dadata.HandlerGroup, l zerolog.Logger) {
	h := &handler{log: l}
	for _, evt := range dadata.Events() {
		g.PushBack(evt, h)
	}
}

type handler struct {
	log zerolog.Logger
}

func (h *handler) Handle(evt dadata.Event, e *request.Execution) {
	switch evt {
	case dadata.BeforeExecutionStart:
		l := h.log.With().
			Str("request_id", e.Plan.Header.Get("X-Request-ID")).
			Str("url", e.Plan.URL.String()).
			Logger()
		e.SetValue(loggerKey{}, &l)
		l.Debug().Int("max_attempts", e.MaxAttempts).Msg("lookup started")
	case dadata.AfterAttempt:
		l := h.logger(e)
		if e.Err != nil {
			l.Warn().
				Int("attempt", e.Attempt).
				Str("category", transient.Categorize(e.Err).String()).
				Err(e.Err).
				Msg("attempt failed")
		} else if !e.Response.Success() {
			l.Warn().
				Int("attempt", e.Attempt).
				Int("status", e.StatusCode()).
				Msg("attempt failed")
		} else {
			l.Debug().Int("attempt", e.Attempt).Int("status", e.StatusCode()).Msg("attempt succeeded")
		}
	case dadata.BeforeRetryWait:
		h.logger(e).Debug().
			Int("attempt", e.Attempt).
			Dur("wait", e.Wait).
			Msg("retrying")
	case dadata.AfterExecutionEnd:
		l := h.logger(e)
		if e.Err != nil {
			l.Error().
				Int("attempts", e.Attempt).
				Dur("duration", e.Duration()).
				Str("error", dadata.Message(e.Err)).
				Msg("lookup failed")
			return
		}
		l.Info().
			Int("attempts", e.Attempt).
			Dur("duration", e.Duration()).
			Msg("lookup succeeded")
	}
}

func (h *handler) logger(e *request.Execution) *zerolog.Logger {
	if l, ok := e.Value(loggerKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &h.log
}
