// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gogama/dadata"
	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/retry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{"suggestions":[{"value":"ПАО СБЕРБАНК","data":{"inn":"7707083893"}}]}`

func TestNew(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, "warn", false)
		assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
		l.Info().Msg("hidden")
		assert.Empty(t, buf.String())
		l.Warn().Msg("shown")
		assert.Contains(t, buf.String(), `"message":"shown"`)
	})
	t.Run("unknown level", func(t *testing.T) {
		l := New(&bytes.Buffer{}, "chatty", false)
		assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	})
	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, "info", true)
		l.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.NotContains(t, buf.String(), `"message"`)
	})
}

func TestInstall(t *testing.T) {
	t.Run("retry then success", func(t *testing.T) {
		var buf bytes.Buffer
		n := 0
		cl := newClient(t, &buf, func(r *http.Request) (*request.Response, error) {
			n++
			if n == 1 {
				return &request.Response{StatusCode: 503, Header: http.Header{}}, nil
			}
			return &request.Response{StatusCode: 200, Header: http.Header{}, Body: []byte(okBody)}, nil
		})

		s, err := cl.FindParty(context.Background(), "7707083893")
		require.NoError(t, err)
		require.Len(t, s, 1)

		lines := parseLines(t, &buf)
		require.Len(t, lines, 5)
		assert.Equal(t, "lookup started", lines[0]["message"])
		assert.Equal(t, "attempt failed", lines[1]["message"])
		assert.Equal(t, "warn", lines[1]["level"])
		assert.EqualValues(t, 503, lines[1]["status"])
		assert.Equal(t, "retrying", lines[2]["message"])
		assert.Equal(t, "attempt succeeded", lines[3]["message"])
		assert.Equal(t, "lookup succeeded", lines[4]["message"])
		assert.Equal(t, "info", lines[4]["level"])
		assert.EqualValues(t, 2, lines[4]["attempts"])
		for _, line := range lines {
			assert.Equal(t, "req-1", line["request_id"])
		}
		assert.NotContains(t, buf.String(), "secret")
	})
	t.Run("failure", func(t *testing.T) {
		var buf bytes.Buffer
		cl := newClient(t, &buf, func(r *http.Request) (*request.Response, error) {
			return &request.Response{StatusCode: 400, Header: http.Header{}}, nil
		})

		_, err := cl.FindParty(context.Background(), "7707083893")
		require.Error(t, err)

		lines := parseLines(t, &buf)
		require.Len(t, lines, 3)
		last := lines[2]
		assert.Equal(t, "lookup failed", last["message"])
		assert.Equal(t, "error", last["level"])
		assert.Equal(t, "HTTP 400.", last["error"])
	})
	t.Run("transport error", func(t *testing.T) {
		var buf bytes.Buffer
		cl := newClient(t, &buf, func(r *http.Request) (*request.Response, error) {
			return nil, dadata.ErrInvalidResponse
		})

		_, err := cl.FindParty(context.Background(), "7707083893")
		require.ErrorIs(t, err, dadata.ErrInvalidResponse)

		lines := parseLines(t, &buf)
		require.Len(t, lines, 3)
		assert.Equal(t, "attempt failed", lines[1]["message"])
		assert.Contains(t, lines[1], "category")
		assert.Equal(t, "Invalid HTTP response.", lines[2]["error"])
	})
}

func newClient(t *testing.T, buf *bytes.Buffer, f dadata.TransportFunc) *dadata.Client {
	var g dadata.HandlerGroup
	Install(&g, New(buf, "debug", false))
	cfg := dadata.DefaultConfig("secret")
	cfg.Retry = retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	cl, err := dadata.New(cfg,
		dadata.WithTransport(f),
		dadata.WithHandlers(&g),
		dadata.WithRequestIDs(func() string { return "req-1" }))
	require.NoError(t, err)
	return cl
}

func parseLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var lines []map[string]interface{}
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	return lines
}
