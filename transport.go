// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gogama/dadata/request"
	"golang.org/x/net/http2"
)

// A Transport performs exactly one HTTP exchange per call to Send.
//
// Send returns the fully read response, whatever its status code, or a
// transport-level error. It must honour the request's context and be
// safe for concurrent use by multiple goroutines.
type Transport interface {
	Send(r *http.Request) (*request.Response, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as a Transport.
type TransportFunc func(r *http.Request) (*request.Response, error)

// Send calls f(r).
func (f TransportFunc) Send(r *http.Request) (*request.Response, error) {
	return f(r)
}

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// HTTPTransport is the default Transport. It sends requests with an
// HTTPDoer and enforces a per-attempt timeout which covers both the
// response headers and reading the body.
type HTTPTransport struct {
	// Doer sends the request. If nil, http.DefaultClient is used.
	Doer HTTPDoer

	// Timeout bounds one attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
}

// Send implements Transport.
func (t *HTTPTransport) Send(r *http.Request) (*request.Response, error) {
	if t.Timeout > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), t.Timeout)
		defer cancel()
		r = r.WithContext(ctx)
	}

	resp, err := t.doer().Do(r)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrInvalidResponse
	}

	var body []byte
	if resp.Body != nil {
		defer func() {
			_ = resp.Body.Close()
		}()
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	}

	return &request.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// CloseIdleConnections forwards to the doer, if it supports it.
func (t *HTTPTransport) CloseIdleConnections() {
	if ic, ok := t.doer().(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

func (t *HTTPTransport) doer() HTTPDoer {
	if t.Doer == nil {
		return http.DefaultClient
	}
	return t.Doer
}

// NewHTTPClient returns an http.Client whose transport negotiates
// HTTP/2 over TLS. The per-attempt timeout is enforced by HTTPTransport
// rather than by http.Client.Timeout, so that the caller's context and
// the attempt deadline compose.
func NewHTTPClient() (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}
	return &http.Client{Transport: tr}, nil
}
