// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"github.com/gogama/dadata/retry"
	"github.com/gogama/dadata/timeout"
)

type clientOptions struct {
	transport Transport
	doer      HTTPDoer
	decider   retry.Decider
	waiter    retry.Waiter
	timeout   timeout.Policy
	handlers  *HandlerGroup
	requestID func() string
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTransport replaces the default HTTPTransport. The configured
// Timeout is then the transport's responsibility.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPDoer keeps the default HTTPTransport, with its per-attempt
// timeout, but sends requests through d. It is ignored if WithTransport
// is also given.
func WithHTTPDoer(d HTTPDoer) Option {
	return func(o *clientOptions) {
		o.doer = d
	}
}

// WithDecider replaces retry.DefaultDecider.
func WithDecider(d retry.Decider) Option {
	return func(o *clientOptions) {
		o.decider = d
	}
}

// WithWaiter replaces the default jittered exponential waiter built
// from the configured retry policy.
func WithWaiter(w retry.Waiter) Option {
	return func(o *clientOptions) {
		o.waiter = w
	}
}

// WithTimeoutPolicy sets a per-attempt timeout policy. The client
// bounds each attempt by the policy's timeout in addition to any
// timeout the transport applies itself.
func WithTimeoutPolicy(p timeout.Policy) Option {
	return func(o *clientOptions) {
		o.timeout = p
	}
}

// WithHandlers installs event handlers.
func WithHandlers(g *HandlerGroup) Option {
	return func(o *clientOptions) {
		o.handlers = g
	}
}

// WithRequestIDs sets the generator of the X-Request-ID header sent
// with every lookup. An empty generated value omits the header.
func WithRequestIDs(f func() string) Option {
	return func(o *clientOptions) {
		o.requestID = f
	}
}

// FindOption configures a single lookup.
type FindOption func(*findOptions)

type findOptions struct {
	count int
}

// WithCount sets the maximum number of suggestions to return. The
// default is 1. A count below one leaves the choice to the service.
func WithCount(n int) FindOption {
	return func(o *findOptions) {
		o.count = n
	}
}
