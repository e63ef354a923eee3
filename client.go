// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/retry"
	"github.com/gogama/dadata/timeout"
	"github.com/google/uuid"
)

// A Client looks up parties in the DaData service, retrying transient
// failures according to its retry policy.
//
// A Client is safe for concurrent use by multiple goroutines. Its
// transport usually caches connections, so create one Client and reuse
// it.
type Client struct {
	cfg       Config
	transport Transport
	decider   retry.Decider
	waiter    retry.Waiter
	timeout   timeout.Policy
	handlers  *HandlerGroup
	requestID func() string
	sleep     func(ctx context.Context, d time.Duration) error
}

// New validates cfg and returns a Client using it.
//
// Unless overridden by options, the client sends requests through an
// HTTPTransport over an HTTP/2-capable http.Client, retries with
// retry.DefaultDecider, and waits with retry.NewExpWaiter over
// cfg.Retry.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		cfg:       cfg,
		transport: o.transport,
		decider:   o.decider,
		waiter:    o.waiter,
		timeout:   o.timeout,
		handlers:  o.handlers,
		requestID: o.requestID,
		sleep:     sleep,
	}
	if c.transport == nil {
		doer := o.doer
		if doer == nil {
			hc, err := NewHTTPClient()
			if err != nil {
				return nil, err
			}
			doer = hc
		}
		c.transport = &HTTPTransport{Doer: doer, Timeout: cfg.Timeout}
	}
	if c.decider == nil {
		c.decider = retry.DefaultDecider
	}
	if c.waiter == nil {
		c.waiter = retry.NewExpWaiter(cfg.Retry, time.Now())
	}
	if c.requestID == nil {
		c.requestID = uuid.NewString
	}
	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// FindParty looks up parties by INN or OGRN and returns the suggestions
// in the order chosen by the service. The slice may be empty.
//
// FindParty returns ErrEmptyQuery without sending anything if
// innOrOGRN is blank. Otherwise any error is one of *TransportError,
// *HTTPError, *DecodeError, ErrInvalidResponse or ErrUnknown.
func (c *Client) FindParty(ctx context.Context, innOrOGRN string, opts ...FindOption) ([]Suggestion[Party], error) {
	if strings.TrimSpace(innOrOGRN) == "" {
		return nil, ErrEmptyQuery
	}

	o := findOptions{count: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.count < 1 {
		o.count = 0
	}

	var out []Suggestion[Party]
	err := c.lookup(ctx, c.cfg.partyURL(), findByIDRequest{Query: innOrOGRN, Count: o.count}, func(body []byte) error {
		var err error
		out, err = decodeSuggestions[Party](body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindPartyFirst is FindParty with a count of one, returning the first
// suggestion, or nil and no error if there is none.
func (c *Client) FindPartyFirst(ctx context.Context, innOrOGRN string) (*Suggestion[Party], error) {
	s, err := c.FindParty(ctx, innOrOGRN, WithCount(1))
	if err != nil || len(s) == 0 {
		return nil, err
	}
	return &s[0], nil
}

// CloseIdleConnections closes idle connections of the transport, if it
// supports doing so.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) lookup(ctx context.Context, url string, body interface{}, decode func([]byte) error) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p, err := request.NewPlan(ctx, "POST", url, b)
	if err != nil {
		return err
	}
	p.SetJSON()
	p.SetToken(c.cfg.Token)
	if id := c.requestID(); id != "" {
		p.Header.Set("X-Request-ID", id)
	}
	_, err = c.execute(p, decode)
	return err
}

// execute runs the retry loop for p. The returned Execution is never
// nil, and its Err field always equals the returned error.
func (c *Client) execute(p *request.Plan, decode func([]byte) error) (*request.Execution, error) {
	e := &request.Execution{
		Plan:        p,
		MaxAttempts: c.cfg.Retry.Attempts(),
	}

	c.handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()
	err := c.loop(p.Context(), e, decode)
	e.Err = err
	e.End = time.Now()
	c.handlers.run(AfterExecutionEnd, e)
	return e, err
}

func (c *Client) loop(ctx context.Context, e *request.Execution, decode func([]byte) error) error {
	var last error
	for e.Attempt = 1; e.Attempt <= e.MaxAttempts; e.Attempt++ {
		c.attempt(ctx, e)

		if e.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return c.transportError(e, ctxErr)
			}
			if errors.Is(e.Err, ErrInvalidResponse) {
				return ErrInvalidResponse
			}
			last = c.transportError(e, e.Err)
			if e.Attempt < e.MaxAttempts && c.decider.Decide(e) {
				if err := c.wait(ctx, e); err != nil {
					return err
				}
				continue
			}
			return last
		}

		resp := e.Response
		if resp.Success() {
			if err := decode(resp.Body); err != nil {
				return &DecodeError{Err: err, Body: resp.Body}
			}
			return nil
		}

		hint, hasHint := resp.RetryAfter()
		last = &HTTPError{
			StatusCode:    resp.StatusCode,
			Body:          resp.Body,
			RetryAfter:    hint,
			HasRetryAfter: hasHint,
		}
		if e.Attempt < e.MaxAttempts && c.decider.Decide(e) {
			if err := c.wait(ctx, e); err != nil {
				return err
			}
			continue
		}
		return last
	}

	if last != nil {
		return last
	}
	return ErrUnknown
}

func (c *Client) attempt(ctx context.Context, e *request.Execution) {
	if c.timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout.Timeout(e))
		defer cancel()
	}
	e.Response, e.Err, e.Wait = nil, nil, 0
	e.Request = e.Plan.ToRequest(ctx)
	c.handlers.run(BeforeAttempt, e)

	resp, err := c.transport.Send(e.Request)
	switch {
	case err != nil:
		e.Err = err
	case resp == nil:
		e.Err = ErrInvalidResponse
	default:
		e.Response = resp
	}

	if e.Timeout() {
		e.AttemptTimeouts++
		c.handlers.run(AfterAttemptTimeout, e)
	}
	c.handlers.run(AfterAttempt, e)
}

func (c *Client) wait(ctx context.Context, e *request.Execution) error {
	e.Wait = c.waiter.Wait(e)
	c.handlers.run(BeforeRetryWait, e)
	if err := c.sleep(ctx, e.Wait); err != nil {
		return c.transportError(e, err)
	}
	return nil
}

func (c *Client) transportError(e *request.Execution, err error) *TransportError {
	return &TransportError{
		Err:     err,
		URL:     e.Plan.URL.String(),
		Attempt: e.Attempt,
	}
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func decodeSuggestions[T any](body []byte) ([]Suggestion[T], error) {
	var envelope struct {
		Suggestions *[]Suggestion[T] `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Suggestions == nil {
		return nil, errMissingSuggestions
	}
	return *envelope.Suggestions, nil
}

var errMissingSuggestions = errors.New(`missing "suggestions" field`)
