// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "dadata/request: nil context"
)

// A Plan describes one logical HTTP request. Executing a plan may
// result in several attempts, each built from the plan by ToRequest.
//
// The field structure mirrors http.Request, minus everything a
// transaction-oriented JSON client has no use for.
type Plan struct {
	// Method specifies the HTTP method. An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields sent on every attempt.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no body is sent.
	Body []byte

	// ctx controls the whole plan execution. It should only be changed
	// by copying the plan with WithContext.
	ctx context.Context
}

// NewPlan returns a new Plan given a context, method, URL and optional
// body. The URL must be absolute.
func NewPlan(ctx context.Context, method, url string, body []byte) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if strings.IndexFunc(method, isNotToken) != -1 {
		return nil, fmt.Errorf("dadata/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("dadata/request: URL %q is not absolute", url)
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   body,
	}, nil
}

// Context returns the plan's context. The returned context is always
// non-nil; it defaults to the background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// SetToken sets the Authorization header to the service's token
// scheme: "Token <token>".
func (p *Plan) SetToken(token string) {
	p.Header.Set("Authorization", "Token "+token)
}

// SetJSON marks the plan as sending and accepting JSON.
func (p *Plan) SetJSON() {
	p.Header.Set("Content-Type", "application/json")
	p.Header.Set("Accept", "application/json")
}

// ToRequest creates an HTTP request for one attempt of the plan. The
// context of the new request is set to ctx, which may not be nil.
//
// The header is cloned so that changes made to one attempt's request
// never leak into the next.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	r.Host = p.URL.Host
	return r
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune classifies a rune as being valid for a token as defined
// in https://tools.ietf.org/html/rfc7230#section-3.2.6.
func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+-.^_`|~", r)
}
