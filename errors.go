// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gogama/dadata/transient"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrInvalidResponse is returned when the transport produced
	// neither a response nor an error.
	ErrInvalidResponse = errors.New("dadata: invalid response")

	// ErrUnknown is returned when an execution ends without any
	// recorded cause.
	ErrUnknown = errors.New("dadata: unknown error")

	// ErrEmptyQuery is returned when a lookup identifier is blank. No
	// request is sent.
	ErrEmptyQuery = errors.New("dadata: empty query")

	// ErrUnauthorized matches an *HTTPError with status 401 or 403.
	ErrUnauthorized = errors.New("dadata: invalid or missing token")

	// ErrNotFound matches an *HTTPError with status 404.
	ErrNotFound = errors.New("dadata: not found")

	// ErrRateLimited matches an *HTTPError with status 429.
	ErrRateLimited = errors.New("dadata: rate limit exceeded")
)

// DefaultDebugBodyBytes is the number of body bytes DebugBody returns
// when no positive limit is given.
const DefaultDebugBodyBytes = 8192

// TransportError is returned when the final attempt could not complete
// an HTTP exchange, including when the caller's context was cancelled.
type TransportError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("dadata: transport error on attempt %d: %v", e.Attempt, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying error is a timeout.
func (e *TransportError) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// HTTPError is returned for a terminal non-2xx response.
type HTTPError struct {
	StatusCode    int
	Body          []byte
	RetryAfter    time.Duration
	HasRetryAfter bool
}

func (e *HTTPError) Error() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("dadata: HTTP %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("dadata: HTTP %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// DecodeError is returned when a 2xx response body does not match the
// expected schema.
type DecodeError struct {
	Err  error
	Body []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dadata: decoding error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConfigError is returned by Config.Validate and New for an invalid
// configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dadata: invalid config field %s: %s", e.Field, e.Reason)
}

// Message returns a short description of err that is safe to show in
// logs or to end users. It never includes response body bytes.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var transportErr *TransportError
	var httpErr *HTTPError
	var decodeErr *DecodeError
	switch {
	case errors.Is(err, ErrInvalidResponse):
		return "Invalid HTTP response."
	case errors.Is(err, ErrUnknown):
		return "Unknown error."
	case errors.As(err, &transportErr):
		cause := transportErr.Err
		var urlErr *url.Error
		if errors.As(cause, &urlErr) {
			cause = urlErr.Err
		}
		return "Transport error: " + causeText(cause) + "."
	case errors.As(err, &httpErr):
		if httpErr.HasRetryAfter {
			secs := strconv.FormatFloat(httpErr.RetryAfter.Seconds(), 'f', -1, 64)
			return "HTTP " + strconv.Itoa(httpErr.StatusCode) + ". Retry after " + secs + "s."
		}
		return "HTTP " + strconv.Itoa(httpErr.StatusCode) + "."
	case errors.As(err, &decodeErr):
		return "Decoding error: " + causeText(decodeErr.Err) + "."
	}
	return err.Error()
}

func causeText(err error) string {
	if err == nil {
		return "unknown cause"
	}
	return err.Error()
}

// DebugBody returns up to maxBytes of the raw response body carried by
// an *HTTPError or *DecodeError, or false if err carries no body. If
// maxBytes is not positive, DefaultDebugBodyBytes is used. Invalid UTF-8
// is replaced with U+FFFD.
//
// The body may contain personal data. Do not show it to end users.
func DebugBody(err error, maxBytes int) (string, bool) {
	if maxBytes <= 0 {
		maxBytes = DefaultDebugBodyBytes
	}

	var body []byte
	var httpErr *HTTPError
	var decodeErr *DecodeError
	switch {
	case errors.As(err, &httpErr):
		body = httpErr.Body
	case errors.As(err, &decodeErr):
		body = decodeErr.Body
	default:
		return "", false
	}

	if len(body) > maxBytes {
		body = body[:maxBytes]
		// Drop a rune cut in half by the limit.
		for i := 1; i < utf8.UTFMax && i <= len(body); i++ {
			if utf8.RuneStart(body[len(body)-i]) {
				if !utf8.FullRune(body[len(body)-i:]) {
					body = body[:len(body)-i]
				}
				break
			}
		}
	}
	return string(bytes.ToValidUTF8(body, []byte("�"))), true
}
