// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// A Response is the fully read result of an attempt that reached the
// server. Unlike http.Response, the body is already buffered and the
// underlying connection released.
type Response struct {
	// StatusCode is the HTTP status code, e.g. 200.
	StatusCode int

	// Header holds the response headers. Lookups through Get are
	// case-insensitive.
	Header http.Header

	// Body is the complete response body. It may be empty but is never
	// consulted as nil for any other meaning.
	Body []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// RetryAfter returns the server's Retry-After hint and whether one was
// present. Only the delay-seconds form is understood, with fractions
// allowed; an HTTP-date, a negative number, or any other value is
// treated as absent.
func (r *Response) RetryAfter() (time.Duration, bool) {
	if r == nil {
		return 0, false
	}
	return ParseRetryAfter(r.Header.Get("Retry-After"))
}

// ParseRetryAfter parses a Retry-After header value expressed as a
// non-negative decimal number of seconds.
func ParseRetryAfter(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.IndexFunc(v, notDecimal) != -1 {
		return 0, false
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, false
	}
	if secs >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(secs * float64(time.Second)), true
}

func notDecimal(r rune) bool {
	return (r < '0' || r > '9') && !strings.ContainsRune(".eE+-", r)
}
