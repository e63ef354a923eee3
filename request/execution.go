// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/dadata/transient"
)

// An Execution represents the state of a single Plan execution.
//
// The Execution is updated as the execution progresses and is handed
// to retry deciders, waiters and event handlers. They may store their
// own values with SetValue but should treat the exported fields as
// read-only, with the exception of reasonable changes to Request made
// before it is sent (adding a header, for example).
type Execution struct {
	// Plan is the request plan being executed. It is never nil.
	Plan *Plan

	// Start is the execution start time. It is set once when the
	// execution starts.
	Start time.Time

	// End is the execution end time. It is the zero value until the
	// execution ends.
	End time.Time

	// Attempt is the one-based number of the current attempt. It is
	// zero before the first attempt starts and, once the execution has
	// ended, holds the number of the last attempt made.
	Attempt int

	// MaxAttempts is the total number of attempts the execution is
	// allowed, including the first.
	MaxAttempts int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Request is the HTTP request for the current attempt, or the one
	// already made in the last attempt.
	Request *http.Request

	// Response is the response received in the most recent attempt. It
	// is nil if that attempt failed at the transport level, while an
	// attempt is underway, and before the execution starts.
	//
	// Response and Err are never both set by an attempt; Err may be set
	// alongside Response only once the execution has ended with a
	// terminal error built from the response.
	Response *Response

	// Err is the error from the most recent attempt, or once the
	// execution has ended, the error returned to the caller.
	Err error

	// Wait is the backoff delay chosen before the next attempt. It is
	// meaningful during the BeforeRetryWait event.
	Wait time.Duration

	// data holds values set by handlers. See SetValue and Value.
	data context.Context
}

// StatusCode returns the status code of the most recent response, or
// 0 if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the headers of the most recent response, or a nil
// header if there is none. A nil header is safe for reads.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// RetryAfter returns the Retry-After hint of the most recent response.
func (e *Execution) RetryAfter() (time.Duration, bool) {
	return e.Response.RetryAfter()
}

// Duration returns the duration of the execution: zero before it
// starts, the time elapsed so far while it is running, and End minus
// Start once it has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err currently holds a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// Remaining returns the number of attempts still allowed after the
// current one.
func (e *Execution) Remaining() int {
	if n := e.MaxAttempts - e.Attempt; n > 0 {
		return n
	}
	return 0
}

// SetValue lets handlers store arbitrary data in the execution.
//
// The key follows the rules of context.WithValue: it may not be nil,
// it must be comparable, and it should be of an unexported type to
// avoid collisions between handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value associated with key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
