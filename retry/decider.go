// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/transient"
)

// A Decider decides whether the most recent attempt failed in a way
// worth retrying.
//
// The engine enforces the attempt budget itself, so a Decider only
// classifies the failure. Implementations must be safe for concurrent
// use by multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It also provides the logical composition
// methods And and Or.
type DeciderFunc func(e *request.Execution) bool

// DefaultDecider retries responses with status 429 or 5xx and
// transient transport failures.
var DefaultDecider = RetryableStatus.Or(TransientErr)

// RetryableStatus is a decider that returns true if the most recent
// attempt received a response with status 429 (Too Many Requests) or
// any 5xx status.
var RetryableStatus DeciderFunc = retryableStatus

// TransientErr is a decider that returns true if the most recent
// attempt failed at the transport level with an error that
// transient.Categorize considers transient.
//
// TransientErr returns false whenever a response was received.
var TransientErr DeciderFunc = transientErr

// Decide returns true if a retry should be done.
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into one which returns true only if both
// do. g is not evaluated if f returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into one which returns true if either does.
// g is not evaluated if f returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Before constructs a decider allowing retries until d has elapsed
// since the start of the execution.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode constructs a decider returning true if the most recent
// attempt received a response whose status code is one of ss.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(e *request.Execution) bool {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return true
			}
		}
		return false
	}
}

// IsRetryableStatus reports whether code is 429 or in the 5xx range.
func IsRetryableStatus(code int) bool {
	return code == 429 || (code >= 500 && code <= 599)
}

func retryableStatus(e *request.Execution) bool {
	return e.Response != nil && IsRetryableStatus(e.Response.StatusCode)
}

func transientErr(e *request.Execution) bool {
	return e.Response == nil && transient.IsTransient(e.Err)
}
