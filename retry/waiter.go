// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/dadata/request"
)

// A Waiter specifies how long to wait before retrying a failed attempt.
//
// The engine only calls the Waiter after the Decider returned true.
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// JitterFraction is the upper bound of the random jitter added to an
// exponential delay, as a fraction of that delay.
const JitterFraction = 0.25

// DefaultWaiter is NewExpWaiter over DefaultPolicy, seeded from the
// clock.
var DefaultWaiter = NewExpWaiter(DefaultPolicy, time.Now())

// NewFixedWaiter constructs a Waiter that always waits d, unless the
// server sent a Retry-After hint, in which case the hint is used but
// never exceeds d.
func NewFixedWaiter(d time.Duration) Waiter {
	if d < 0 {
		panic("dadata/retry: fixed wait may not be negative")
	}
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(e *request.Execution) time.Duration {
	if hint, ok := e.RetryAfter(); ok {
		return minDuration(hint, time.Duration(w))
	}
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing exponential backoff with
// optional jitter, bounded by the delays of p.
//
// When the most recent response carries a Retry-After hint, the delay
// is the hint, capped at p.MaxDelay. Otherwise, for the one-based
// attempt number n that just failed:
//
//	exp   := min(p.BaseDelay * 2**(n-1), p.MaxDelay)
//	delay := min(exp + jitter, p.MaxDelay)
//
// where jitter is uniform in [0, JitterFraction*exp].
//
// Parameter jitter may be nil, for a waiter that never jitters, or
// either a seed value (time.Time, int, int64) or a random source
// (rand.Source, *rand.Rand).
//
// NewExpWaiter panics if p fails Validate.
func NewExpWaiter(p Policy, jitter interface{}) Waiter {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}
	return &jitterExpWaiter{
		base: p.BaseDelay,
		max:  p.MaxDelay,
		rand: jitterToRand(jitter),
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(e *request.Execution) time.Duration {
	if hint, ok := e.RetryAfter(); ok {
		return minDuration(hint, w.max)
	}

	exp := w.exp(e.Attempt)
	if exp <= 0 {
		return 0
	}

	var j float64
	if w.rand != nil {
		w.lock.Lock()
		j = w.rand.Float64()
		w.lock.Unlock()
	}

	jitter := time.Duration(j * JitterFraction * float64(exp))
	return minDuration(exp+jitter, w.max)
}

// exp returns base * 2**(attempt-1) clamped to max, without overflow.
func (w *jitterExpWaiter) exp(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(w.base) * math.Pow(2, float64(attempt-1))
	if d >= float64(w.max) {
		return w.max
	}
	return time.Duration(d)
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("dadata/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("dadata/retry: invalid jitter type")
	}
	return rand.New(s)
}
