// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"fmt"
	"time"
)

// A Policy bounds the retry behavior of an execution.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below one are treated as one, meaning no retries.
	MaxAttempts int `koanf:"max_attempts"`

	// BaseDelay is the backoff delay before the first retry, doubled on
	// each subsequent retry.
	BaseDelay time.Duration `koanf:"base_delay" validate:"gte=0,ltefield=MaxDelay"`

	// MaxDelay caps every backoff delay, including delays requested by
	// the server through Retry-After.
	MaxDelay time.Duration `koanf:"max_delay" validate:"gte=0"`
}

// DefaultPolicy allows four attempts with backoff starting at 400ms
// and never exceeding 6s.
var DefaultPolicy = Policy{
	MaxAttempts: 4,
	BaseDelay:   400 * time.Millisecond,
	MaxDelay:    6 * time.Second,
}

// Never is a policy that makes exactly one attempt.
var Never = Policy{MaxAttempts: 1}

// Attempts returns the effective total number of attempts, which is
// always at least one.
func (p Policy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Validate reports whether the delays are consistent.
func (p Policy) Validate() error {
	if p.BaseDelay < 0 {
		return fmt.Errorf("dadata/retry: negative base delay %s", p.BaseDelay)
	}
	if p.MaxDelay < 0 {
		return fmt.Errorf("dadata/retry: negative max delay %s", p.MaxDelay)
	}
	if p.BaseDelay > p.MaxDelay {
		return fmt.Errorf("dadata/retry: base delay %s exceeds max delay %s", p.BaseDelay, p.MaxDelay)
	}
	return nil
}
