// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"fmt"
	"time"

	"github.com/gogama/dadata/request"
)

// A Policy chooses the timeout of the next attempt of an execution.
//
// Timeout is called before each attempt, while e still describes the
// previous attempt: e.Attempt is zero before the first attempt, and
// e.Err holds the previous attempt's error, if any.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Timeout(e *request.Execution) time.Duration
}

// Infinite never times out an attempt.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed returns a policy that times out every attempt after d.
func Fixed(d time.Duration) Policy {
	return Adaptive(d)
}

// Adaptive returns a policy that uses usual unless the previous
// attempt timed out. After the n-th timeout of the execution it uses
// after[n-1], or the last element of after once they run out.
//
// For example, the policy
//
//	Adaptive(2*time.Second, 5*time.Second, 15*time.Second)
//
// uses 2 seconds normally, 5 seconds right after the first timeout and
// 15 seconds right after any later one.
//
// Adaptive panics if any timeout is not positive.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(policy, 0, 1+len(after))
	for _, d := range append([]time.Duration{usual}, after...) {
		if d <= 0 {
			panic(fmt.Sprintf("dadata/timeout: non-positive timeout %s", d))
		}
		p = append(p, d)
	}
	return p
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
