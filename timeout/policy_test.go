// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"
	"math"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/dadata/request"
	"github.com/stretchr/testify/assert"
)

func TestInfinite(t *testing.T) {
	a := Infinite.Timeout(&request.Execution{})
	assert.Equal(t, time.Duration(math.MaxInt64), a)
	b := Infinite.Timeout(&request.Execution{AttemptTimeouts: 10, Err: context.DeadlineExceeded})
	assert.Equal(t, time.Duration(math.MaxInt64), b)
}

func TestFixed(t *testing.T) {
	p := Fixed(15 * time.Second)
	assert.Equal(t, 15*time.Second, p.Timeout(&request.Execution{}))
	assert.Equal(t, 15*time.Second, p.Timeout(&request.Execution{Attempt: 1, AttemptTimeouts: 1, Err: context.DeadlineExceeded}))
	assert.Equal(t, 15*time.Second, p.Timeout(&request.Execution{Attempt: 2, AttemptTimeouts: 2, Err: context.DeadlineExceeded}))
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(2*time.Second, 5*time.Second, 15*time.Second)
	x := &request.Execution{}
	assert.Equal(t, 2*time.Second, p.Timeout(x))

	x.Attempt = 1
	x.AttemptTimeouts = 1
	x.Err = context.DeadlineExceeded
	assert.Equal(t, 5*time.Second, p.Timeout(x))

	x.Attempt = 2
	x.Err = syscall.ECONNRESET
	assert.Equal(t, 2*time.Second, p.Timeout(x))

	x.Attempt = 3
	x.AttemptTimeouts = 2
	x.Err = context.DeadlineExceeded
	assert.Equal(t, 15*time.Second, p.Timeout(x))

	x.Attempt = 4
	x.AttemptTimeouts = 3
	assert.Equal(t, 15*time.Second, p.Timeout(x))
}

func TestAdaptivePanics(t *testing.T) {
	assert.PanicsWithValue(t, "dadata/timeout: non-positive timeout 0s", func() { Fixed(0) })
	assert.PanicsWithValue(t, "dadata/timeout: non-positive timeout -1s", func() { Adaptive(time.Second, -time.Second) })
}
