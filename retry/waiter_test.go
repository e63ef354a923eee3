// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gogama/dadata/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = Policy{
	MaxAttempts: 4,
	BaseDelay:   400 * time.Millisecond,
	MaxDelay:    6 * time.Second,
}

func TestDefaultWaiter(t *testing.T) {
	for attempt := 1; attempt <= 10; attempt++ {
		wait := DefaultWaiter.Wait(&request.Execution{Attempt: attempt})
		assert.GreaterOrEqual(t, wait, time.Duration(0))
		assert.LessOrEqual(t, wait, DefaultPolicy.MaxDelay)
	}
}

func TestNewExpWaiter(t *testing.T) {
	t.Run("invalid policy", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExpWaiter(Policy{BaseDelay: -1, MaxDelay: time.Second}, nil)
		}, "negative base")
		assert.Panics(t, func() {
			NewExpWaiter(Policy{BaseDelay: 2 * time.Second, MaxDelay: time.Second}, nil)
		}, "base above max")
	})
	t.Run("invalid jitter", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExpWaiter(testPolicy, float64(1))
		}, "float64")
		var nilRand *rand.Rand
		assert.Panics(t, func() {
			NewExpWaiter(testPolicy, nilRand)
		}, "nil *rand.Rand")
	})
	t.Run("no jitter", func(t *testing.T) {
		w := newJitterExpWaiter(t, testPolicy, nil)
		assert.Nil(t, w.rand)
		expected := []time.Duration{
			400 * time.Millisecond,
			800 * time.Millisecond,
			1600 * time.Millisecond,
			3200 * time.Millisecond,
			6 * time.Second,
			6 * time.Second,
		}
		for i, d := range expected {
			assert.Equal(t, d, w.Wait(&request.Execution{Attempt: i + 1}), "attempt %d", i+1)
		}
		assert.Equal(t, 400*time.Millisecond, w.Wait(&request.Execution{Attempt: 0}))
		assert.Equal(t, 6*time.Second, w.Wait(&request.Execution{Attempt: 1000}))
	})
	t.Run("half jitter", func(t *testing.T) {
		w := NewExpWaiter(testPolicy, halfSource{})
		expected := []time.Duration{
			450 * time.Millisecond,
			900 * time.Millisecond,
			1800 * time.Millisecond,
			3600 * time.Millisecond,
			6 * time.Second,
		}
		for i, d := range expected {
			assert.Equal(t, d, w.Wait(&request.Execution{Attempt: i + 1}), "attempt %d", i+1)
		}
	})
	t.Run("zero base", func(t *testing.T) {
		w := NewExpWaiter(Policy{MaxAttempts: 3}, 1)
		assert.Equal(t, time.Duration(0), w.Wait(&request.Execution{Attempt: 1}))
	})
	t.Run("with jitter", func(t *testing.T) {
		jitters := []struct {
			name  string
			value interface{}
		}{
			{"zero time.Time", time.Time{}},
			{"time.Now()", time.Now()},
			{"int", 1},
			{"int64", int64(1)},
			{"rand.Source", rand.NewSource(0)},
			{"*rand.Rand", rand.New(rand.NewSource(0))},
		}
		for i, jitter := range jitters {
			t.Run(fmt.Sprintf("jitters[%d]=%s", i, jitter.name), func(t *testing.T) {
				w := NewExpWaiter(testPolicy, jitter.value)
				for attempt := 1; attempt < 100; attempt++ {
					d := w.Wait(&request.Execution{Attempt: attempt})
					exp := newJitterExpWaiter(t, testPolicy, nil).exp(attempt)
					assert.GreaterOrEqual(t, d, exp)
					assert.LessOrEqual(t, d, testPolicy.MaxDelay)
					assert.LessOrEqual(t, d, exp+time.Duration(JitterFraction*float64(exp)))
				}
			})
		}
	})
	t.Run("retry after hint", func(t *testing.T) {
		w := NewExpWaiter(testPolicy, halfSource{})
		testCases := []struct {
			header string
			want   time.Duration
		}{
			{"2", 2 * time.Second},
			{"0", 0},
			{"0.5", 500 * time.Millisecond},
			{"10", 6 * time.Second},
			{"soon", 450 * time.Millisecond},
		}
		for _, testCase := range testCases {
			t.Run(testCase.header, func(t *testing.T) {
				e := &request.Execution{
					Attempt:  1,
					Response: hintResponse(testCase.header),
				}
				assert.Equal(t, testCase.want, w.Wait(e))
			})
		}
	})
	t.Run("concurrent use", func(t *testing.T) {
		w := NewExpWaiter(testPolicy, 0)
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for attempt := 1; attempt <= 10; attempt++ {
					d := w.Wait(&request.Execution{Attempt: attempt})
					assert.GreaterOrEqual(t, d, time.Duration(0))
					assert.LessOrEqual(t, d, testPolicy.MaxDelay)
				}
			}()
		}
		wg.Wait()
	})
}

func TestNewFixedWaiter(t *testing.T) {
	assert.Panics(t, func() { NewFixedWaiter(-1) })
	w := NewFixedWaiter(time.Second)
	assert.Equal(t, time.Second, w.Wait(&request.Execution{Attempt: 1}))
	assert.Equal(t, time.Second, w.Wait(&request.Execution{Attempt: 7}))
	assert.Equal(t, 300*time.Millisecond, w.Wait(&request.Execution{Response: hintResponse("0.3")}))
	assert.Equal(t, time.Second, w.Wait(&request.Execution{Response: hintResponse("30")}))
}

func newJitterExpWaiter(t *testing.T, p Policy, jitter interface{}) *jitterExpWaiter {
	w := NewExpWaiter(p, jitter)
	require.IsType(t, &jitterExpWaiter{}, w)
	return w.(*jitterExpWaiter)
}

func hintResponse(retryAfter string) *request.Response {
	return &request.Response{
		StatusCode: 429,
		Header:     http.Header{"Retry-After": []string{retryAfter}},
	}
}

// halfSource makes rand.Float64 return exactly 0.5.
type halfSource struct{}

func (halfSource) Int63() int64  { return 1 << 62 }
func (halfSource) Seed(_ int64) {}
