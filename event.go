// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

// An Event identifies the point in an execution at which a Handler
// runs.
type Event int

const (
	// BeforeExecutionStart occurs before the first attempt. Only the
	// execution's Plan and MaxAttempts are set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt occurs before each attempt. The execution's Request
	// is the request that will be sent once all handlers have run, and
	// handlers may add headers to it.
	BeforeAttempt
	// AfterAttemptTimeout occurs after an attempt failed with a timeout.
	// Err holds the timeout and AttemptTimeouts has been incremented.
	AfterAttemptTimeout
	// AfterAttempt occurs after every attempt. Exactly one of Response
	// and Err is set.
	AfterAttempt
	// BeforeRetryWait occurs after a retry has been decided, before the
	// backoff wait. Wait holds the delay.
	BeforeRetryWait
	// AfterExecutionEnd occurs once the execution has ended. End is set,
	// and Err holds the error returned to the caller, if any.
	AfterExecutionEnd

	eventSentinel

	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeRetryWait",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events, in firing order.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttemptTimeout,
		AfterAttempt,
		BeforeRetryWait,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	if evt < 0 || int(evt) >= numEvents {
		return "Unknown"
	}
	return eventNames[evt]
}

func (evt Event) String() string {
	return evt.Name()
}
