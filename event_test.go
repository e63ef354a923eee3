// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	for i, evt := range Events() {
		assert.Equal(t, Event(i), evt)
	}
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeExecutionStart", BeforeExecutionStart.Name())
	assert.Equal(t, "BeforeAttempt", BeforeAttempt.Name())
	assert.Equal(t, "AfterAttemptTimeout", AfterAttemptTimeout.Name())
	assert.Equal(t, "AfterAttempt", AfterAttempt.Name())
	assert.Equal(t, "BeforeRetryWait", BeforeRetryWait.String())
	assert.Equal(t, "AfterExecutionEnd", AfterExecutionEnd.String())
	assert.Equal(t, "Unknown", Event(-1).Name())
	assert.Equal(t, "Unknown", eventSentinel.Name())
}
