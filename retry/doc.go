// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry holds the retry configuration and the two plug-in
// points the client's retry engine consults after a failed attempt.
//
// Policy is plain data: how many attempts an execution may make and the
// bounds of the backoff delay. A Decider classifies the most recent
// attempt as retryable or not, and a Waiter computes how long to wait
// before the next attempt. The engine only asks the Decider while
// attempts remain, and only asks the Waiter after the Decider said yes.
//
// The defaults retry HTTP 429 and 5xx responses and transient transport
// failures, with jittered exponential backoff that gives precedence to
// the server's Retry-After hint:
//
//	decider := retry.RetryableStatus.Or(retry.TransientErr)
//	waiter := retry.NewExpWaiter(retry.DefaultPolicy, time.Now())
//
// Deciders compose with DeciderFunc.And and DeciderFunc.Or:
//
//	decider := retry.StatusCode(429, 503).Or(retry.TransientErr).
//		And(retry.Before(10 * time.Second))
package retry
