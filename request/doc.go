// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types Plan, Response, and Execution, which
describe one logical lookup as it moves through the retry engine.

A Plan is a pre-buffered description of the HTTP request to send. Since
its body is a []byte, the same Plan can be turned into a fresh
http.Request for every attempt:

	p, err := request.NewPlan(ctx, "POST", "https://suggestions.dadata.ru/suggestions/api/4_1/rs/findById/party", body)
	...
	p.SetToken(token)

The context attached to the Plan controls the whole execution: every
attempt, and every wait between attempts.

A Response is the fully read outcome of a single attempt that reached
the server: status code, headers, and body bytes. Its RetryAfter method
parses the server's Retry-After hint.

An Execution records the state of a Plan execution. It is handed to
retry deciders, waiters, and event handlers as the execution progresses.
You will not normally allocate one yourself.
*/
package request
