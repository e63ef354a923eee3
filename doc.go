// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package dadata is a client for the DaData party lookup service, which
finds companies and individual entrepreneurs by INN or OGRN.

Create a Client once and reuse it:

	client, err := dadata.New(dadata.DefaultConfig(token))
	...
	suggestions, err := client.FindParty(ctx, "7707083893", dadata.WithCount(5))
	...
	first, err := client.FindPartyFirst(ctx, "7707083893")
	if first == nil && err == nil {
		// nothing found
	}

Each lookup is one logical request which may take several attempts.
Transient transport failures and HTTP 429 and 5xx responses are retried
with jittered exponential backoff, or after the delay requested by the
server's Retry-After header, until Config.Retry.MaxAttempts attempts
have been made. The context passed to FindParty cancels both an
in-flight attempt and a backoff wait. To vary the attempt timeout
between retries, plug in a policy from package timeout with
WithTimeoutPolicy.

Errors are typed. Use errors.As with *TransportError, *HTTPError and
*DecodeError to get at the details, and errors.Is with the sentinels
(ErrUnauthorized, ErrRateLimited, ErrNotFound, ...) for common cases:

	var httpErr *dadata.HTTPError
	if errors.As(err, &httpErr) {
		...
	}

Use Message to render an error for end users; it never contains the
response body.

To observe executions, install handlers for the events the retry loop
fires:

	handlers := &dadata.HandlerGroup{}
	handlers.PushBack(dadata.BeforeRetryWait, dadata.HandlerFunc(
		func(_ dadata.Event, e *request.Execution) {
			log.Printf("retrying in %s after attempt %d", e.Wait, e.Attempt)
		}))
	client, err := dadata.New(cfg, dadata.WithHandlers(handlers))

Packages logging, metrics and tracing provide ready-made handlers, and
package config loads a Config from a YAML file and the environment.
*/
package dadata
