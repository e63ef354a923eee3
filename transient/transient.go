// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the perspective
// of completing a lookup attempt successfully, or in other words that a
// retry after encountering this error is very unlikely to succeed.
//
// All other categories indicate the error is transient, meaning a retry
// after encountering it has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, including explicit
	// cancellation, malformed URLs and TLS or certificate failures.
	Not Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// DNS indicates the host name could not be resolved. Resolver
	// failures are frequently short-lived, so they are retried.
	//
	// Function Categorize() will return DNS if the error is not a
	// Timeout, and the error or any of its wrapped causes is a
	// *net.DNSError.
	DNS
	// HostUnreachable indicates no route to the remote host, and
	// corresponds to the POSIX error code EHOSTUNREACH.
	HostUnreachable
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it happens while the remote
	// service is starting or restarting.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// ConnLost indicates an established connection went away before the
	// exchange completed: ECONNABORTED, EPIPE, or a response stream that
	// ended early (io.ErrUnexpectedEOF).
	ConnLost
	// NoNetwork indicates the local host has no usable network, and
	// corresponds to the POSIX error codes ENETUNREACH and ENETDOWN.
	NoNetwork
)

var categoryNames = []string{
	"not",
	"timeout",
	"dns",
	"host_unreachable",
	"conn_refused",
	"conn_reset",
	"conn_lost",
	"no_network",
}

// String returns a short snake_case name for the category, suitable
// for use as a log field value or a metric label.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of the given error. All
// non-nil transient errors result in a transience category other than
// Not. A nil error, and an error that is not transient from the
// perspective of completing a lookup attempt, both produce the return
// value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. An error wrapping
// context.Canceled is always Not, since the caller asked for the work
// to stop. Categorize never checks if an error has a Temporary()
// function that returns true, as the semantics of Temporary() aren't
// entirely clear.
func Categorize(err error) Category {
	if err == nil || errors.Is(err, context.Canceled) {
		return Not
	}
	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ETIMEDOUT:
			return Timeout
		case syscall.EHOSTUNREACH:
			return HostUnreachable
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNABORTED, syscall.EPIPE:
			return ConnLost
		case syscall.ENETUNREACH, syscall.ENETDOWN:
			return NoNetwork
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ConnLost
	}
	return Not
}

// IsTransient reports whether err falls in any transient category.
func IsTransient(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
