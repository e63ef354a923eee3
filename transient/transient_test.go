// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, Not, Categorize(nil))
	assert.Equal(t, Not, Categorize(errors.New("foo")))
	assert.Equal(t, Not, Categorize(wrapper{}))
	assert.Equal(t, Not, Categorize(wrapper{errors.New("bar")}))

	assert.Equal(t, Timeout, Categorize(syscall.ETIMEDOUT))
	assert.Equal(t, Timeout, Categorize(timeout{}))
	assert.Equal(t, Timeout, Categorize(context.DeadlineExceeded))
	assert.Equal(t, Timeout, Categorize(&url.Error{Err: syscall.ETIMEDOUT}))
	assert.Equal(t, Timeout, Categorize(&url.Error{Err: timeout{}}))
	assert.Equal(t, Timeout, Categorize(wrapper{&url.Error{Err: syscall.ETIMEDOUT}}))
	assert.Equal(t, Timeout, Categorize(wrapper{wrapper{timeout{}}}))
	assert.Equal(t, Timeout, Categorize(timeoutWrapper{true, syscall.ECONNRESET}))
	assert.Equal(t, Timeout, Categorize(&net.DNSError{Err: "i/o timeout", IsTimeout: true}))

	assert.Equal(t, DNS, Categorize(&net.DNSError{Err: "no such host", Name: "suggestions.dadata.ru", IsNotFound: true}))
	assert.Equal(t, DNS, Categorize(&url.Error{Op: "Post", Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "server misbehaving"}}}))

	assert.Equal(t, HostUnreachable, Categorize(syscall.EHOSTUNREACH))
	assert.Equal(t, HostUnreachable, Categorize(&net.OpError{Op: "dial", Err: wrapper{syscall.EHOSTUNREACH}}))

	assert.Equal(t, ConnRefused, Categorize(syscall.ECONNREFUSED))
	assert.Equal(t, ConnRefused, Categorize(wrapper{syscall.ECONNREFUSED}))
	assert.Equal(t, ConnRefused, Categorize(&url.Error{Err: wrapper{timeoutWrapper{false, syscall.ECONNREFUSED}}}))

	assert.Equal(t, ConnReset, Categorize(syscall.ECONNRESET))
	assert.Equal(t, ConnReset, Categorize(wrapper{syscall.ECONNRESET}))
	assert.Equal(t, ConnReset, Categorize(timeoutWrapper{false, syscall.ECONNRESET}))

	assert.Equal(t, ConnLost, Categorize(syscall.ECONNABORTED))
	assert.Equal(t, ConnLost, Categorize(syscall.EPIPE))
	assert.Equal(t, ConnLost, Categorize(io.ErrUnexpectedEOF))
	assert.Equal(t, ConnLost, Categorize(fmt.Errorf("read body: %w", io.ErrUnexpectedEOF)))

	assert.Equal(t, NoNetwork, Categorize(syscall.ENETUNREACH))
	assert.Equal(t, NoNetwork, Categorize(wrapper{syscall.ENETDOWN}))
}

func TestCategorize_NotTransient(t *testing.T) {
	nonTransient := []error{
		context.Canceled,
		&url.Error{Op: "Post", URL: "https://example.com", Err: context.Canceled},
		fmt.Errorf("attempt aborted: %w", context.Canceled),
		&url.Error{Op: "parse", URL: "::bad", Err: errors.New("missing protocol scheme")},
		x509.UnknownAuthorityError{},
		x509.CertificateInvalidError{Reason: x509.Expired},
		io.EOF,
	}
	for i, err := range nonTransient {
		t.Run(fmt.Sprintf("nonTransient[%d]=%v", i, err), func(t *testing.T) {
			assert.Equal(t, Not, Categorize(err))
			assert.False(t, IsTransient(err))
		})
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "not", Not.String())
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "dns", DNS.String())
	assert.Equal(t, "host_unreachable", HostUnreachable.String())
	assert.Equal(t, "conn_refused", ConnRefused.String())
	assert.Equal(t, "conn_reset", ConnReset.String())
	assert.Equal(t, "conn_lost", ConnLost.String())
	assert.Equal(t, "no_network", NoNetwork.String())
	assert.Equal(t, "unknown", Category(99).String())
	assert.Equal(t, "unknown", Category(-1).String())
}

type timeout struct{}

func (err timeout) Error() string {
	return "timeout"
}

func (_ timeout) Timeout() bool {
	return true
}

type wrapper struct {
	wrappedError error
}

func (err wrapper) Error() string {
	return fmt.Sprintf("wrapper - wraps %v", err.wrappedError)
}

func (err wrapper) Unwrap() error {
	return err.wrappedError
}

type timeoutWrapper struct {
	timeout      bool
	wrappedError error
}

func (err timeoutWrapper) Error() string {
	return fmt.Sprintf("timeoutWrapper - timeout %t, wraps %v", err.timeout, err.wrappedError)
}

func (err timeoutWrapper) Timeout() bool {
	return err.timeout
}

func (err timeoutWrapper) Unwrap() error {
	return err.wrappedError
}
