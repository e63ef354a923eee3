// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gogama/dadata/retry"
)

const (
	// DefaultBaseURL is the address of the public DaData API.
	DefaultBaseURL = "https://suggestions.dadata.ru"

	// DefaultTimeout is the default per-attempt timeout.
	DefaultTimeout = 15 * time.Second

	// partyPath is the lookup endpoint, relative to the base URL.
	partyPath = "/suggestions/api/4_1/rs/findById/party"
)

var validate = validator.New()

// Config holds everything a Client needs to reach the service. New
// copies it, so changing a Config after New has no effect on the
// client.
type Config struct {
	// BaseURL is the absolute http(s) address of the service.
	BaseURL string `koanf:"base_url" validate:"required,http_url"`

	// Token is the API key, sent as "Authorization: Token <Token>".
	Token string `koanf:"token" validate:"required"`

	// Timeout bounds a single attempt, including reading the body. The
	// caller's context bounds the execution as a whole.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// Retry bounds the attempts and backoff delays of an execution.
	Retry retry.Policy `koanf:"retry"`
}

// DefaultConfig returns a Config with the default base URL, timeout and
// retry policy, using the given token.
func DefaultConfig(token string) Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Token:   token,
		Timeout: DefaultTimeout,
		Retry:   retry.DefaultPolicy,
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigError{
				Field:  strings.TrimPrefix(fe.Namespace(), "Config."),
				Reason: reason(fe),
			}
		}
		return err
	}
	if err := c.Retry.Validate(); err != nil {
		return &ConfigError{Field: "Retry", Reason: err.Error()}
	}
	return nil
}

func (c Config) partyURL() string {
	return strings.TrimRight(c.BaseURL, "/") + partyPath
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "http_url":
		return "must be an absolute http or https URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "ltefield":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
