// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client settings from defaults, an optional YAML
// file and the environment, in increasing order of priority.
//
// Environment variables carry the DADATA_ prefix by default. The
// variable name after the prefix is lowercased and its section, if
// any, is split off at the first underscore, so DADATA_TOKEN sets
// token and DADATA_RETRY_MAX_ATTEMPTS sets retry.max_attempts.
package config

import (
	"fmt"
	"strings"

	"github.com/gogama/dadata"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "DADATA_"

// sections are the nested keys environment variables may address.
var sections = []string{"retry", "log"}

// Settings are the loaded settings.
type Settings struct {
	dadata.Config `koanf:",squash"`

	Log Log `koanf:"log"`
}

// Log holds logging settings.
type Log struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// Options control where Load reads from.
type Options struct {
	// File is the path of a YAML file. If empty, no file is read. A
	// named file that cannot be read is an error.
	File string

	// EnvPrefix replaces DefaultEnvPrefix if not empty.
	EnvPrefix string

	// Environ replaces os.Environ as the source of environment
	// variables if not nil.
	Environ func() []string
}

// Load loads and validates settings.
func Load(opts Options) (*Settings, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("dadata/config: failed to load defaults: %w", err)
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("dadata/config: failed to load %s: %w", opts.File, err)
		}
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	env := envprovider.Provider(".", envprovider.Opt{
		Prefix: prefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(prefix, key), value
		},
		EnvironFunc: opts.Environ,
	})
	if err := k.Load(env, nil); err != nil {
		return nil, fmt.Errorf("dadata/config: failed to load environment variables: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("dadata/config: failed to unmarshal config: %w", err)
	}

	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func envKey(prefix, key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, prefix))
	for _, sec := range sections {
		if strings.HasPrefix(key, sec+"_") {
			return sec + "." + key[len(sec)+1:]
		}
	}
	return key
}

func loadDefaults(k *koanf.Koanf) error {
	d := dadata.DefaultConfig("")
	defaults := map[string]any{
		"base_url": d.BaseURL,
		"token":    d.Token,
		"timeout":  d.Timeout.String(),

		"retry.max_attempts": d.Retry.MaxAttempts,
		"retry.base_delay":   d.Retry.BaseDelay.String(),
		"retry.max_delay":    d.Retry.MaxDelay.String(),

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
