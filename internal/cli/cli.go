// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the dadata command line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gogama/dadata"
	"github.com/gogama/dadata/config"
	"github.com/gogama/dadata/logging"
	"github.com/spf13/cobra"
)

// App holds the dependencies of the command tree. Zero values are
// replaced with the process defaults.
type App struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string

	// ClientOptions are appended to the options the client is built
	// with.
	ClientOptions []dadata.Option
}

// errReported marks an error whose message was already printed.
var errReported = errors.New("dadata: error reported")

// FindOptions holds the flags of the find command.
type FindOptions struct {
	Count      int
	First      bool
	ConfigFile string
	LogLevel   string
	Timeout    time.Duration
	BaseURL    string
}

// Run executes the command line args and returns the process exit
// code.
func (a *App) Run(ctx context.Context, args []string) int {
	cmd := a.Command()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Command returns the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "dadata",
		Short:         "Look up Russian legal entities and entrepreneurs in DaData",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout())
	root.SetErr(a.stderr())
	root.AddCommand(a.newFindCommand())
	return root
}

func (a *App) newFindCommand() *cobra.Command {
	opts := &FindOptions{}

	cmd := &cobra.Command{
		Use:   "find <inn-or-ogrn>",
		Short: "Find a party by INN or OGRN",
		Long: `Finds a legal entity or individual entrepreneur by INN or OGRN and
prints the suggestions as JSON.

The API token is read from the DADATA_TOKEN environment variable or the
token key of the configuration file.`,
		Example: `  # Find a party
  dadata find 7707083893

  # Print only the first match, logging retries
  dadata find 7707083893 --first --log-level debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "Maximum number of suggestions")
	cmd.Flags().BoolVar(&opts.First, "first", false, "Print only the first suggestion")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error), overrides configuration")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Per-attempt timeout, overrides configuration")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Service base URL, overrides configuration")

	return cmd
}

func (a *App) runFind(cmd *cobra.Command, opts *FindOptions, query string) error {
	s, err := config.Load(config.Options{File: opts.ConfigFile, Environ: a.Environ})
	if err != nil {
		return err
	}
	if opts.Timeout > 0 {
		s.Timeout = opts.Timeout
	}
	if opts.BaseURL != "" {
		s.BaseURL = opts.BaseURL
	}
	if opts.LogLevel != "" {
		s.Log.Level = opts.LogLevel
	}

	var g dadata.HandlerGroup
	logging.Install(&g, logging.New(cmd.ErrOrStderr(), s.Log.Level, s.Log.Pretty))

	clientOpts := append([]dadata.Option{dadata.WithHandlers(&g)}, a.ClientOptions...)
	cl, err := dadata.New(s.Config, clientOpts...)
	if err != nil {
		return err
	}
	defer cl.CloseIdleConnections()

	var out interface{}
	if opts.First {
		out, err = cl.FindPartyFirst(cmd.Context(), query)
	} else {
		out, err = cl.FindParty(cmd.Context(), query, dadata.WithCount(opts.Count))
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), dadata.Message(err))
		return errReported
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}
