/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cdda-json-browser/pkg/browser"
	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
	"github.com/NVIDIA/cdda-json-browser/pkg/logging"
	"github.com/NVIDIA/cdda-json-browser/pkg/serializer"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

const (
	name           = "cddab"
	versionDefault = "dev"

	exitError    = 1
	exitCanceled = 2
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the command line and exits the process on error.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, context.Canceled) {
			os.Exit(exitCanceled)
		}
		os.Exit(exitError)
	}
}

// app holds what commands share within one invocation.
type app struct {
	settings *config.Settings
	browser  *browser.Browser
}

func newRootCmd() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:    name,
		Usage:   "Browse Cataclysm: Dark Days Ahead game data",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Description: `Load the game's JSON definition files and look records up by name or
by approximate attribute query.

  cddab --dir ./data/json search kevlar vest
  cddab --dir ./data/json search --category item volume:5 weight:250
  cddab --dir ./data/json craft wooden door
  cddab --dir ./data/json browse --watch`,
		Flags:    globalFlags(),
		Commands: []*cli.Command{
			searchCmd(a),
			showCmd(a),
			craftCmd(a),
			categoriesCmd(a),
			browseCmd(a),
			statsCmd(a),
		},
		EnableShellCompletion: true,
	}
}

// setup reads settings, configures logging and builds the browser.
// Flags override environment settings.
func (a *app) setup(cmd *cli.Command) error {
	if a.browser != nil {
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return cdderrors.Wrap(cdderrors.ErrCodeConfig, "invalid environment settings", err)
	}
	if cmd.IsSet(flagLogLevel) {
		settings.LogLevel = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagDataDir) {
		settings.DataDir = cmd.String(flagDataDir)
	}
	if cmd.IsSet(flagConfigDir) {
		settings.ConfigDir = cmd.String(flagConfigDir)
	}
	if cmd.IsSet(flagFormat) {
		settings.Format = cmd.String(flagFormat)
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, settings.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", settings.LogLevel)

	provider, err := settings.Provider()
	if err != nil {
		return err
	}
	tables, err := config.LoadTables(provider)
	if err != nil {
		return err
	}

	a.settings = settings
	a.browser = browser.New(tables)
	return nil
}

// load reads the data directory into the browser.
func (a *app) load(ctx context.Context, cmd *cli.Command) (*store.Report, error) {
	if err := a.setup(cmd); err != nil {
		return nil, err
	}
	if a.settings.DataDir == "" {
		return nil, cdderrors.New(cdderrors.ErrCodeInvalidRequest,
			fmt.Sprintf("data directory required: set --%s or %s", flagDataDir, envDataDir))
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.LoadTimeout)
	defer cancel()

	report, err := a.browser.Load(ctx, a.settings.DataDir)
	if err != nil {
		return nil, err
	}
	if n := report.Warnings(); n > 0 {
		slog.Warn("data loaded with warnings", "warnings", n, "files_failed", report.FilesFailed)
	}
	return report, nil
}

// writer creates the output writer for a command. Output goes to --output
// when set, else to the root command's writer.
func (a *app) writer(cmd *cli.Command) (*serializer.Writer, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	if path := cmd.String(flagOutput); path != "" {
		if !cmd.IsSet(flagFormat) && os.Getenv(envFormat) == "" {
			format = serializer.FormatFromPath(path, format)
		}
		return serializer.NewFileWriterOrStdout(format, path), nil
	}
	return serializer.NewWriter(format, stdout(cmd)), nil
}

// stdout is the root command's writer, os.Stdout unless replaced.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// emit serializes data and closes the writer.
func (a *app) emit(ctx context.Context, cmd *cli.Command, data any) error {
	w, err := a.writer(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return w.Serialize(ctx, data)
}
