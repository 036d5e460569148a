// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/starchart"
)

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitLocationNotFound
	exitGeocode
	exitTimezone
	exitDataLoad
	exitRender
)

// app holds state shared by all subcommands.
type app struct {
	configPath  string
	metricsFile string

	cfg *config.Config
	svc *starchart.Service

	// open builds the service; replaced in tests.
	open func(cfg *config.Config) (*starchart.Service, error)
}

// usageError marks errors caused by bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newApp() *app {
	return &app{open: starchart.Open}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "starchart",
		Short:         "Render star charts and time-lapse sky animations",
		Long:          "Starchart renders the night sky above any named place at a local time, as a single chart or as an animated time-lapse.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: CONFIG_PATH, ./starchart.yaml, /etc/starchart/config.yaml)")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when the command ends")

	root.AddCommand(a.imageCmd(), a.animateCmd(), a.geocodeCmd(), a.fetchCmd())
	return root
}

// setup loads configuration, initialises logging and opens the service.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &usageError{err: fmt.Errorf("load configuration: %w", err)}
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	svc, err := a.open(cfg)
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

// teardown closes the service and writes the metrics file, if requested.
func (a *app) teardown() {
	if a.svc != nil {
		if err := a.svc.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing location cache")
		}
	}
	if a.metricsFile != "" {
		if err := metrics.WriteTextfile(a.metricsFile); err != nil {
			logging.Error().Err(err).Str("path", a.metricsFile).Msg("Failed to write metrics file")
		}
	}
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.teardown()

	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return exitCode(err)
}

// exitCode maps an error to the documented exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}

	switch models.KindOf(err) {
	case models.KindValidation:
		return exitUsage
	case models.KindLocationNotFound:
		return exitLocationNotFound
	case models.KindGeocode:
		return exitGeocode
	case models.KindTimezoneLookup:
		return exitTimezone
	case models.KindDataLoad:
		return exitDataLoad
	case models.KindRender:
		return exitRender
	default:
		return exitFailure
	}
}
