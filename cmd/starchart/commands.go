// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/starchart/internal/starchart"
)

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func (a *app) imageCmd() *cobra.Command {
	var req starchart.ImageRequest

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Render a single star chart as PNG",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.svc.GenerateImage(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Location, "location", "l", "", "place name, e.g. \"New York\"")
	f.StringVarP(&req.When, "when", "w", "", "local time at the location, YYYY-MM-DD HH:MM:SS")
	f.IntVar(&req.ChartSize, "chart-size", 0, "chart edge length in inches (default from config)")
	f.IntVar(&req.MaxMarkerSize, "max-marker-size", 0, "marker area of a magnitude 0 star in points squared (default from config)")
	return cmd
}

func (a *app) animateCmd() *cobra.Command {
	var (
		req  starchart.AnimationRequest
		loop int
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a time-lapse of the sky as GIF or MP4",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("loop") {
				req.LoopCount = &loop
			}
			path, err := a.svc.GenerateAnimation(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Location, "location", "l", "", "place name, e.g. \"New York\"")
	f.StringVarP(&req.When, "when", "w", "", "local start time at the location, YYYY-MM-DD HH:MM:SS")
	f.Float64Var(&req.Hours, "hours", 1, "length of the time-lapse in hours")
	f.IntVar(&req.StepMinutes, "step", 10, "simulated minutes between frames")
	f.IntVar(&req.ChartSize, "chart-size", 0, "chart edge length in inches (default from config)")
	f.IntVar(&req.MaxMarkerSize, "max-marker-size", 0, "marker area of a magnitude 0 star in points squared (default from config)")
	f.StringVar(&req.Format, "format", "", "gif or mp4 (default from config)")
	f.IntVar(&loop, "loop", 0, "GIF loop count: 0 forever, -1 play once (default from config)")
	return cmd
}

func (a *app) geocodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <place>",
		Short: "Resolve a place name to coordinates",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := a.svc.Geocode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", coords.Latitude, coords.Longitude)
			return nil
		},
	}
}

func (a *app) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the ephemeris, star catalog and constellation lines",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Fetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Data.Dir)
			return nil
		},
	}
}
