/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"
)

const metricPrefix = "cddab_"

func statsCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Load the data directory and report what was found.",
		Description: `Print the load report: files scanned and failed, records loaded per
category, and the files that could not be parsed.

With --metrics the browser's Prometheus metrics are appended in the text
exposition format.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "also print the collected metrics",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			report, err := a.load(ctx, cmd)
			if err != nil {
				return err
			}
			if err := a.emit(ctx, cmd, report); err != nil {
				return err
			}
			if !cmd.Bool("metrics") {
				return nil
			}
			return writeMetrics(stdout(cmd), prometheus.DefaultGatherer)
		},
	}
}

// writeMetrics prints the gathered browser metric families.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), metricPrefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
