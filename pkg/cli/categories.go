/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cdda-json-browser/pkg/serializer"
)

// categorySummary is one row of the categories listing.
type categorySummary struct {
	Name    string `json:"name" yaml:"name"`
	Records *int   `json:"records,omitempty" yaml:"records,omitempty"`
}

func categoriesCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the record categories.",
		Description: `List the categories records are classified into. When a data directory
is configured the number of records loaded per category is shown too.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			counted := a.settings.DataDir != ""
			if counted {
				if _, err := a.load(ctx, cmd); err != nil {
					return err
				}
			}

			st := a.browser.Store()
			cats := a.browser.Categories()
			summaries := make([]categorySummary, 0, len(cats))
			for _, c := range cats {
				s := categorySummary{Name: c.String()}
				if counted {
					n := st.Count(c)
					s.Records = &n
				}
				summaries = append(summaries, s)
			}

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if format != serializer.FormatText {
				return a.emit(ctx, cmd, summaries)
			}

			lines := make([]string, 0, len(summaries))
			for _, s := range summaries {
				if s.Records == nil {
					lines = append(lines, s.Name)
					continue
				}
				lines = append(lines, fmt.Sprintf("%-14s %d", s.Name, *s.Records))
			}
			return a.emit(ctx, cmd, lines)
		},
	}
}
