/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

func craftCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "craft",
		Usage:     "Show how an item is crafted.",
		ArgsUsage: "<item name>",
		Description: `Find the recipe whose result is the named item and print it with
requirement presets resolved: components, tools and qualities are listed
by name, one alternative group per line.

Examples:

  cddab craft wooden door
  cddab craft --format yaml "makeshift crowbar"`,
		Flags: []cli.Flag{
			rawFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text, err := queryText(cmd)
			if err != nil {
				return err
			}
			if _, err := a.load(ctx, cmd); err != nil {
				return err
			}

			result, err := a.browser.Craft(text)
			if err != nil {
				if cdderrors.IsCode(err, cdderrors.ErrCodeNotFound) {
					var names []string
					if v, ok := cdderrors.ContextValue(err, "suggestions"); ok {
						names, _ = v.([]string)
					}
					return notFound(category.Item, text, names)
				}
				return err
			}
			if !result.Definitive() {
				return cdderrors.NewWithContext(cdderrors.ErrCodeNotFound,
					fmt.Sprintf("no recipe makes %q", text),
					map[string]any{"item": text})
			}
			return a.emitRecord(ctx, cmd, result.Record, category.Recipe)
		},
	}
}
