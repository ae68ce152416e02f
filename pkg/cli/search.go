/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
	"github.com/NVIDIA/cdda-json-browser/pkg/search"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

func searchCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search a category by name or by key:value attributes.",
		ArgsUsage: "<name | key:value ...>",
		Description: `Text without a colon is a name query. Otherwise every key:value pair
is an attribute the record should carry; values are compared with
fuzzy matching and the best scoring records are listed.

When one record matches every attribute exactly it is printed in full.

Examples:

  cddab search kevlar vest
  cddab search --category item volume:5 weight:250
  cddab search --category mutation --format json name:night vision`,
		Flags: []cli.Flag{
			categoryFlag(category.Item),
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
			c, err := a.browser.Category(cmd.String(flagCategory))
			if err != nil {
				return err
			}

			result, err := a.browser.Search(text, c)
			if err != nil {
				return err
			}
			if !result.Definitive() {
				slog.Debug("search finished", "category", c, "candidates", len(result.Candidates))
				return a.emit(ctx, cmd, result.Names())
			}
			return a.emitRecord(ctx, cmd, result.Record, c)
		},
	}
}

func showCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the record with exactly the given name.",
		ArgsUsage: "<name>",
		Description: `Print one record of a category, translated for display. Recipes are
expanded: requirement presets are resolved and ids replaced by names.

Fails when no record carries the name; close names are suggested.

Examples:

  cddab show rock
  cddab show --category bionic "power storage"`,
		Flags: []cli.Flag{
			categoryFlag(category.Item),
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
			c, err := a.browser.Category(cmd.String(flagCategory))
			if err != nil {
				return err
			}

			result, err := a.browser.Lookup(search.NameQuery(cases.Lower(language.Und).String(text)), c)
			if err != nil {
				return err
			}
			if !result.Definitive() {
				return notFound(c, text, result.Names())
			}
			return a.emitRecord(ctx, cmd, result.Record, c)
		},
	}
}

// emitRecord prints a record, translated unless --raw is set. A recipe
// that cannot be expanded is still printed and the failure logged.
func (a *app) emitRecord(ctx context.Context, cmd *cli.Command, rec *store.Record, c category.Category) error {
	if cmd.Bool(flagRaw) {
		return a.emit(ctx, cmd, rec)
	}
	out, err := a.browser.Translate(rec, c)
	if err != nil && out == nil {
		return err
	}
	return a.emit(ctx, cmd, out)
}

func notFound(c category.Category, name string, names []string) error {
	if len(names) > defaults.MaxSuggestions {
		names = names[:defaults.MaxSuggestions]
	}
	msg := fmt.Sprintf("no %s named %q", c, name)
	if len(names) > 0 {
		msg = fmt.Sprintf("%s, did you mean: %s", msg, strings.Join(names, "; "))
	}
	return cdderrors.NewWithContext(cdderrors.ErrCodeNotFound, msg,
		map[string]any{"category": c.String(), "name": name, "suggestions": names})
}
