/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/logging"
	"github.com/NVIDIA/cdda-json-browser/pkg/serializer"
)

const (
	envDataDir   = "CDDAB_DATA_DIR"
	envConfigDir = "CDDAB_CONFIG_DIR"
	envFormat    = "CDDAB_FORMAT"
)

const (
	flagLogLevel  = "log-level"
	flagDataDir   = "dir"
	flagConfigDir = "config-dir"
	flagFormat    = "format"
	flagOutput    = "output"
	flagCategory  = "category"
	flagRaw       = "raw"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars(logging.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:    flagDataDir,
			Aliases: []string{"d"},
			Usage:   "game data directory (for example <game>/data/json)",
			Sources: cli.EnvVars(envDataDir),
		},
		&cli.StringFlag{
			Name:    flagConfigDir,
			Usage:   "directory with types.yaml, unwanted.yaml or translations.yaml overriding the built-in tables",
			Sources: cli.EnvVars(envConfigDir),
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
			Value:   string(serializer.FormatText),
			Sources: cli.EnvVars(envFormat),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "output file path (default: stdout)",
		},
	}
}

func rawFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  flagRaw,
		Usage: "print the record as loaded, without translation or recipe expansion",
	}
}

func categoryFlag(def category.Category) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagCategory,
		Aliases: []string{"c"},
		Usage:   "record category to search (see: cddab categories)",
		Value:   string(def),
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String(flagFormat))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// queryText joins positional arguments into one query string.
func queryText(cmd *cli.Command) (string, error) {
	text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("%s: a name or query is required", cmd.Name)
	}
	return text, nil
}
