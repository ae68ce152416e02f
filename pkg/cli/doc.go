// Package cli implements the cddab command line, a browser for the JSON
// definition files of Cataclysm: Dark Days Ahead.
//
// # Overview
//
// cddab loads every JSON file under a game data directory, classifies the
// records into categories (item, mutation, bionic, recipe and so on) and
// answers name and attribute queries against them. Records are printed
// translated: unwanted fields are hidden, field names get display labels,
// and recipes have their requirement presets resolved.
//
// # Commands
//
// search - Search a category:
//
//	cddab search [--category item] <name | key:value ...>
//
// A record matching every attribute exactly is printed in full, otherwise
// the names of the closest records are listed, best first.
//
// show - Print the record with exactly the given name:
//
//	cddab show [--category item] <name>
//
// craft - Print the recipe producing an item:
//
//	cddab craft <item name>
//
// categories - List categories and, with a data directory, record counts:
//
//	cddab categories
//
// browse - Interactive search loop, optionally reloading on file changes:
//
//	cddab browse [--category item] [--watch]
//
// stats - Print the load report and, with --metrics, collected metrics:
//
//	cddab stats [--metrics]
//
// # Global Flags
//
//	--dir, -d      Game data directory
//	--config-dir   Directory overriding the built-in tables
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: text, json, yaml, table (default: text)
//	--log-level    Logging verbosity (default: info)
//
// # Environment Variables
//
//	CDDAB_DATA_DIR             Game data directory
//	CDDAB_CONFIG_DIR           Table override directory
//	CDDAB_FORMAT               Output format
//	CDDAB_WATCH_DEBOUNCE       Quiet period before a watched reload (default: 500ms)
//	CDDAB_RELOAD_MIN_INTERVAL  Minimum time between watched reloads (default: 2s)
//	LOG_LEVEL                  Logging verbosity
//
// Flags take precedence over environment variables.
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, nothing found, load failure)
//	2  Context canceled
package cli
