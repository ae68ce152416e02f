// Package config loads the static configuration tables and runtime settings.
//
// # Tables
//
// Three YAML tables drive classification and display:
//
//   - types.yaml: ordered list of categories and the raw JSON "type" tags
//     each accepts. Order matters: the first category listing a tag wins.
//   - unwanted.yaml: per-category fields hidden from display, plus the
//     "all" list applied to every category.
//   - translations.yaml: per-category raw field name -> display label.
//
// The tables are embedded in the binary. A directory given with
// --config-dir (or CDDAB_CONFIG_DIR) overlays files of the same name:
//
//	provider, err := config.NewLayeredDataProvider(config.DefaultDataProvider(),
//	    config.LayeredProviderConfig{ExternalDir: dir})
//	tables, err := config.LoadTables(provider)
//
// A missing or malformed table is an ErrCodeConfig error and aborts startup.
//
// # Settings
//
// Runtime settings come from the environment via caarlos0/env:
//
//	CDDAB_DATA_DIR             game JSON directory
//	CDDAB_CONFIG_DIR           table override directory
//	CDDAB_FORMAT               default output format
//	CDDAB_WATCH_DEBOUNCE       quiet period before a watched change reloads
//	CDDAB_RELOAD_MIN_INTERVAL  minimum time between two reloads
//	LOG_LEVEL                  log level
package config
