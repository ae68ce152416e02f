// Package logging provides structured logging utilities for the cddab browser.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so every component logs the same way: JSON records on stderr, a level taken
// from the --log-level flag or the LOG_LEVEL environment variable, and the
// module name and version attached to every record. Debug logs carry source
// locations.
//
// # Usage
//
// Setting the default logger early in main:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cddab", "v1.0.0")
//	    slog.Info("store loaded", "records", 51234)
//	}
//
// Setting an explicit level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cddab", version, "warn")
//
// Creating a dedicated logger:
//
//	logger := logging.NewStructuredLogger("cddab", "v2.0.0", "debug")
//	logger.Info("loading", "dir", "/games/cdda/data/json")
//
// # Environment Configuration
//
//	LOG_LEVEL=debug cddab search --dir ./data/json "kevlar"
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "skipping unparsable data file",
//	    "module": "cddab",
//	    "version": "v1.0.0",
//	    "path": "data/json/items/broken.json"
//	}
//
// # Levels
//
//	slog.Debug("preset resolved", "id", id)          // troubleshooting
//	slog.Info("store loaded", "records", n)          // normal operations
//	slog.Warn("skipping unparsable data file")       // recoverable data issues
//	slog.Error("failed to load configuration")       // fatal conditions
package logging
