// Package errors provides structured error types used across the browser
// so callers can tell recoverable conditions from fatal ones.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeParse,
//	    "failed to parse data file",
//	    cause,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
//
// Only ErrCodeConfig is treated as fatal by the command-line front end.
package errors
