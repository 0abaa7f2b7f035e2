package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/leengari/gridtable/internal/config"
	"github.com/leengari/gridtable/internal/engine"
	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/interchange"
	"github.com/leengari/gridtable/internal/repl"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query failure (unknown table, syntax error, etc.)
	ExitCommandError = 2 // Command error (bad config, unreadable data directory, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeResult renders res in the table or json format.
func writeResult(w io.Writer, format string, res *engine.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	repl.PrintResult(w, res)
	return nil
}

// writeTable renders t as delimited text using the interchange settings.
func writeTable(w io.Writer, t *grid.Table, cfg config.InterchangeConfig) error {
	writer := &interchange.Writer{
		Delimiter: cfg.Delimiter,
		Header:    cfg.Header,
		Null:      cfg.Null,
	}
	return writer.Write(w, t)
}
