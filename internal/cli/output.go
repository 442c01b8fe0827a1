package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"enumarg-generator/internal/diagfmt"
	"enumarg-generator/internal/diagnostic"
	"enumarg-generator/internal/source"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Diagnostics with errors were reported
	ExitCommandError = 2 // Command error (bad flags, unloadable packages, I/O)
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

// GetExitCode extracts the exit code from an error. Errors that are not
// an ExitError are command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitCommandError
}

// useColor resolves --color for w: "auto" colours terminals only.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}

	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeDiagnostics prints diags in the selected format.
func writeDiagnostics(opts *RootOptions, w io.Writer, diags []diagnostic.Diagnostic, fs *source.FileSet, baseDir string) error {
	fopts := diagfmt.Options{
		Color:   useColor(opts.Color, w),
		BaseDir: baseDir,
	}

	if opts.Format == "json" {
		return diagfmt.JSON(w, diags, fs, fopts)
	}

	if len(diags) == 0 {
		return nil
	}

	if err := diagfmt.Pretty(w, diags, fs, fopts); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)

	return err
}

// writeJSON encodes v indented.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
