package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/docscan/internal/configloader"
	"github.com/yaklabco/docscan/pkg/fsutil"
)

// Exit codes for docscan.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates violations under --strict, or an error of no
	// more specific class.
	ExitFailure = 1

	// ExitConfigError indicates an invalid configuration file, environment
	// variable or flag value.
	ExitConfigError = 65

	// ExitIOError indicates that a path was missing or a file could not be
	// read or written.
	ExitIOError = 74

	// ExitInterrupted indicates the run was cancelled, typically by Ctrl-C.
	ExitInterrupted = 130
)

// Sentinel errors returned by commands to select the exit code.
var (
	// ErrViolationsFound is returned by check --strict when violations were found.
	ErrViolationsFound = errors.New("violations found")

	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrViolationsFound):
		return ExitFailure
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// IsSilent reports whether err only signals an exit code and has already
// been reported.
func IsSilent(err error) bool {
	return errors.Is(err, ErrViolationsFound) || errors.Is(err, ErrFilesFailed)
}
