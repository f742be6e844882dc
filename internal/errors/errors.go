// Package errors defines application errors and exit code mapping.
package errors

import sterrors "errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage       = sterrors.New("usage error")
	// ErrConfig indicates an invalid configuration value or file.
	ErrConfig      = sterrors.New("config error")
	// ErrInput indicates an input could not be opened or read.
	ErrInput       = sterrors.New("input error")
	// ErrInterrupted indicates hashing was cancelled before all inputs finished.
	ErrInterrupted = sterrors.New("interrupted")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrInterrupted) {
		return 130
	}

	if sterrors.Is(err, ErrUsage) || sterrors.Is(err, ErrConfig) {
		return 2
	}

	return 1
}
