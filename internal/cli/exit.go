package cli

import (
	"errors"
	"fmt"
)

// Process exit codes
const (
	ExitOK          = 0
	ExitStartup     = 1 // configuration or environment error
	ExitFailures    = 2 // batch finished with failed tracks
	ExitInterrupted = 130
)

// exitError carries a specific exit code out of a cobra command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// ExitCode maps an error returned by the root command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitStartup
}

// reportable reports whether err carries a message worth printing
func reportable(err error) bool {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.err != nil
	}
	return err != nil
}
