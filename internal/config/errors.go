package config

import (
	"errors"
	"fmt"
)

// ErrConfig matches every configuration error via errors.Is
var ErrConfig = errors.New("invalid configuration")

var (
	errNotTOML       = errors.New("tracks file must be a TOML file")
	errIsDirectory   = errors.New("tracks path must lead to a file, not a directory")
	errUnknownField  = errors.New("unknown field")
	errLegacyLayout  = errors.New("expected a table of artist = [titles]")
	errNegativeValue = errors.New("must not be negative")
)

// ParseError reports a tracks file that is missing, unreadable or malformed
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrConfig }

// ValidationError reports a well-formed file or setting with an invalid value.
// Entry is the 1-based position of the offending track, or 0 when the error
// is not tied to a single track.
type ValidationError struct {
	Path  string
	Entry int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	msg := e.Field + ": " + e.Err.Error()
	if e.Entry > 0 {
		msg = fmt.Sprintf("entry %d: %s", e.Entry, msg)
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrConfig }
