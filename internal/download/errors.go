package download

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoResult means the search found nothing usable, including results
	// rejected by the duration filter
	ErrNoResult = errors.New("no matching result")

	// ErrTooSmall means the produced file was below the minimum size and was removed
	ErrTooSmall = errors.New("file is smaller than the minimum size")
)

// FetchError reports a fetch that could not produce audio for a track
type FetchError struct {
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Target, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FilesystemError reports a directory or file that could not be created or written
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// isRetryable reports whether a failed fetch may succeed when attempted again
func isRetryable(err error) bool {
	return !errors.Is(err, ErrNoResult) && !errors.Is(err, ErrTooSmall) &&
		!errors.Is(err, context.Canceled)
}
