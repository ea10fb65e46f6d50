package organizer

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is matched by every SourceError.
var ErrSourceUnavailable = errors.New("source directory unavailable")

// SourceError is returned by Run when the source root cannot be used. It is
// the only per-run failure; everything that goes wrong with a single file is
// reported in that file's outcome instead.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSourceUnavailable, e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}
