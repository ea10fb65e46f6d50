package atomic

import (
	"errors"
	"fmt"
)

var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrSourceNotFound    = errors.New("source file not found")
	ErrCrossDeviceMove   = errors.New("cross-device move not allowed")
	ErrIsDirectory       = errors.New("source is a directory")
	ErrInvalidPath       = errors.New("invalid path specified")
)

// MoveError records which step of a move failed.
type MoveError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s -> %s: %s: %v", e.Src, e.Dst, e.Op, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
