package atomic

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempName returns a hidden sibling of path that is unique per call, so a
// half-written copy never occupies the final name.
func tempName(path string) string {
	return filepath.Join(
		filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()),
	)
}

// SafeWriter writes to a temporary file and only exposes the content under
// its final name on Commit.
type SafeWriter struct {
	path     string
	file     *os.File
	finished bool
}

// NewSafeWriter creates a SafeWriter that will commit to path.
func NewSafeWriter(path string, perm os.FileMode) (*SafeWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}

	f, err := os.OpenFile(tempName(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &SafeWriter{path: path, file: f}, nil
}

func (w *SafeWriter) Write(p []byte) (n int, err error) {
	if w.finished {
		return 0, fmt.Errorf("write to finished writer")
	}
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it to its final path.
func (w *SafeWriter) Commit() error {
	if w.finished {
		return fmt.Errorf("commit finished writer")
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.file.Name())
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(w.file.Name(), w.path); err != nil {
		_ = os.Remove(w.file.Name())
		return fmt.Errorf("rename to destination: %w", err)
	}

	return nil
}

// Cleanup removes the temporary file unless it was committed.
func (w *SafeWriter) Cleanup() {
	if w.finished {
		return
	}
	w.finished = true
	w.discard()
}

func (w *SafeWriter) discard() {
	_ = w.file.Close()
	_ = os.Remove(w.file.Name())
}

// WriteFile writes the output of fn to path atomically.
func WriteFile(path string, perm os.FileMode, fn func(io.Writer) error) error {
	w, err := NewSafeWriter(path, perm)
	if err != nil {
		return err
	}
	defer w.Cleanup()

	if err := fn(w); err != nil {
		return err
	}
	return w.Commit()
}
