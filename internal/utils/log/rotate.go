package log

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/babarot/tidyup/internal/config"
	"github.com/docker/go-units"
	"github.com/samber/lo"
)

const rotatedStamp = "20060102-150405.000"

// RotateWriter appends to a log file and moves it aside as
// <path>.<timestamp> before a write would take it past the size limit.
// Only the newest maxFiles rotated files are kept; zero keeps them all.
type RotateWriter struct {
	path     string
	limit    int64
	maxFiles int
	now      func() time.Time

	mu   sync.Mutex
	f    *os.File
	size int64
}

func NewRotateWriter(path string, cfg config.RotationConfig) (*RotateWriter, error) {
	var limit int64
	if cfg.MaxSize != "" {
		n, err := units.FromHumanSize(cfg.MaxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid rotation size %q: %w", cfg.MaxSize, err)
		}
		limit = n
	}

	w := &RotateWriter{
		path:     path,
		limit:    limit,
		maxFiles: cfg.MaxFiles,
		now:      time.Now,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shouldRotate(len(p)) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// shouldRotate never rotates an empty file, so a single record larger than
// the limit is still written.
func (w *RotateWriter) shouldRotate(n int) bool {
	return w.limit > 0 && w.size > 0 && w.size+int64(n) > w.limit
}

func (w *RotateWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f, w.size = f, info.Size()
	return nil
}

// rotate runs with mu held.
func (w *RotateWriter) rotate() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	w.f = nil

	aside := w.path + "." + w.now().Format(rotatedStamp)
	if err := os.Rename(w.path, aside); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := w.prune(); err != nil {
		return err
	}
	return w.open()
}

func (w *RotateWriter) prune() error {
	if w.maxFiles <= 0 {
		return nil
	}
	rotated, err := filepath.Glob(w.path + ".*")
	if err != nil {
		return err
	}
	rotated = lo.Filter(rotated, func(p string, _ int) bool {
		info, err := os.Lstat(p)
		return err == nil && info.Mode().IsRegular()
	})
	if len(rotated) <= w.maxFiles {
		return nil
	}
	// The timestamp suffix sorts oldest first.
	slices.Sort(rotated)
	for _, p := range rotated[:len(rotated)-w.maxFiles] {
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	return nil
}
