package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/babarot/tidyup/internal/core/atomic"
)

// Backup copies originals into a dated directory before they are moved.
type Backup struct {
	dir      string
	limit    int
	disabled bool
	locks    *keyedMutex
}

// NewBackup returns a Backup writing to root/YYYY-MM-DD for the given day.
// A disabled Backup is a no-op.
func NewBackup(root string, day time.Time, enabled bool, limit int) *Backup {
	return &Backup{
		dir:      filepath.Join(root, day.Format("2006-01-02")),
		limit:    limit,
		disabled: !enabled,
		locks:    newKeyedMutex(),
	}
}

// Dir is the dated directory copies are written to.
func (b *Backup) Dir() string {
	return b.dir
}

// Enabled reports whether Save does anything.
func (b *Backup) Enabled() bool {
	return !b.disabled
}

// Save copies src into the backup directory and returns the path written.
// Name collisions get a _backupN suffix.
func (b *Backup) Save(ctx context.Context, src string) (string, error) {
	if b.disabled {
		return "", nil
	}

	unlock := b.locks.Lock(b.dir)
	defer unlock()

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dst := filepath.Join(b.dir, filepath.Base(src))
	if _, taken := (diskOccupancy{}).occupant(dst); taken {
		next, _, err := freeName(diskOccupancy{}, dst, "backup", b.limit)
		if err != nil {
			return "", err
		}
		dst = next
	}

	if err := atomic.Copy(ctx, src, dst); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy to backup: %w", err)
	}
	return dst, nil
}
