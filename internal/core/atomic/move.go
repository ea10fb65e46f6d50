package atomic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	cp "github.com/otiai10/copy"
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Allow cross-device moves (copy+delete)
	Force         bool // Replace the destination if it exists
}

// Move relocates the regular file src to dst. A rename is tried first when
// both paths share a partition; otherwise, and when the rename reports a
// cross-device link, the file is copied next to dst under a temporary name,
// renamed into place, and the source is removed. On any failure the file is
// left at src. ctx bounds the cross-device copy.
func Move(ctx context.Context, src, dst string, opts MoveOptions) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if !opts.Force {
		if _, err := os.Lstat(dst); err == nil {
			return &MoveError{Op: "check_destination", Src: src, Dst: dst, Err: ErrDestinationExists}
		}
	}

	sameDevice, _ := isSamePartition(src, dst)
	if sameDevice {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		if !isCrossDeviceErr(err) {
			return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
		}
	}

	if !opts.AllowCrossDev {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: ErrCrossDeviceMove}
	}

	return copyAndDelete(ctx, src, dst)
}

// copyAndDelete copies src to a temporary sibling of dst, renames it into
// place and then deletes the original.
func copyAndDelete(ctx context.Context, src, dst string) error {
	tmp := tempName(dst)

	if err := Copy(ctx, src, tmp); err != nil {
		_ = os.Remove(tmp)
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return &MoveError{Op: "commit", Src: src, Dst: dst, Err: err}
	}

	if err := os.Remove(src); err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			return &MoveError{
				Op:  "cleanup",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr),
			}
		}
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}

	return nil
}

// Copy copies the regular file src to dst, preserving modification times
// and syncing the result to disk. It stops between reads once ctx is done.
func Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return cp.Copy(src, dst, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
		PreserveTimes: true,
		Sync:          true,
		WrapReader: func(r io.Reader) io.Reader {
			return &ctxReader{ctx: ctx, r: r}
		},
	})
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func isCrossDeviceErr(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return false
}

func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	info, err := os.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &MoveError{Op: "stat_source", Src: src, Dst: dst, Err: ErrSourceNotFound}
		}
		return &MoveError{Op: "stat_source", Src: src, Dst: dst, Err: err}
	}
	if info.IsDir() {
		return &MoveError{Op: "stat_source", Src: src, Dst: dst, Err: ErrIsDirectory}
	}

	return nil
}
