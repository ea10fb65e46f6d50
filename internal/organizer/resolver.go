package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/babarot/tidyup/internal/core/digest"
)

// ErrTooManyCollisions is returned when no free name was found within the
// configured number of rename attempts.
var ErrTooManyCollisions = errors.New("too many name collisions")

// DefaultMaxRenameAttempts bounds the _copyN and _backupN probes when the
// configuration leaves the limit unset.
const DefaultMaxRenameAttempts = 10000

// Action is the decision taken for a candidate destination.
type Action int

const (
	// Proceed means the candidate path is free.
	Proceed Action = iota
	// Skip means the candidate already holds identical content.
	Skip
	// Rename means the candidate is taken by different content and Path is
	// a free sibling carrying a _copyN suffix.
	Rename
)

func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case Skip:
		return "skip"
	case Rename:
		return "rename"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Action  Action
	Path    string
	Counter int

	// Digest is the source content hash when Resolve computed one.
	Digest digest.Digest
	Hashed bool
}

// occupancy answers which file, if any, sits at a path. Real runs look at
// the disk; dry runs also see the files they have already planned.
type occupancy interface {
	occupant(path string) (string, bool)
}

type diskOccupancy struct{}

func (diskOccupancy) occupant(path string) (string, bool) {
	if _, err := os.Lstat(path); err == nil {
		return path, true
	}
	return "", false
}

// contentIndex remembers the content of each destination directory during
// one run, so identical files with different names land only once. Files
// already on disk are indexed lazily, one (directory, size) pair at a time.
type contentIndex struct {
	mu      sync.Mutex
	dirs    map[string]map[digest.Digest]string
	indexed map[string]map[int64]bool
}

func newContentIndex() *contentIndex {
	return &contentIndex{
		dirs:    make(map[string]map[digest.Digest]string),
		indexed: make(map[string]map[int64]bool),
	}
}

func (c *contentIndex) lookup(dir string, sum digest.Digest) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	path, ok := c.dirs[dir][sum]
	return path, ok
}

func (c *contentIndex) add(path string, sum digest.Digest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dir := filepath.Dir(path)
	if c.dirs[dir] == nil {
		c.dirs[dir] = make(map[digest.Digest]string)
	}
	if _, ok := c.dirs[dir][sum]; !ok {
		c.dirs[dir][sum] = path
	}
}

func (c *contentIndex) hasSize(dir string, size int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexed[dir][size]
}

func (c *contentIndex) markSize(dir string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexed[dir] == nil {
		c.indexed[dir] = make(map[int64]bool)
	}
	c.indexed[dir][size] = true
}

// Resolver decides what to do when a destination name is already taken.
// Callers must hold the destination directory lock across Resolve and the
// following move.
type Resolver struct {
	HandleDuplicates  bool
	MaxRenameAttempts int

	logger *slog.Logger
	occ    occupancy
	index  *contentIndex
}

// NewResolver returns a Resolver that inspects the filesystem.
func NewResolver(handleDuplicates bool, maxAttempts int, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		HandleDuplicates:  handleDuplicates,
		MaxRenameAttempts: maxAttempts,
		logger:            logger,
		occ:               diskOccupancy{},
	}
}

// Resolve decides between Proceed, Skip and Rename for moving src to
// candidate. Hashing failures never block a file; it is renamed instead.
func (r *Resolver) Resolve(ctx context.Context, src, candidate string) (Resolution, error) {
	var res Resolution

	if r.HandleDuplicates && r.index != nil {
		sum, err := digest.File(ctx, src)
		switch {
		case err != nil && ctx.Err() != nil:
			return Resolution{}, ctx.Err()
		case err != nil:
			r.logger.Warn("cannot hash file", "source", src, "error", err)
		default:
			res.Digest, res.Hashed = sum, true
			dir := filepath.Dir(candidate)
			if err := r.indexExisting(ctx, dir, src); err != nil {
				if ctx.Err() != nil {
					return Resolution{}, ctx.Err()
				}
				r.logger.Warn("cannot index destination directory", "dir", dir, "error", err)
			}
			if prev, ok := r.index.lookup(dir, sum); ok {
				return Resolution{Action: Skip, Path: prev, Digest: sum, Hashed: true}, nil
			}
		}
	}

	existing, taken := r.occ.occupant(candidate)
	if !taken {
		res.Action, res.Path = Proceed, candidate
		return res, nil
	}

	if r.HandleDuplicates {
		same, err := r.sameContent(ctx, res, src, existing)
		switch {
		case err != nil && ctx.Err() != nil:
			return Resolution{}, ctx.Err()
		case err != nil:
			r.logger.Warn("cannot compare contents, keeping both files", "source", src, "destination", candidate, "error", err)
		case same:
			res.Action, res.Path = Skip, candidate
			return res, nil
		}
	}

	path, n, err := freeName(r.occ, candidate, "copy", r.MaxRenameAttempts)
	if err != nil {
		return Resolution{}, err
	}
	res.Action, res.Path, res.Counter = Rename, path, n
	return res, nil
}

// Remember records a placed file so later identical files in the same
// directory are skipped. It is a no-op unless Resolve hashed the source.
func (r *Resolver) Remember(res Resolution) {
	if r.index == nil || !res.Hashed {
		return
	}
	r.index.add(res.Path, res.Digest)
}

// indexExisting hashes the files already in dir that have the same size as
// src, so content placed by an earlier run is recognized under any name.
// Each (dir, size) pair is read at most once per run.
func (r *Resolver) indexExisting(ctx context.Context, dir, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	size := info.Size()
	if r.index.hasSize(dir, size) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fi, err := entry.Info()
		if err != nil || fi.Size() != size {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		sum, err := digest.File(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Debug("cannot hash existing file", "path", path, "error", err)
			continue
		}
		r.index.add(path, sum)
	}

	r.index.markSize(dir, size)
	return nil
}

func (r *Resolver) sameContent(ctx context.Context, res Resolution, src, existing string) (bool, error) {
	if !res.Hashed {
		return digest.Equal(ctx, src, existing)
	}
	sum, err := digest.File(ctx, existing)
	if err != nil {
		return false, err
	}
	return sum == res.Digest, nil
}

// freeName probes path_<marker>1, path_<marker>2, ... until one is unused.
func freeName(occ occupancy, path, marker string, limit int) (string, int, error) {
	if limit <= 0 {
		limit = DefaultMaxRenameAttempts
	}
	for n := 1; n <= limit; n++ {
		next := suffixed(path, marker, n)
		if _, taken := occ.occupant(next); !taken {
			return next, n, nil
		}
	}
	return "", 0, fmt.Errorf("%s: %w (tried %d names)", path, ErrTooManyCollisions, limit)
}
