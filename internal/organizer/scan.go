package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/babarot/tidyup/internal/config"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// FileRecord describes one file found under the source root.
type FileRecord struct {
	Path      string
	RelPath   string
	Name      string
	Extension string
	Size      int64
	ModTime   time.Time
}

// Filter decides which discovered files are handed to the pipeline.
type Filter struct {
	SkipHidden   bool
	HiddenPrefix string
	Names        []string
	Patterns     []*regexp.Regexp
	Globs        []glob.Glob
	MaxSize      int64
}

// NewFilter compiles the scan section of the configuration.
func NewFilter(cfg config.Config) (*Filter, error) {
	f := &Filter{
		SkipHidden:   cfg.Scan.SkipHidden,
		HiddenPrefix: cfg.Scan.HiddenPrefix,
		Names:        cfg.Scan.Exclude.Files,
		MaxSize:      cfg.MaxFileSizeBytes(),
	}
	for _, p := range cfg.Scan.Exclude.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		f.Patterns = append(f.Patterns, re)
	}
	for _, g := range cfg.Scan.Exclude.Globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			return nil, fmt.Errorf("exclude glob %q: %w", g, err)
		}
		f.Globs = append(f.Globs, compiled)
	}
	return f, nil
}

// Reject returns a non-empty reason when rec should be left alone.
func (f *Filter) Reject(rec FileRecord) string {
	switch {
	case f.SkipHidden && f.HiddenPrefix != "" && strings.HasPrefix(rec.Name, f.HiddenPrefix):
		return "hidden"
	case lo.Contains(f.Names, rec.Name):
		return "excluded name"
	case lo.SomeBy(f.Patterns, func(re *regexp.Regexp) bool { return re.MatchString(rec.Name) }):
		return "excluded pattern"
	case lo.SomeBy(f.Globs, func(g glob.Glob) bool { return g.Match(rec.Name) }):
		return "excluded glob"
	case f.MaxSize > 0 && rec.Size > f.MaxSize:
		return "too large"
	}
	return ""
}

// Scan walks root and returns every regular file the filter accepts, in
// walk order. Directories listed in prune are not descended into.
func Scan(ctx context.Context, root string, filter *Filter, prune []string, logger *slog.Logger) ([]FileRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	prune = lo.Map(prune, func(p string, _ int) string { return filepath.Clean(p) })

	var records []FileRecord
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("cannot read entry, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && lo.Contains(prune, filepath.Clean(path)) {
				logger.Debug("not descending into output directory", "path", path)
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("cannot stat file, skipping", "path", path, "error", err)
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		rec := FileRecord{
			Path:      path,
			RelPath:   rel,
			Name:      d.Name(),
			Extension: extension(d.Name()),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
		}
		if reason := filter.Reject(rec); reason != "" {
			logger.Debug("skipping file", "path", path, "reason", reason)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// extension returns the lowercased extension of name. Names such as
// ".bashrc" have none.
func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return strings.ToLower(ext)
}
