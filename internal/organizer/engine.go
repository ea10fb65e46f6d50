// Package organizer moves files from a source tree into a category and
// date layout under a target root.
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
	"time"

	"github.com/babarot/tidyup/internal/config"
	"github.com/babarot/tidyup/internal/core/atomic"
	"github.com/babarot/tidyup/internal/report"
	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/dustin/go-humanize"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"
)

// State is the phase an Engine is in.
type State int

const (
	Idle State = iota
	Scanning
	ProcessingFiles
	Finalizing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Scanning:
		return "Scanning"
	case ProcessingFiles:
		return "ProcessingFiles"
	case Finalizing:
		return "Finalizing"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Engine runs the organize pipeline for one configuration.
type Engine struct {
	cfg      config.Config
	logger   *slog.Logger
	now      func() time.Time
	dryRun   bool
	progress func(report.Outcome)

	fileTimeout time.Duration

	mu    sync.RWMutex
	state State
	stats *Statistics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger events are written to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces time.Now. Backup directories and the report use it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithDryRun makes Run plan destinations without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithProgress registers a callback invoked once per finished file. It may
// be called from several goroutines at once.
func WithProgress(fn func(report.Outcome)) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New returns an Engine for cfg. cfg is expected to have passed
// config.Validate.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:         cfg,
		logger:      slog.Default(),
		now:         time.Now,
		fileTimeout: cfg.FileTimeout(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current phase.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Stats returns the live counters of the current or last run.
func (e *Engine) Stats() StatsSnapshot {
	e.mu.RLock()
	stats := e.stats
	e.mu.RUnlock()
	if stats == nil {
		return StatsSnapshot{}
	}
	return stats.Snapshot()
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
	e.logger.Debug("state changed", "state", s.String())
}

// run holds what one invocation of Run shares between workers.
type run struct {
	logger     *slog.Logger
	classifier *Classifier
	resolver   *Resolver
	backup     *Backup
	dirLocks   *keyedMutex
	plan       *plannedOccupancy
	stats      *Statistics
	minSize    int64
	timeout    time.Duration
}

// Run organizes the source tree once. Per-file failures are recorded in the
// result; the returned error is non-nil only when the run could not start,
// in which case it is a *SourceError or a configuration problem.
//
// When ctx is canceled no new files are started, files already in flight
// finish, and a partial result with Summary.Canceled set is returned.
func (e *Engine) Run(ctx context.Context) (*report.Result, error) {
	cfg := e.cfg
	start := e.now()
	runID := xid.New().String()
	logger := e.logger.With("run_id", runID)

	stats := newStatistics(start)
	e.mu.Lock()
	e.stats = stats
	e.mu.Unlock()
	e.setState(Idle)

	summary := report.Summary{
		RunID:     runID,
		StartedAt: start,
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    e.dryRun,
	}

	info, err := os.Stat(cfg.SourceDir)
	switch {
	case errors.Is(err, fs.ErrNotExist) && cfg.Engine.SeedMissingSource && !e.dryRun:
		logger.Warn("source directory does not exist, creating it with example files", "source", cfg.SourceDir)
		seeded, err := seedSource(cfg.SourceDir, start)
		if err != nil {
			return nil, &SourceError{Path: cfg.SourceDir, Err: err}
		}
		summary.Seeded = seeded
		log.Important(logger, "created example files, run again to organize them", "count", len(seeded))
		return e.finalize(logger, stats, summary, nil), nil
	case err != nil:
		return nil, &SourceError{Path: cfg.SourceDir, Err: err}
	case !info.IsDir():
		return nil, &SourceError{Path: cfg.SourceDir, Err: errors.New("not a directory")}
	}

	if !e.dryRun {
		if err := os.MkdirAll(cfg.TargetDir, 0755); err != nil {
			return nil, fmt.Errorf("create target directory: %w", err)
		}
	}
	if !atomic.SameFilesystem(cfg.SourceDir, cfg.TargetDir) {
		logger.Info("source and target are on different filesystems, files will be copied", "source", cfg.SourceDir, "target", cfg.TargetDir)
	}

	filter, err := NewFilter(cfg)
	if err != nil {
		return nil, err
	}

	e.setState(Scanning)
	records, err := Scan(ctx, cfg.SourceDir, filter, []string{cfg.TargetDir, cfg.BackupDir, cfg.ReportDir}, logger)
	if err != nil {
		if ctx.Err() == nil {
			return nil, &SourceError{Path: cfg.SourceDir, Err: err}
		}
		summary.Canceled = true
		logger.Warn("run canceled while scanning")
		return e.finalize(logger, stats, summary, nil), nil
	}
	if len(records) == 0 {
		logger.Info("no files found to organize", "source", cfg.SourceDir)
	} else {
		logger.Info("found files to process", "count", len(records))
	}

	r := &run{
		logger:     logger,
		classifier: NewClassifier(cfg.FileTypes),
		resolver:   NewResolver(cfg.HandleDuplicates, cfg.Engine.MaxRenameAttempts, logger),
		backup:     NewBackup(cfg.BackupDir, start, cfg.CreateBackup, cfg.Engine.MaxRenameAttempts),
		dirLocks:   newKeyedMutex(),
		stats:      stats,
		minSize:    cfg.MinFileSizeBytes(),
		timeout:    e.fileTimeout,
	}
	r.resolver.index = newContentIndex()
	if e.dryRun {
		r.plan = newPlannedOccupancy()
		r.resolver.occ = r.plan
	}

	e.setState(ProcessingFiles)
	outcomes := e.process(ctx, r, records)

	summary.Canceled = ctx.Err() != nil
	summary.Unprocessed = len(records) - len(outcomes)
	if summary.Canceled {
		logger.Warn("run canceled, returning partial result", "processed", len(outcomes), "unprocessed", summary.Unprocessed)
	}
	return e.finalize(logger, stats, summary, outcomes), nil
}

// process fans records out to a bounded worker pool and returns the
// outcomes of the files that were started, in scan order.
func (e *Engine) process(ctx context.Context, r *run, records []FileRecord) []report.Outcome {
	workers := e.cfg.Engine.Parallelism
	if workers <= 0 {
		workers = 1
	}

	// In-flight files keep running after ctx is canceled.
	fileCtx := context.WithoutCancel(ctx)

	results := make([]report.Outcome, len(records))
	started := make([]bool, len(records))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range records {
		i, rec := i, rec
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			started[i] = true
			results[i] = e.processFile(fileCtx, r, rec)
			return nil
		})
	}
	_ = g.Wait()

	outcomes := make([]report.Outcome, 0, len(records))
	for i := range records {
		if started[i] {
			outcomes = append(outcomes, results[i])
		}
	}
	return outcomes
}

// processFile runs one file through classify, resolve, backup and move.
// It always returns exactly one terminal outcome.
func (e *Engine) processFile(ctx context.Context, r *run, rec FileRecord) (out report.Outcome) {
	out = report.Outcome{
		Source:    rec.Path,
		Extension: rec.Extension,
		Size:      rec.Size,
		ModTime:   rec.ModTime,
	}
	logger := r.logger.With("file", rec.RelPath)

	defer func() {
		if p := recover(); p != nil {
			out.Status = report.StatusError
			out.Error = fmt.Sprintf("panic: %v", p)
			logger.Error("panic while processing file", "panic", p)
		}
		r.stats.record(out)
		if n := r.stats.Snapshot().FilesProcessed; n%10 == 0 {
			logger.Info("progress", "processed", n)
		}
		if e.progress != nil {
			e.progress(out)
		}
	}()

	fail := func(err error) report.Outcome {
		out.Status = report.StatusError
		out.Error = err.Error()
		logger.Error("failed to process file", "error", err)
		return out
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if rec.Size < r.minSize {
		out.Status = report.StatusSkipped
		out.Reason = report.ReasonTooSmall
		logger.Info("skipping small file", "size", humanize.IBytes(uint64(rec.Size)))
		return out
	}

	out.Category = r.classifier.Classify(rec.Extension)

	var dir string
	if e.dryRun {
		dir = TargetDir(e.cfg.TargetDir, out.Category, rec.ModTime, e.cfg.OrganizeByDate)
	} else {
		var err error
		dir, err = BuildTargetDir(e.cfg.TargetDir, out.Category, rec.ModTime, e.cfg.OrganizeByDate)
		if err != nil {
			return fail(err)
		}
	}

	unlock := r.dirLocks.Lock(dir)
	defer unlock()

	res, err := r.resolver.Resolve(ctx, rec.Path, filepath.Join(dir, rec.Name))
	if err != nil {
		return fail(err)
	}
	out.Destination = res.Path

	switch res.Action {
	case Skip:
		out.Status = report.StatusSkipped
		out.Reason = report.ReasonIdenticalContent
		logger.Info("duplicate found", "existing", res.Path)
		return out
	case Rename:
		out.Renamed = true
	}

	if e.dryRun {
		r.plan.reserve(res.Path, rec.Path)
		r.resolver.Remember(res)
		out.Status = report.StatusPlanned
		logger.Info("would move", "category", out.Category, "destination", res.Path)
		return out
	}

	if path, err := r.backup.Save(ctx, rec.Path); err != nil {
		out.BackupError = err.Error()
		logger.Error("failed to create backup", "error", err)
	} else if path != "" {
		out.BackupPath = path
		logger.Debug("backup created", "backup", path)
	}

	if err := atomic.Move(ctx, rec.Path, res.Path, atomic.MoveOptions{AllowCrossDev: true}); err != nil {
		return fail(err)
	}

	r.resolver.Remember(res)
	out.Status = report.StatusMoved
	logger.Info("moved", "category", out.Category, "destination", res.Path)
	return out
}

func (e *Engine) finalize(logger *slog.Logger, stats *Statistics, summary report.Summary, outcomes []report.Outcome) *report.Result {
	e.setState(Finalizing)

	end := e.now()
	stats.finish(end)
	snap := stats.Snapshot()

	summary.FinishedAt = end
	summary.Duration = end.Sub(summary.StartedAt)
	summary.State = Done.String()

	result := report.Assemble(summary, outcomes)
	result.Config = e.cfg
	if snap.Statistics != result.Statistics {
		logger.Warn("live counters disagree with outcomes", "live", snap.Statistics, "outcomes", result.Statistics)
	}

	e.setState(Done)
	logger.Info("run finished",
		"processed", result.Statistics.FilesProcessed,
		"moved", result.Statistics.FilesMoved,
		"duplicates", result.Statistics.DuplicatesFound,
		"errors", result.Statistics.Errors,
		"duration", summary.Duration,
	)
	return result
}

// plannedOccupancy lets a dry run see the destinations it already handed out.
type plannedOccupancy struct {
	mu       sync.Mutex
	reserved map[string]string
}

func newPlannedOccupancy() *plannedOccupancy {
	return &plannedOccupancy{reserved: make(map[string]string)}
}

func (p *plannedOccupancy) reserve(dst, src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reserved[dst] = src
}

func (p *plannedOccupancy) occupant(path string) (string, bool) {
	p.mu.Lock()
	src, ok := p.reserved[path]
	p.mu.Unlock()
	if ok {
		return src, true
	}
	return diskOccupancy{}.occupant(path)
}
