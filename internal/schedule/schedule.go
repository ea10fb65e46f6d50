// Package schedule re-runs a job on a fixed interval, one run at a time.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/k1LoW/duration"
)

// DefaultRetryDelay is how long the scheduler waits after a failed run.
const DefaultRetryDelay = 5 * time.Minute

// maxHours is the largest bare number of hours a time.Duration can hold.
const maxHours = float64(math.MaxInt64) / float64(time.Hour)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs a Job, waits, and runs it again until its context ends.
// Runs never overlap: the next wait only starts once the previous run has
// returned.
type Scheduler struct {
	Interval   time.Duration
	RetryDelay time.Duration

	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRetryDelay overrides DefaultRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		s.RetryDelay = d
	}
}

// New returns a Scheduler with the given interval.
func New(interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		Interval:   interval,
		RetryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
		sleep:      sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes job immediately and then after every interval. A failing run
// is retried after RetryDelay instead. Run returns nil once ctx is done.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if s.Interval <= 0 {
		return fmt.Errorf("schedule interval must be positive, got %s", s.Interval)
	}

	for n := 1; ; n++ {
		s.logger.Info("running scheduled job", "run", n)
		wait := s.Interval
		if err := job(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("scheduled run failed", "run", n, "error", err, "retry_in", s.RetryDelay)
			wait = s.RetryDelay
		} else {
			log.Important(s.logger, "scheduled run completed", "run", n, "next_in", wait)
		}

		if err := s.sleep(ctx, wait); err != nil {
			log.Important(s.logger, "scheduler stopped", "runs", n)
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ParseInterval reads a schedule interval such as "6 hours", "1 day" or
// "30 minutes". A bare number is taken as hours.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		// NaN fails every comparison, Inf fails the upper bound.
		if !(n > 0) || n > maxHours {
			return 0, fmt.Errorf("invalid interval %q: must be a positive number of hours", s)
		}
		return time.Duration(n * float64(time.Hour)), nil
	}
	d, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid interval %q: must be positive", s)
	}
	return d, nil
}
