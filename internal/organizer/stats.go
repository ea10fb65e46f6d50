package organizer

import (
	"sync"
	"time"

	"github.com/babarot/tidyup/internal/report"
)

// Statistics is the live accumulator of a run. Workers record outcomes
// concurrently; Snapshot returns a consistent copy.
type Statistics struct {
	mu         sync.Mutex
	counters   report.Statistics
	categories map[string]report.CategoryStat
	extensions map[string]int
	started    time.Time
	finished   time.Time
}

// StatsSnapshot is a frozen view of Statistics.
type StatsSnapshot struct {
	report.Statistics
	Categories map[string]report.CategoryStat
	Extensions map[string]int
	StartedAt  time.Time
	FinishedAt time.Time
}

func newStatistics(start time.Time) *Statistics {
	return &Statistics{
		categories: make(map[string]report.CategoryStat),
		extensions: make(map[string]int),
		started:    start,
	}
}

func (s *Statistics) record(o report.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.counters
	c.FilesProcessed++
	switch o.Status {
	case report.StatusMoved:
		c.FilesMoved++
		c.BytesMoved += o.Size
	case report.StatusPlanned:
		c.FilesPlanned++
	case report.StatusError:
		c.Errors++
	case report.StatusSkipped:
		switch o.Reason {
		case report.ReasonIdenticalContent:
			c.DuplicatesFound++
		case report.ReasonTooSmall:
			c.SkippedTooSmall++
		}
	}
	if o.BackupPath != "" {
		c.BackupsCreated++
	}
	if o.BackupError != "" {
		c.BackupFailures++
	}

	if !o.Placed() {
		return
	}
	if o.Renamed {
		c.Renamed++
	}
	cat := s.categories[o.Category]
	cat.Files++
	cat.Bytes += o.Size
	s.categories[o.Category] = cat
	s.extensions[o.Extension]++
}

func (s *Statistics) finish(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = t
}

// Snapshot copies the current state.
func (s *Statistics) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Statistics: s.counters,
		Categories: make(map[string]report.CategoryStat, len(s.categories)),
		Extensions: make(map[string]int, len(s.extensions)),
		StartedAt:  s.started,
		FinishedAt: s.finished,
	}
	for k, v := range s.categories {
		snap.Categories[k] = v
	}
	for k, v := range s.extensions {
		snap.Extensions[k] = v
	}
	return snap
}
