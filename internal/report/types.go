package report

import "time"

// Status is the terminal state of one processed file.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
	// StatusPlanned is used by dry runs in place of StatusMoved.
	StatusPlanned Status = "planned"
)

// Reason qualifies a skipped outcome.
type Reason string

const (
	ReasonTooSmall         Reason = "too_small"
	ReasonIdenticalContent Reason = "identical_content"
)

// Outcome records what happened to a single source file.
type Outcome struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination,omitempty"`
	Category    string    `json:"category,omitempty"`
	Extension   string    `json:"extension"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	Status      Status    `json:"status"`
	Reason      Reason    `json:"reason,omitempty"`
	Renamed     bool      `json:"renamed,omitempty"`
	BackupPath  string    `json:"backup_path,omitempty"`
	BackupError string    `json:"backup_error,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Placed reports whether the outcome put (or would put) the file at its
// destination.
func (o Outcome) Placed() bool {
	return o.Status == StatusMoved || o.Status == StatusPlanned
}

// Summary describes the run itself.
type Summary struct {
	RunID      string        `json:"run_id"`
	State      string        `json:"state"`
	StartedAt  time.Time     `json:"start_time"`
	FinishedAt time.Time     `json:"end_time"`
	Duration   time.Duration `json:"processing_time_ns"`
	SourceDir  string        `json:"source_directory"`
	TargetDir  string        `json:"target_directory"`
	DryRun     bool          `json:"dry_run,omitempty"`
	Canceled   bool          `json:"canceled,omitempty"`
	// Unprocessed counts files found by the scan but never started because
	// the run was canceled.
	Unprocessed int      `json:"unprocessed,omitempty"`
	Seeded      []string `json:"seeded_files,omitempty"`
}

// Statistics are the run counters. In a Result they are always derived from
// the outcome list.
type Statistics struct {
	FilesProcessed  int   `json:"files_processed"`
	FilesMoved      int   `json:"files_moved"`
	FilesPlanned    int   `json:"files_planned,omitempty"`
	DuplicatesFound int   `json:"duplicates_found"`
	SkippedTooSmall int   `json:"skipped_too_small"`
	Renamed         int   `json:"renamed"`
	Errors          int   `json:"errors"`
	BackupsCreated  int   `json:"backups_created"`
	BackupFailures  int   `json:"backup_failures"`
	BytesMoved      int64 `json:"bytes_moved"`
}

// CategoryStat is the per-category tally.
type CategoryStat struct {
	Files int   `json:"files"`
	Bytes int64 `json:"bytes"`
}

// Result is the immutable output of a run.
type Result struct {
	Summary    Summary                 `json:"execution_summary"`
	Statistics Statistics              `json:"statistics"`
	Categories map[string]CategoryStat `json:"category_breakdown"`
	Extensions map[string]int          `json:"file_type_breakdown"`
	SizeMB     map[string]float64      `json:"size_breakdown_mb"`
	Outcomes   []Outcome               `json:"outcomes"`
	Config     any                     `json:"configuration_used,omitempty"`
}

// Errors returns the failed outcomes.
func (r *Result) Errors() []Outcome {
	var errs []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusError {
			errs = append(errs, o)
		}
	}
	return errs
}
