package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/babarot/tidyup/internal/core/atomic"
	"github.com/samber/lo"
)

const (
	timeFormat  = "2006-01-02 15:04:05"
	stampFormat = "20060102_150405"
)

// Files holds the paths written by Save.
type Files struct {
	JSON string
	CSV  string
}

// Save writes the JSON report and the CSV summary into dir, named after the
// run's finish time.
func Save(dir string, r *Result) (Files, error) {
	stamp := r.Summary.FinishedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	files := Files{
		JSON: filepath.Join(dir, fmt.Sprintf("automation_report_%s.json", stamp.Format(stampFormat))),
		CSV:  filepath.Join(dir, fmt.Sprintf("summary_%s.csv", stamp.Format(stampFormat))),
	}

	if err := atomic.WriteFile(files.JSON, 0644, func(w io.Writer) error {
		return WriteJSON(w, r)
	}); err != nil {
		return files, fmt.Errorf("write json report: %w", err)
	}

	if err := atomic.WriteFile(files.CSV, 0644, func(w io.Writer) error {
		return WriteCSV(w, r)
	}); err != nil {
		return files, fmt.Errorf("write csv summary: %w", err)
	}

	return files, nil
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// WriteCSV writes the sectioned summary spreadsheet.
func WriteCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	s := r.Statistics

	rows := [][]string{
		{"=== EXECUTION SUMMARY ==="},
		{"Metric", "Value"},
		{"Run ID", r.Summary.RunID},
		{"Execution Date", r.Summary.FinishedAt.Format(timeFormat)},
		{"Processing Time", r.Summary.Duration.String()},
		{"Source Directory", r.Summary.SourceDir},
		{"Target Directory", r.Summary.TargetDir},
		{},
		{"=== PROCESSING STATISTICS ==="},
		{"Files Processed", fmt.Sprint(s.FilesProcessed)},
		{"Files Moved", fmt.Sprint(s.FilesMoved)},
		{"Duplicates Found", fmt.Sprint(s.DuplicatesFound)},
		{"Skipped (Too Small)", fmt.Sprint(s.SkippedTooSmall)},
		{"Renamed", fmt.Sprint(s.Renamed)},
		{"Backups Created", fmt.Sprint(s.BackupsCreated)},
		{"Errors", fmt.Sprint(s.Errors)},
		{},
		{"=== CATEGORY BREAKDOWN ==="},
		{"Category", "File Count", "Size (MB)"},
	}

	for _, name := range sortedKeys(r.Categories) {
		rows = append(rows, []string{
			name,
			fmt.Sprint(r.Categories[name].Files),
			fmt.Sprintf("%.2f", r.SizeMB[name]),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"=== FILE TYPE BREAKDOWN ==="},
		[]string{"File Extension", "Count"},
	)
	for _, ext := range sortedKeys(r.Extensions) {
		rows = append(rows, []string{extensionLabel(ext), fmt.Sprint(r.Extensions[ext])})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func extensionLabel(ext string) string {
	if ext == "" {
		return "No Extension"
	}
	return ext
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
