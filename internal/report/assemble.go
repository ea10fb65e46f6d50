package report

import (
	"fmt"
	"math"
	"reflect"

	"github.com/samber/lo"
)

// Assemble builds a Result from the per-file outcomes. Every counter and
// breakdown is computed from outcomes so the report can never disagree
// with its own outcome list.
func Assemble(summary Summary, outcomes []Outcome) *Result {
	if summary.Duration == 0 && !summary.FinishedAt.IsZero() {
		summary.Duration = summary.FinishedAt.Sub(summary.StartedAt)
	}

	list := make([]Outcome, len(outcomes))
	copy(list, outcomes)

	categories, extensions := breakdown(list)
	return &Result{
		Summary:    summary,
		Statistics: count(list),
		Categories: categories,
		Extensions: extensions,
		SizeMB: lo.MapValues(categories, func(c CategoryStat, _ string) float64 {
			return math.Round(float64(c.Bytes)/1024/1024*100) / 100
		}),
		Outcomes: list,
	}
}

func count(outcomes []Outcome) Statistics {
	moved := lo.Filter(outcomes, func(o Outcome, _ int) bool { return o.Status == StatusMoved })
	return Statistics{
		FilesProcessed: len(outcomes),
		FilesMoved:     len(moved),
		FilesPlanned:   lo.CountBy(outcomes, func(o Outcome) bool { return o.Status == StatusPlanned }),
		DuplicatesFound: lo.CountBy(outcomes, func(o Outcome) bool {
			return o.Status == StatusSkipped && o.Reason == ReasonIdenticalContent
		}),
		SkippedTooSmall: lo.CountBy(outcomes, func(o Outcome) bool {
			return o.Status == StatusSkipped && o.Reason == ReasonTooSmall
		}),
		Renamed:        lo.CountBy(outcomes, func(o Outcome) bool { return o.Placed() && o.Renamed }),
		Errors:         lo.CountBy(outcomes, func(o Outcome) bool { return o.Status == StatusError }),
		BackupsCreated: lo.CountBy(outcomes, func(o Outcome) bool { return o.BackupPath != "" }),
		BackupFailures: lo.CountBy(outcomes, func(o Outcome) bool { return o.BackupError != "" }),
		BytesMoved:     lo.SumBy(moved, func(o Outcome) int64 { return o.Size }),
	}
}

func breakdown(outcomes []Outcome) (map[string]CategoryStat, map[string]int) {
	placed := lo.Filter(outcomes, func(o Outcome, _ int) bool { return o.Placed() })

	categories := make(map[string]CategoryStat)
	for name, group := range lo.GroupBy(placed, func(o Outcome) string { return o.Category }) {
		categories[name] = CategoryStat{
			Files: len(group),
			Bytes: lo.SumBy(group, func(o Outcome) int64 { return o.Size }),
		}
	}

	extensions := lo.CountValuesBy(placed, func(o Outcome) string { return o.Extension })
	return categories, extensions
}

// Verify recomputes the counters and breakdowns from r.Outcomes and reports
// the first field that disagrees.
func (r *Result) Verify() error {
	if want := count(r.Outcomes); r.Statistics != want {
		return fmt.Errorf("statistics %+v do not match outcomes %+v", r.Statistics, want)
	}
	categories, extensions := breakdown(r.Outcomes)
	if !reflect.DeepEqual(r.Categories, categories) {
		return fmt.Errorf("category breakdown %v does not match outcomes %v", r.Categories, categories)
	}
	if !reflect.DeepEqual(r.Extensions, extensions) {
		return fmt.Errorf("extension breakdown %v does not match outcomes %v", r.Extensions, extensions)
	}
	if r.Statistics.FilesProcessed != r.Statistics.FilesMoved+r.Statistics.FilesPlanned+
		r.Statistics.DuplicatesFound+r.Statistics.SkippedTooSmall+r.Statistics.Errors {
		return fmt.Errorf("outcomes are not partitioned: %+v", r.Statistics)
	}
	return nil
}
