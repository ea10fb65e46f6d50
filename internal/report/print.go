package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Print renders a human readable summary of r.
func Print(w io.Writer, r *Result) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgHiGreen).SprintfFunc()
	red := color.New(color.FgHiRed).SprintfFunc()
	s := r.Statistics

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("AUTOMATION SUMMARY"))
	fmt.Fprintf(w, "Run:              %s\n", r.Summary.RunID)
	fmt.Fprintf(w, "Processing Time:  %s\n", r.Summary.Duration)
	fmt.Fprintf(w, "Files Processed:  %d\n", s.FilesProcessed)
	if r.Summary.DryRun {
		fmt.Fprintf(w, "Files Planned:    %s\n", green("%d", s.FilesPlanned))
	} else {
		fmt.Fprintf(w, "Files Moved:      %s (%s)\n", green("%d", s.FilesMoved), humanize.Bytes(uint64(s.BytesMoved)))
	}
	fmt.Fprintf(w, "Duplicates Found: %d\n", s.DuplicatesFound)
	fmt.Fprintf(w, "Too Small:        %d\n", s.SkippedTooSmall)
	if s.Errors > 0 {
		fmt.Fprintf(w, "Errors:           %s\n", red("%d", s.Errors))
	} else {
		fmt.Fprintf(w, "Errors:           %d\n", s.Errors)
	}
	if r.Summary.Canceled {
		fmt.Fprintln(w, red("Run was canceled; results are partial."))
	}

	if len(r.Categories) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Category", "Files", "Size"})
		table.SetBorder(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, name := range sortedKeys(r.Categories) {
			c := r.Categories[name]
			table.Append([]string{name, humanize.Comma(int64(c.Files)), humanize.Bytes(uint64(c.Bytes))})
		}
		table.Render()
	}

	if errs := r.Errors(); len(errs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Errors"))
		for _, o := range errs {
			fmt.Fprintf(w, "  %s: %s\n", o.Source, red("%s", o.Error))
		}
	}
	fmt.Fprintln(w)
}
