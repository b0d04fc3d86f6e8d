// Package report prints per-file status lines and batch summaries.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed)
	skipColor  = color.New(color.FgYellow)
	doneColor  = color.New(color.FgGreen, color.Bold)
)

// Summary counts what happened to the files of one batch.
type Summary struct {
	// Found is the number of files the scan matched.
	Found int
	// Processed files were read, transformed or written without error.
	Processed int
	// Changed is the number of processed files whose content differs from
	// what was on disk. Only rewriting commands set it.
	Changed int
	// Skipped files failed and were left untouched.
	Skipped int
	// Other is the number of directory entries the scan did not match.
	Other int

	DryRun    bool
	Rewriting bool
}

// Skipped reports a per-file failure followed by the "Skipped" marker.
func Skipped(w io.Writer, err error) {
	fmt.Fprintln(w, errorColor.Sprint(err))
	fmt.Fprintln(w, skipColor.Sprint("Skipped"))
}

// Fatal reports an error that aborted the whole command.
func Fatal(w io.Writer, err error) {
	fmt.Fprintln(w, errorColor.Sprint("Error: "+err.Error()))
}

// Print writes the summary block and the final "Done" marker to w.
func Print(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	if s.DryRun {
		fmt.Fprintln(w, "=== Dry Run Summary ===")
	} else {
		fmt.Fprintln(w, "=== Summary ===")
	}
	fmt.Fprintf(w, "Files found:     %d\n", s.Found)
	fmt.Fprintf(w, "Files processed: %d\n", s.Processed)
	if s.Rewriting {
		fmt.Fprintf(w, "Files changed:   %d\n", s.Changed)
	}
	fmt.Fprintf(w, "Files skipped:   %d\n", s.Skipped)
	if s.Other > 0 {
		fmt.Fprintf(w, "Other files:     %d\n", s.Other)
	}
	fmt.Fprintln(w, doneColor.Sprint("Done"))
}
