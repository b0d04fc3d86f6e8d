// Package rewriter replaces and inserts text across existing tag files.
//
// Both operations share one loop: scan the directory for files carrying the
// tag extension, read each file, compute the new content, print it, and
// write it back only when Options.Write is set. Without Write a run is a
// preview and never touches the filesystem.
package rewriter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bagtoad/tagame/internal/report"
	"github.com/bagtoad/tagame/internal/scanner"
	"github.com/bagtoad/tagame/internal/tagfile"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Options configures a rewrite run.
type Options struct {
	InputDir  string
	Extension string
	Exclude   []string
	// Write persists changed content. Without it the run only prints.
	Write bool
}

// Result records what happened to a single tag file.
type Result struct {
	Path    string
	Content string
	Changed bool
	Err     error
}

// transform computes new content for one file. ok is false when the file
// should be reported as left alone (e.g. a missing anchor).
type transform func(content string) (newContent string, ok bool)

// Replace substitutes every literal, non-overlapping occurrence of from with
// to in each tag file.
func Replace(ctx context.Context, w io.Writer, opts Options, from, to string) ([]Result, report.Summary, error) {
	if from == "" {
		return nil, report.Summary{}, errors.New("replace: search text must not be empty")
	}
	ctx = zerolog.Ctx(ctx).With().Str("command", "replace").Logger().WithContext(ctx)
	return run(ctx, w, opts, func(content string) (string, bool) {
		return strings.ReplaceAll(content, from, to), true
	})
}

// Insert adds tag to each tag file at the position selected by mode.
func Insert(ctx context.Context, w io.Writer, opts Options, tag string, mode Mode) ([]Result, report.Summary, error) {
	if err := mode.Validate(); err != nil {
		return nil, report.Summary{}, err
	}
	ctx = zerolog.Ctx(ctx).With().Str("command", "insert").Str("mode", mode.Kind.String()).Logger().WithContext(ctx)
	return run(ctx, w, opts, func(content string) (string, bool) {
		return mode.Apply(content, tag)
	})
}

func run(ctx context.Context, w io.Writer, opts Options, fn transform) ([]Result, report.Summary, error) {
	log := zerolog.Ctx(ctx)
	summary := report.Summary{DryRun: !opts.Write, Rewriting: true}

	ext, err := tagfile.NormalizeExtension(opts.Extension)
	if err != nil {
		return nil, summary, err
	}
	if err := scanner.ValidatePatterns(opts.Exclude); err != nil {
		return nil, summary, err
	}

	scanResult, err := scanner.Scan(opts.InputDir, scanner.Exclude(opts.Exclude, scanner.Extension(ext)))
	if err != nil {
		return nil, summary, errors.Errorf("scanning tag files: %w", err)
	}
	summary.Found = len(scanResult.Paths)
	summary.Other = scanResult.SkippedCount
	log.Debug().Str("dir", opts.InputDir).Int("tag_files", summary.Found).Msg("scanned input directory")

	results := make([]Result, 0, len(scanResult.Paths))
	for _, path := range scanResult.Paths {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		res := rewriteOne(w, opts, path, fn)
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("file", path).Msg("skipping tag file")
			report.Skipped(w, res.Err)
			summary.Skipped++
		} else {
			log.Debug().Str("file", path).Bool("changed", res.Changed).Msg("tag file processed")
			summary.Processed++
			if res.Changed {
				summary.Changed++
			}
		}
		results = append(results, res)
	}

	log.Info().Int("processed", summary.Processed).Int("changed", summary.Changed).Int("skipped", summary.Skipped).Msg("rewrite finished")
	report.Print(w, summary)
	return results, summary, nil
}

func rewriteOne(w io.Writer, opts Options, path string, fn transform) Result {
	res := Result{Path: path}

	content, err := tagfile.Read(path)
	if err != nil {
		res.Err = err
		return res
	}

	newContent, ok := fn(content)
	res.Content = newContent
	res.Changed = newContent != content

	fmt.Fprintln(w, filepath.Base(path))
	if !ok {
		fmt.Fprintln(w, "anchor not found")
	}
	fmt.Fprintln(w, newContent)

	if opts.Write && res.Changed {
		if err := tagfile.Write(path, newContent); err != nil {
			res.Err = err
			return res
		}
		fmt.Fprintf(w, "successfully wrote to %s\n", path)
	}
	return res
}
