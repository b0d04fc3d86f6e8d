// Package generator writes one sidecar tag file per image in a directory.
package generator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bagtoad/tagame/internal/imagecheck"
	"github.com/bagtoad/tagame/internal/report"
	"github.com/bagtoad/tagame/internal/scanner"
	"github.com/bagtoad/tagame/internal/tagfile"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Options configures a Generate run.
type Options struct {
	InputDir string
	// OutputDir receives the tag files. Empty means InputDir.
	OutputDir string
	Tag       string
	Extension string
	Exclude   []string
	// DryRun reports what would be written without touching the filesystem.
	DryRun bool
	// Verify decodes each image header and skips files that are not images.
	Verify bool
}

// Result records what happened to a single image.
type Result struct {
	ImagePath string
	TagPath   string
	Err       error
}

// Generate scans opts.InputDir for images and writes opts.Tag into a tag file
// for each of them, printing progress to w. A failure on one image is
// reported and skipped; only a failure to scan the directory aborts.
func Generate(ctx context.Context, w io.Writer, opts Options) ([]Result, report.Summary, error) {
	log := zerolog.Ctx(ctx).With().Str("command", "generate").Logger()
	summary := report.Summary{DryRun: opts.DryRun}

	ext, err := tagfile.NormalizeExtension(opts.Extension)
	if err != nil {
		return nil, summary, err
	}
	if err := scanner.ValidatePatterns(opts.Exclude); err != nil {
		return nil, summary, err
	}

	scanResult, err := scanner.Scan(opts.InputDir, scanner.Exclude(opts.Exclude, scanner.Images))
	if err != nil {
		return nil, summary, errors.Errorf("scanning images: %w", err)
	}
	summary.Found = len(scanResult.Paths)
	summary.Other = scanResult.SkippedCount
	log.Debug().Str("dir", opts.InputDir).Int("images", summary.Found).Msg("scanned input directory")

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = opts.InputDir
	}

	results := make([]Result, 0, len(scanResult.Paths))
	for _, imgPath := range scanResult.Paths {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		res := Result{
			ImagePath: imgPath,
			TagPath:   tagfile.PathFor(imgPath, outDir, ext),
		}
		res.Err = generateOne(w, opts, res.ImagePath, res.TagPath)
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("image", imgPath).Msg("skipping image")
			report.Skipped(w, res.Err)
			summary.Skipped++
		} else {
			log.Debug().Str("image", imgPath).Str("tag_file", res.TagPath).Msg("tag file generated")
			fmt.Fprintln(w, filepath.Base(res.TagPath))
			summary.Processed++
		}
		results = append(results, res)
	}

	log.Info().Int("processed", summary.Processed).Int("skipped", summary.Skipped).Msg("generate finished")
	report.Print(w, summary)
	return results, summary, nil
}

func generateOne(w io.Writer, opts Options, imgPath, tagPath string) error {
	if opts.Verify {
		if _, err := imagecheck.Verify(imgPath); err != nil {
			return err
		}
	}

	if opts.DryRun {
		fmt.Fprintf(w, "would write %s\n", tagPath)
		return nil
	}

	if err := tagfile.Write(tagPath, opts.Tag); err != nil {
		return err
	}
	fmt.Fprintf(w, "successfully wrote to %s\n", tagPath)
	return nil
}
