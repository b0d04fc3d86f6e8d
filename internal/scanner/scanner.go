// Package scanner provides directory scanning and extension filtering.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ErrDirectoryOpen is the kind of every failure to list the scanned directory.
var ErrDirectoryOpen = errors.Base("cannot open directory")

// imageExtensions contains the set of image file extensions we recognize,
// lowercase and without the leading dot.
var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// IsImageExtension reports whether ext (with or without a leading dot) is a
// recognized image extension, ignoring case.
func IsImageExtension(ext string) bool {
	return imageExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// ImageExtensions returns a copy of the recognized image extensions.
func ImageExtensions() []string {
	exts := make([]string, 0, len(imageExtensions))
	for ext := range imageExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// Matcher decides whether a directory entry name is part of a scan.
type Matcher func(name string) bool

// Images matches names whose extension is a recognized image extension.
func Images(name string) bool {
	ext, ok := Ext(name)
	return ok && imageExtensions[strings.ToLower(ext)]
}

// Extension matches names whose extension equals ext exactly. A leading dot
// on ext is ignored.
func Extension(ext string) Matcher {
	want := strings.TrimPrefix(ext, ".")
	return func(name string) bool {
		got, ok := Ext(name)
		return ok && got == want
	}
}

// Exclude wraps match so that names matching any of the doublestar patterns
// are rejected. Patterns must already be valid, see ValidatePatterns.
func Exclude(patterns []string, match Matcher) Matcher {
	if len(patterns) == 0 {
		return match
	}
	return func(name string) bool {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				return false
			}
		}
		return match(name)
	}
}

// ValidatePatterns returns an error naming the first malformed pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Ext returns the extension of name without the dot. Names without a dot,
// names ending in a dot and dotfiles whose only dot is the leading one have
// no extension.
func Ext(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}

// DirError records a failure to list a directory.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return ErrDirectoryOpen.Error() + " " + e.Path + ": " + e.Err.Error()
}

func (e *DirError) Unwrap() []error {
	return []error{ErrDirectoryOpen, e.Err}
}

// Result holds the output of scanning a directory.
type Result struct {
	Paths        []string
	SkippedCount int
}

// Scan lists the given directory (non-recursive) and returns the paths of
// files accepted by match, in the order os.ReadDir yields them, along with a
// count of files that were not accepted. Subdirectories are ignored.
func Scan(dir string, match Matcher) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &DirError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirError{Path: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirError{Path: dir, Err: err}
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match(entry.Name()) {
			result.Paths = append(result.Paths, filepath.Join(dir, entry.Name()))
		} else {
			result.SkippedCount++
		}
	}

	return result, nil
}
