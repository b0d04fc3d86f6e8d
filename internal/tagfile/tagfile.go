// Package tagfile reads and writes sidecar tag files.
package tagfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/bagtoad/tagame/internal/scanner"
)

// DefaultFilePermissions is the mode used for newly created tag files.
const DefaultFilePermissions = 0644

// Failure kinds. Every error returned by Read and Write wraps exactly one.
var (
	ErrFileCreate = errors.Base("cannot create")
	ErrFileWrite  = errors.Base("cannot write to")
	ErrFileOpen   = errors.Base("cannot open")
	ErrFileRead   = errors.Base("cannot read")
)

// ErrInvalidExtension is returned by NormalizeExtension.
var ErrInvalidExtension = errors.Base("invalid tag extension")

// NormalizeExtension trims spaces and a leading dot from ext and checks that
// the result can name a tag file: not empty, no path separator, and not an
// image extension, so a tag file can never replace the image it belongs to.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", errors.Errorf("%w: must not be empty", ErrInvalidExtension)
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", errors.Errorf("%w %q: contains a path separator", ErrInvalidExtension, ext)
	}
	if scanner.IsImageExtension(ext) {
		return "", errors.Errorf("%w %q: is an image extension", ErrInvalidExtension, ext)
	}
	return ext, nil
}

// PathError records a failed operation on a tag or image file. It unwraps to both the
// failure kind and the underlying cause.
type PathError struct {
	Kind error
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Kind.Error() + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Write creates the file at path, truncating it if it exists, and writes content.
func Write(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return &PathError{Kind: ErrFileCreate, Path: path, Err: err}
	}

	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return &PathError{Kind: ErrFileWrite, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PathError{Kind: ErrFileWrite, Path: path, Err: err}
	}
	return nil
}

// Read returns the entire content of the file at path. Content that is not
// valid UTF-8 is reported as a read failure.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &PathError{Kind: ErrFileOpen, Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &PathError{Kind: ErrFileRead, Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &PathError{Kind: ErrFileRead, Path: path, Err: errors.New("invalid UTF-8")}
	}
	return string(data), nil
}

// PathFor returns the tag file path for imagePath: the image's base name with
// its extension replaced by ext, inside dir.
func PathFor(imagePath, dir, ext string) string {
	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"."+strings.TrimPrefix(ext, "."))
}
