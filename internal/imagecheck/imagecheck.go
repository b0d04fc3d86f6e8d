// Package imagecheck confirms that a file with an image extension holds a
// decodable image header.
package imagecheck

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gitlab.com/tozd/go/errors"
	_ "golang.org/x/image/webp"

	"github.com/bagtoad/tagame/internal/tagfile"
)

// ErrNotImage is the kind of failure returned when a header cannot be decoded.
var ErrNotImage = errors.Base("not a decodable image")

// DecodeError wraps the decoder failure for a single file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return ErrNotImage.Error() + " " + e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrNotImage, e.Err}
}

// Verify decodes only the header of the image at path and returns its format
// name ("jpeg", "png", "gif" or "webp"). A file that cannot be opened yields a
// *tagfile.PathError of kind tagfile.ErrFileOpen.
func Verify(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &tagfile.PathError{Kind: tagfile.ErrFileOpen, Path: path, Err: err}
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	return format, nil
}
