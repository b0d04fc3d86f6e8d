package imagecheck

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/bagtoad/tagame/internal/tagfile"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{220, 30, 30, 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestVerifyPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, path)

	format, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestVerifyMislabelled(t *testing.T) {
	// A PNG stored under a .jpg name still decodes; the extension is not trusted.
	path := filepath.Join(t.TempDir(), "red.jpg")
	writePNG(t, path)

	format, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestVerifyGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.webp")
	require.NoError(t, os.WriteFile(path, []byte("fake image"), 0644))

	_, err := Verify(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotImage))
	assert.Contains(t, err.Error(), path)
}

func TestVerifyMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := Verify(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(err, tagfile.ErrFileOpen))
	assert.False(t, errors.Is(err, ErrNotImage))
	assert.Contains(t, err.Error(), path)

	var pathErr *tagfile.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, path, pathErr.Path)
}
