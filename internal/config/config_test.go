package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, ".tagame"), "extension: .caption\nexclude:\n  - \"thumb_*\"\nwrite: true\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "caption", cfg.Extension)
	assert.Equal(t, []string{"thumb_*"}, cfg.Exclude)
	assert.True(t, cfg.Write)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "write: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultExtension, cfg.Extension)
	assert.True(t, cfg.Write)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "extension: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"empty extension": "extension: \"\"\n",
		"separator":       "extension: a/b\n",
		"image extension": "extension: JPG\n",
		"bad pattern":     "exclude: [\"[oops\"]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}
