package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func init() {
	color.NoColor = true
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Summary{Found: 3, Processed: 2, Skipped: 1, Other: 5})

	output := buf.String()
	checks := []string{
		"=== Summary ===",
		"Files found:     3",
		"Files processed: 2",
		"Files skipped:   1",
		"Other files:     5",
	}
	for _, check := range checks {
		assert.Contains(t, output, check)
	}
	assert.NotContains(t, output, "Files changed")
	assert.True(t, strings.HasSuffix(output, "Done\n"), "output should end with Done:\n%s", output)
}

func TestPrintSummaryDryRunRewriting(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Summary{Found: 2, Processed: 2, Changed: 1, DryRun: true, Rewriting: true})

	output := buf.String()
	assert.Contains(t, output, "=== Dry Run Summary ===")
	assert.Contains(t, output, "Files changed:   1")
	assert.NotContains(t, output, "Other files")
}

func TestSkipped(t *testing.T) {
	var buf bytes.Buffer
	Skipped(&buf, errors.New("cannot create /out/a.txt: permission denied"))

	assert.Equal(t, "cannot create /out/a.txt: permission denied\nSkipped\n", buf.String())
}

func TestFatal(t *testing.T) {
	var buf bytes.Buffer
	Fatal(&buf, errors.New("cannot open directory /nope: no such file or directory"))

	assert.Equal(t, "Error: cannot open directory /nope: no such file or directory\n", buf.String())
}
