package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeApply(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		content   string
		tag       string
		want      string
		wantFound bool
	}{
		{"start", StartMode(), "hello", "X ", "X hello", true},
		{"end", EndMode(), "hello", " X", "hello X", true},
		{"start on empty", StartMode(), "", "tag", "tag", true},
		{"before first occurrence", BeforeMode("b"), "a b b", "X", "a Xb b", true},
		{"after first occurrence", AfterMode("b"), "a b b", "X", "a bX b", true},
		{"after at end", AfterMode("lo"), "hello", "!", "hello!", true},
		{"before at start", BeforeMode("he"), "hello", "> ", "> hello", true},
		{"anchor missing", AfterMode("zzz"), "hello", "X", "hello", false},
		{"anchor case sensitive", BeforeMode("Hello"), "hello", "X", "hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tt.mode.Apply(tt.content, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestModeValidate(t *testing.T) {
	assert.NoError(t, StartMode().Validate())
	assert.NoError(t, EndMode().Validate())
	assert.NoError(t, AfterMode("x").Validate())
	assert.Error(t, BeforeMode("").Validate())
	assert.Error(t, AfterMode("").Validate())
	assert.Error(t, Mode{Kind: ModeKind(42)}.Validate())
}

func TestModeKindString(t *testing.T) {
	assert.Equal(t, "start", Start.String())
	assert.Equal(t, "after", After.String())
	assert.Equal(t, "unknown", ModeKind(9).String())
}
