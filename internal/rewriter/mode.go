package rewriter

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ModeKind selects where Insert places the tag.
type ModeKind int

const (
	// Start prepends the tag to the content.
	Start ModeKind = iota
	// End appends the tag to the content.
	End
	// Before inserts the tag before the first occurrence of the anchor.
	Before
	// After inserts the tag after the first occurrence of the anchor.
	After
)

func (k ModeKind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// Mode is an insert position. Before and After carry the anchor text.
type Mode struct {
	Kind   ModeKind
	Anchor string
}

// StartMode prepends the tag to the content.
func StartMode() Mode { return Mode{Kind: Start} }

// EndMode appends the tag to the content.
func EndMode() Mode { return Mode{Kind: End} }

// BeforeMode inserts the tag immediately before the first occurrence of anchor.
func BeforeMode(anchor string) Mode { return Mode{Kind: Before, Anchor: anchor} }

// AfterMode inserts the tag immediately after the first occurrence of anchor.
func AfterMode(anchor string) Mode { return Mode{Kind: After, Anchor: anchor} }

// Validate rejects anchored modes with an empty anchor.
func (m Mode) Validate() error {
	switch m.Kind {
	case Start, End:
		return nil
	case Before, After:
		if m.Anchor == "" {
			return errors.Errorf("insert %s: anchor must not be empty", m.Kind)
		}
		return nil
	default:
		return errors.Errorf("unknown insert mode %d", int(m.Kind))
	}
}

// Apply inserts tag into content. For Before and After only the first
// occurrence of the anchor is used; found is false when it does not occur,
// in which case content is returned unchanged.
func (m Mode) Apply(content, tag string) (result string, found bool) {
	switch m.Kind {
	case Start:
		return tag + content, true
	case End:
		return content + tag, true
	case Before, After:
		i := strings.Index(content, m.Anchor)
		if i < 0 {
			return content, false
		}
		if m.Kind == After {
			i += len(m.Anchor)
		}
		return content[:i] + tag + content[i:], true
	default:
		return content, false
	}
}
