// Package think implements the incremental dual-channel classifier that
// separates one streamed model response into reasoning and visible text.
//
// The model wraps its internal reasoning in think markers, but the
// transport delivers the response as arbitrary text fragments: a marker
// can arrive split across two or more deltas. The classifier holds back
// the smallest ambiguous suffix between deltas so that no byte is ever
// lost, duplicated, or assigned to the wrong channel, and it never
// errors regardless of input shape.
package think

import (
	"strings"

	"vigil"
)

// Recognized markers, matched case-insensitively. Exactly these literal
// forms; no attributes, whitespace variants, or nesting.
const (
	markerOpen      = "<think>"
	markerClose     = "</think>"
	markerSelfClose = "<think/>"
)

// maxPending bounds the held-back suffix: one byte short of the longest
// marker literal. A longer suffix either contains a complete marker or
// can no longer become one.
const maxPending = len(markerClose) - 1

// markers in match order. The two 8-byte forms come first so that
// "</think>" and "<think/>" are not shadowed by shorter comparisons.
var markers = [...]string{markerClose, markerSelfClose, markerOpen}

// Classifier assigns streamed text to the reasoning or visible channel.
// One Classifier serves exactly one streamed response; it keeps no state
// across responses and is not safe for concurrent use. The zero value is
// ready, starting in visible mode with empty accumulators.
type Classifier struct {
	mode      vigil.Mode
	pending   string
	reasoning strings.Builder
	visible   strings.Builder
}

// New returns a Classifier for one streamed response.
func New() *Classifier {
	return &Classifier{}
}

// Mode returns the currently active channel.
func (c *Classifier) Mode() vigil.Mode {
	return c.mode
}

// Frame returns a snapshot of both accumulated channels.
func (c *Classifier) Frame() vigil.Frame {
	return vigil.Frame{
		Reasoning: c.reasoning.String(),
		Visible:   c.visible.String(),
	}
}

// Process scans one delta and returns the updated snapshot. An empty
// delta classifies nothing and returns the current snapshot unchanged.
//
// Text preceding a recognized marker is appended to the channel that was
// active before the marker flips the mode. A trailing suffix that is a
// case-insensitive prefix of a marker is held back until the next delta
// resolves it.
func (c *Classifier) Process(delta string) vigil.Frame {
	if delta == "" {
		return c.Frame()
	}

	text := c.pending + delta
	c.pending = ""

	for text != "" {
		i := strings.IndexByte(text, '<')
		if i < 0 {
			c.append(text)
			break
		}
		if i > 0 {
			c.append(text[:i])
			text = text[i:]
		}

		// text now starts with '<'.
		if m, ok := matchMarker(text); ok {
			c.transition(m)
			text = text[len(m):]
			continue
		}
		if isMarkerPrefix(text) {
			// Ambiguous: may still complete once more text arrives.
			c.pending = text
			break
		}

		// This '<' can no longer start a marker; it is ordinary content.
		c.append(text[:1])
		text = text[1:]
	}

	return c.Frame()
}

// Flush resolves the end of the stream: any held-back suffix is appended
// verbatim to the active channel and the final snapshot is returned. An
// unterminated reasoning section stands as reasoning.
func (c *Classifier) Flush() vigil.Frame {
	if c.pending != "" {
		c.append(c.pending)
		c.pending = ""
	}
	return c.Frame()
}

func (c *Classifier) append(text string) {
	if c.mode == vigil.ModeReasoning {
		c.reasoning.WriteString(text)
		return
	}
	c.visible.WriteString(text)
}

// transition flips the mode for a recognized marker. The self-closing
// marker forces visible mode regardless of the current mode, so it can
// end a reasoning section but never start one.
func (c *Classifier) transition(marker string) {
	switch marker {
	case markerOpen:
		c.mode = vigil.ModeReasoning
	case markerClose, markerSelfClose:
		c.mode = vigil.ModeVisible
	}
}

// matchMarker reports whether s begins with a recognized marker and
// returns the canonical literal. The caller consumes len(marker) bytes.
func matchMarker(s string) (string, bool) {
	for _, m := range markers {
		if len(s) >= len(m) && strings.EqualFold(s[:len(m)], m) {
			return m, true
		}
	}
	return "", false
}

// isMarkerPrefix reports whether s is a proper case-insensitive prefix
// of at least one marker, i.e. the trailing text is still ambiguous.
func isMarkerPrefix(s string) bool {
	for _, m := range markers {
		if len(s) < len(m) && strings.EqualFold(s, m[:len(s)]) {
			return true
		}
	}
	return false
}
