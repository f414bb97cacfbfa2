// Package markdown renders model answers to ANSI-styled terminal text,
// parsing with goldmark and styling with lipgloss.
package markdown

import "vigil"

// Render parses source as markdown and returns styled terminal output
// word-wrapped to width. Code blocks keep their layout and are not
// reflowed.
func Render(source string, width int, theme vigil.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
