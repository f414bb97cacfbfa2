package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vigil"
	"vigil/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	theme := vigil.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, markdown.Render("keep the patient warm", 80, theme), "keep the patient warm")
	})

	t.Run("heading renders with styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Assessment", 80, theme)
		paragraph := markdown.Render("Assessment", 80, theme)
		assert.Contains(t, heading, "Assessment")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("emphasis keeps text", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, markdown.Render("**bold** and *italic* and `code`", 80, theme), "bold")
		assert.Contains(t, markdown.Render("***both***", 80, theme), "both")
	})

	t.Run("fenced code block keeps content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		assert.Contains(t, markdown.Render(src, 20, theme), `fmt.Println("hello world")`)
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("```python\nprint('hi')\n```", 80, theme)
		assert.Contains(t, got, "python")
		assert.Contains(t, got, "print('hi')")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("- rest\n- fluids\n- monitoring", 80, theme)
		assert.Contains(t, got, "- rest")
		assert.Contains(t, got, "- fluids")
		assert.Contains(t, got, "- monitoring")
	})

	t.Run("ordered list numbers items", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("1. first\n2. second", 80, theme)
		assert.Contains(t, got, "1. first")
		assert.Contains(t, got, "2. second")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("- outer\n  - inner one\n  - inner two", 80, theme)
		assert.Contains(t, got, "outer")
		assert.Contains(t, got, "inner one")
	})

	t.Run("link shows text and url", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("[guidelines](https://example.com)", 80, theme)
		assert.Contains(t, got, "guidelines")
		assert.Contains(t, got, "example.com")
	})

	t.Run("blockquote carries a gutter", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("> quoted advice", 80, theme)
		assert.Contains(t, got, "┃")
		assert.Contains(t, got, "quoted advice")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("word ", 20)
		got := markdown.Render(long, 30, theme)
		assert.Greater(t, len(strings.Split(got, "\n")), 1)
	})

	t.Run("paragraphs separated by a blank line", func(t *testing.T) {
		t.Parallel()
		got := markdown.Render("first paragraph\n\nsecond paragraph", 80, theme)
		assert.Contains(t, got, "first paragraph")
		assert.Contains(t, got, "second paragraph")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a long list item that wraps onto continuation lines when narrow"
		lines := strings.Split(markdown.Render(src, 30, theme), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})
}
