package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"vigil"
	"vigil/markdown"
)

var _ MessageBlock = (*AnswerBlock)(nil)

// AnswerBlock renders the visible channel of a response as markdown.
// Snapshots replace the content wholesale.
type AnswerBlock struct {
	text  string
	theme vigil.Theme
}

// NewAnswerBlock creates an AnswerBlock.
func NewAnswerBlock(theme vigil.Theme) *AnswerBlock {
	return &AnswerBlock{theme: theme}
}

// Set replaces the accumulated answer text.
func (b *AnswerBlock) Set(text string) {
	b.text = text
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	return markdown.Render(b.text, width, b.theme)
}
