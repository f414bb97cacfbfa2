package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ReasoningBlock)(nil)

// ReasoningBlock renders the reasoning channel of a response behind a
// collapsible toggle. Snapshots replace the content wholesale; the block
// renders nothing until reasoning text arrives.
type ReasoningBlock struct {
	text      string
	collapsed bool
	styles    Styles
}

// NewReasoningBlock creates a ReasoningBlock that starts collapsed.
func NewReasoningBlock(styles Styles) *ReasoningBlock {
	return &ReasoningBlock{collapsed: true, styles: styles}
}

// Set replaces the accumulated reasoning text.
func (b *ReasoningBlock) Set(text string) {
	b.text = text
}

func (b *ReasoningBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ReasoningBlock) View(width int) string {
	if b.text == "" {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Reasoning.Render(wrap.Render(indicator + " Reasoning"))
	if b.collapsed {
		return header
	}
	return header + "\n" + b.styles.Reasoning.Render(wrap.Render(b.text))
}
