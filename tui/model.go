package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"vigil"
)

var _ tea.Model = Model{}

const vitalsRefresh = time.Second

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	// Input is the message entry component. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable chat area. Exported for test access.
	Viewport viewport.Model

	chat     ChatFunc
	snapshot SnapshotFunc
	theme    vigil.Theme
	styles   Styles

	messages []vigil.ChatMessage

	blocks     []MessageBlock
	blockFocus int // index of the focused collapsible block (-1 = none)

	// Blocks of the in-flight turn. Snapshot frames replace their
	// content wholesale.
	curReasoning *ReasoningBlock
	curAnswer    *AnswerBlock
	lastFrame    vigil.Frame

	header Snapshot

	running bool
	cancel  context.CancelFunc
	frameCh chan vigil.Frame
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a Model with the given chat function, vitals supplier and
// theme.
func New(chat ChatFunc, snapshot SnapshotFunc, theme vigil.Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about the patient..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.CharLimit = 0
	ta.Focus()

	return Model{
		Input:      ta,
		chat:       chat,
		snapshot:   snapshot,
		theme:      theme,
		styles:     NewStyles(theme),
		blockFocus: -1,
	}
}

// Running reports whether a response stream is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickVitals())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case vitalsTickMsg:
		if m.snapshot != nil {
			m.header = m.snapshot()
		}
		return m, tickVitals()

	case FrameMsg:
		m.lastFrame = msg.Frame
		if m.curReasoning != nil {
			m.curReasoning.Set(msg.Frame.Reasoning)
		}
		if m.curAnswer != nil {
			m.curAnswer.Set(msg.Frame.Visible)
		}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.frameCh != nil {
			return m, listenForFrame(m.frameCh, m.doneCh)
		}
		return m, nil

	case ChatDoneMsg:
		m.running = false
		m.cancel = nil
		m.frameCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		if m.lastFrame.Visible != "" {
			m.messages = append(m.messages, vigil.ChatMessage{
				Role:    vigil.RoleAssistant,
				Content: m.lastFrame.Visible,
			})
		}
		m = m.updateBlockFocus()
		return m, m.Input.Focus()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.header, m.styles, m.Viewport.Width))
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	headerH := 1
	statusH := 1
	inputH := m.Input.Height()
	gaps := 3
	vpHeight := msg.Height - headerH - statusH - inputH - gaps
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.SetWidth(msg.Width)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, keys go to the textarea for typing; non-character keys
	// also go to the viewport for scrolling.
	if !m.running {
		var cmds []tea.Cmd
		var cmd tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.Reset()
	m.err = nil
	m.lastFrame = vigil.Frame{}

	m.messages = append(m.messages, vigil.ChatMessage{Role: vigil.RoleUser, Content: text})
	m.blocks = append(m.blocks, NewUserBlock(text, m.styles))

	m.curReasoning = NewReasoningBlock(m.styles)
	m.curAnswer = NewAnswerBlock(m.theme)
	m.blocks = append(m.blocks, m.curReasoning, m.curAnswer)

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.frameCh = make(chan vigil.Frame, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	req := vigil.ChatRequest{Messages: append([]vigil.ChatMessage(nil), m.messages...)}

	m.Input.Blur()

	return m, tea.Batch(
		startChat(m.chat, ctx, req, m.frameCh, m.doneCh),
		listenForFrame(m.frameCh, m.doneCh),
	)
}

func (m Model) renderContent() string {
	var views []string
	for _, block := range m.blocks {
		if v := block.View(m.Viewport.Width); v != "" {
			views = append(views, v)
		}
	}
	return strings.Join(views, "\n")
}

// updateBlockFocus scans backwards for the last collapsible block; only
// the focused block responds to Tab.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if b, ok := m.blocks[i].(*ReasoningBlock); ok && b.text != "" {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block,
// wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if b, ok := m.blocks[idx].(*ReasoningBlock); ok && b.text != "" {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Alert.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Generating...")
	}
	return m.styles.Muted.Render("Enter to send, Tab to expand reasoning, Ctrl+C to quit")
}

type vitalsTickMsg time.Time

func tickVitals() tea.Cmd {
	return tea.Tick(vitalsRefresh, func(t time.Time) tea.Msg {
		return vitalsTickMsg(t)
	})
}

// startChat runs the response stream in a goroutine and signals
// completion.
func startChat(chat ChatFunc, ctx context.Context, req vigil.ChatRequest, frameCh chan<- vigil.Frame, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := chat(ctx, req, func(f vigil.Frame) {
			select {
			case frameCh <- f:
			case <-ctx.Done():
			}
		})
		close(frameCh)
		doneCh <- err
		return nil
	}
}

// listenForFrame waits for the next snapshot. When the channel closes it
// reads the stream error and reports completion.
func listenForFrame(ch <-chan vigil.Frame, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return ChatDoneMsg{Err: <-doneCh}
		}
		return FrameMsg{Frame: f}
	}
}
