package vigil

// Mode identifies the channel streamed text is currently classified into.
type Mode int

const (
	// ModeVisible is the user-facing answer channel and the initial mode.
	ModeVisible Mode = iota
	// ModeReasoning is the internal-thought channel, entered via the
	// open marker and left via the close or self-closing marker.
	ModeReasoning
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeVisible:
		return "visible"
	case ModeReasoning:
		return "reasoning"
	default:
		return "unknown"
	}
}

// Frame is a snapshot of everything classified so far in one streamed
// response. One Frame is emitted per input delta, in delta order. Frames
// strictly grow: both fields carry the full accumulated content, so a
// consumer replaces its displayed text with the latest frame without
// diffing.
//
// Only the existence of interleaving is tracked; the relative position
// of reasoning and visible spans in the original stream is not preserved.
type Frame struct {
	Reasoning string `json:"reasoning"`
	Visible   string `json:"visible"`
}

// SectionKind identifies a Frame section.
type SectionKind int

const (
	SectionReasoning SectionKind = iota
	SectionVisible
)

// Section is one channel of a Frame in presentation order.
type Section struct {
	Kind SectionKind
	Text string
}

// Sections returns the frame's channels in presentation order: the
// reasoning channel first when non-empty, the visible channel always.
func (f Frame) Sections() []Section {
	var out []Section
	if f.Reasoning != "" {
		out = append(out, Section{Kind: SectionReasoning, Text: f.Reasoning})
	}
	return append(out, Section{Kind: SectionVisible, Text: f.Visible})
}
