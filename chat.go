package vigil

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of the assistant conversation. Assistant
// content stores the raw streamed text, reasoning markers included;
// classification happens on the way to the display, never in storage.
type ChatMessage struct {
	Role    Role
	Content string
}

// ChatRequest carries model selection and the conversation so far.
// The provider uses its own defaults when fields are zero.
type ChatRequest struct {
	Model    string // model ID, provider-specific; empty = provider default
	Messages []ChatMessage
}
