// Package ollama implements [vigil.Provider] for an Ollama-compatible
// chat endpoint. Responses stream as NDJSON: one JSON object per line,
// each carrying a message content delta, terminated by a done object.
package ollama

const (
	defaultBaseURL = "http://127.0.0.1:11434"
	defaultModel   = "deepseek-r1:8b"
	chatPath       = "/api/chat"
)
