package ollama

// Wire types for the Ollama chat API.

type apiChatRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiChatChunk is one NDJSON line of a streamed response.
type apiChatChunk struct {
	Message apiMessage `json:"message"`
	Done    bool       `json:"done"`
	Error   string     `json:"error"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}
