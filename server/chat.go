package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vigil"
	"vigil/assistant"
)

// handleChat runs the model request server-side and streams classified
// snapshots over SSE: one "frame" event per delta, then a "done" event.
// Closing the connection cancels the upstream request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req vigil.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respondError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	src, err := s.provider.Chat(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	final, err := assistant.Run(r.Context(), src, assistant.WithFrameHandler(func(f vigil.Frame) {
		writeEvent(w, "frame", f)
		flusher.Flush()
	}))
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("chat stream ended early", "error", err)
		writeEvent(w, "error", map[string]string{"error": err.Error()})
		flusher.Flush()
		return
	}

	writeEvent(w, "done", final)
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
