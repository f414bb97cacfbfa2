package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"vigil"
)

// Interface compliance check.
var _ vigil.Provider = (*Client)(nil)

// Client implements [vigil.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Chat sends a streaming request to the Gemini API and returns a
// [vigil.Source] of text deltas.
func (c *Client) Chat(ctx context.Context, req vigil.ChatRequest) (vigil.Source, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents, config := ConvertRequest(req)
	iter := c.client.Models.GenerateContentStream(ctx, model, contents, config)
	return newSource(ctx, iter), nil
}

// ConvertRequest maps a chat request onto genai contents and config.
// System messages become the system instruction; the rest keep their
// order. Exported for testing.
func ConvertRequest(req vigil.ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	config := &genai.GenerateContentConfig{}

	for _, m := range req.Messages {
		switch m.Role {
		case vigil.RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case vigil.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	return contents, config
}
