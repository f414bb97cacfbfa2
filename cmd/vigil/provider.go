package main

import (
	"context"
	"fmt"
	"log/slog"

	"vigil"
	"vigil/config"
	"vigil/gemini"
	"vigil/ollama"
)

// resolveProvider builds the model backend named by the config.
func resolveProvider(ctx context.Context, cfg config.Providers, logger *slog.Logger) (vigil.Provider, error) {
	switch cfg.Default {
	case "ollama":
		return ollama.New(
			ollama.WithBaseURL(cfg.Ollama.BaseURL),
			ollama.WithModel(cfg.Ollama.Model),
			ollama.WithLogger(logger.With("component", "ollama")),
		), nil

	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini provider selected but no API key configured (set VIGIL_PROVIDERS_GEMINI_API_KEY)")
		}
		return gemini.New(ctx, cfg.Gemini.APIKey, gemini.WithModel(cfg.Gemini.Model))

	default:
		return nil, fmt.Errorf("unknown provider %q (want ollama or gemini)", cfg.Default)
	}
}
