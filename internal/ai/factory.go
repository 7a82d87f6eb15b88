package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/relaybot/internal/config"
)

// New creates the Client selected by cfg.AIProvider, wrapped with the
// configured call timeout.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Client, error) {
	log.Info("Initializing AI client", "provider", cfg.AIProvider, "model", cfg.Model())

	var (
		client Client
		err    error
	)
	switch cfg.AIProvider {
	case config.ProviderGemini:
		client, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.Gemini.Model, log)
	case config.ProviderGroq:
		client, err = NewGroq(cfg.GroqAPIKey, cfg.Groq.BaseURL, cfg.Groq.Model, nil, log)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AIProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.AIProvider, err)
	}

	return WithTimeout(client, cfg.AI.Timeout), nil
}
