// Package ai selects and decorates completion providers.
package ai

import (
	"github.com/howl2go/v2/internal/infrastructure/config"
	"github.com/howl2go/v2/internal/infrastructure/ai/groq"
	"github.com/howl2go/v2/internal/infrastructure/ai/ollama"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// SelectProvider builds the configured completion service. A provider
// of "none", an unknown provider, or a groq selection without an API
// key all yield nil, which downstream services treat as the capability
// being unconfigured.
func SelectProvider(cfg config.AIConfig, logger *zap.Logger) outbound.CompletionService {
	switch cfg.Provider {
	case "groq":
		if cfg.Groq.APIKey == "" {
			logger.Warn("Groq selected but no API key configured, language features disabled")
			return nil
		}
		return groq.NewClient(groq.Config{
			APIKey:  cfg.Groq.APIKey,
			BaseURL: cfg.Groq.BaseURL,
			Model:   cfg.Groq.Model,
			Timeout: cfg.Groq.Timeout,
		}, logger)
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.Ollama.Timeout,
		}, logger)
	default:
		if cfg.Provider != "" && cfg.Provider != "none" {
			logger.Warn("Unknown AI provider, language features disabled",
				zap.String("provider", cfg.Provider))
		}
		return nil
	}
}
