package generator

import (
	"context"
	"fmt"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// New creates the TextGenerator selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	var (
		gen domain.TextGenerator
		err error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		gen, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
	case config.ProviderAnthropic:
		gen, err = NewAnthropicGenerator(cfg.APIKey, cfg.Model, cfg.Timeout)
	case config.ProviderOpenAI:
		// server_url defaults to the ollama endpoint, so it is only honoured
		// when explicitly pointed somewhere else.
		baseURL := ""
		if cfg.ServerURL != "" && cfg.ServerURL != defaultOllamaURL {
			baseURL = cfg.ServerURL
		}
		gen, err = NewOpenAIGenerator(cfg.APIKey, cfg.Model, baseURL, cfg.Timeout)
	case config.ProviderOllama:
		gen, err = NewOllamaGenerator(cfg.ServerURL, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s generator: %w", cfg.Provider, err)
	}

	logger.Get().Info("Text generator initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", gen.ModelID()))
	return gen, nil
}

const defaultOllamaURL = "http://localhost:11434"
