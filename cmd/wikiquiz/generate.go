package main

import (
	"context"
	"fmt"
	"os"

	"wiki-quiz/internal/adapter/generator"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/quizgen"

	"go.uber.org/zap"
)

// GenerateCommand runs extraction and synthesis. Model settings come from the
// same config file and environment as the API server; flags override them.
type GenerateCommand struct {
	URL         string   `arg:"" help:"The Wikipedia article URL."`
	Format      string   `help:"Output format." enum:"json,yaml" default:"json" short:"f"`
	Provider    string   `help:"LLM provider (gemini, ollama, openai, anthropic)." default:""`
	Model       string   `help:"Model name; the provider default when empty." default:""`
	Temperature *float64 `help:"Sampling temperature."`
	LogLevel    string   `help:"The log level to use." env:"LOG_LEVEL" default:"warn"`
}

func (c GenerateCommand) Run(ctx context.Context) error {
	log := initLogger(c.LogLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.ValidateLLM(); err != nil {
		return err
	}

	textGenerator, err := generator.New(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create text generator: %w", err)
	}

	article, err := scraper.NewExtractor(cfg.Scraper.UserAgent, cfg.Scraper.Timeout).Extract(ctx, c.URL)
	if err != nil {
		return err
	}
	log.Info("article extracted", zap.String("title", article.Title), zap.String("model", textGenerator.ModelID()))

	synthesizer := quizgen.NewSynthesizer(textGenerator, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	doc, err := synthesizer.Synthesize(ctx, article.Title, article.Body, c.URL)
	if err != nil {
		return err
	}

	return writeOutput(os.Stdout, doc, c.Format)
}

func (c GenerateCommand) applyOverrides(cfg *config.Config) {
	if c.Provider != "" && c.Provider != cfg.LLM.Provider {
		cfg.LLM.Provider = c.Provider
		cfg.LLM.Model = config.DefaultModel(c.Provider)
		cfg.LLM.APIKey = config.ProviderAPIKey(c.Provider)
	}
	if c.Model != "" {
		cfg.LLM.Model = c.Model
	}
	if c.Temperature != nil {
		cfg.LLM.Temperature = *c.Temperature
	}
}
