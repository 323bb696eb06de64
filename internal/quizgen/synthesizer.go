package quizgen

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// DefaultTemperature matches the sampling the quizzes were tuned with.
const DefaultTemperature = 0.7

// Synthesizer implements domain.QuizSynthesizer on top of a TextGenerator.
// It keeps no state between calls.
type Synthesizer struct {
	generator domain.TextGenerator
	opts      domain.GenerateOptions
}

// NewSynthesizer creates a Synthesizer. A non-positive temperature falls back to DefaultTemperature.
func NewSynthesizer(generator domain.TextGenerator, temperature float64, maxTokens int) *Synthesizer {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &Synthesizer{
		generator: generator,
		opts: domain.GenerateOptions{
			Temperature: temperature,
			MaxTokens:   maxTokens,
			JSONMode:    true,
		},
	}
}

// Synthesize implements domain.QuizSynthesizer. The generator is called exactly once.
func (s *Synthesizer) Synthesize(ctx context.Context, title, body, sourceURL string) (*domain.QuizDocument, error) {
	l := logger.Get().With(zap.String("url", sourceURL), zap.String("model", s.generator.ModelID()))

	prompt := BuildPrompt(title, body, sourceURL)

	start := time.Now()
	response, err := s.generator.Generate(ctx, prompt, s.opts)
	if err != nil {
		l.Error("Quiz generation call failed", zap.Error(err))
		return nil, domain.NewGenerationError("model call failed", err)
	}
	l.Debug("Model response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(response)))

	doc, err := ParseResponse(response)
	if err != nil {
		l.Warn("Model response rejected", zap.Error(err))
		return nil, err
	}

	// The caller's title and URL are authoritative.
	doc.Title = title
	doc.URL = sourceURL

	l.Info("Quiz synthesized", zap.Int("questions", len(doc.Quiz)))
	return doc, nil
}

var _ domain.QuizSynthesizer = (*Synthesizer)(nil)
