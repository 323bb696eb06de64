package generator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainGenerator adapts a langchaingo model to domain.TextGenerator.
type LangChainGenerator struct {
	llm     llms.Model
	modelID string
}

// NewLangChainGenerator wraps an already configured langchaingo model.
func NewLangChainGenerator(llm llms.Model, modelID string) *LangChainGenerator {
	return &LangChainGenerator{llm: llm, modelID: modelID}
}

// NewOllamaGenerator creates a generator backed by an ollama server.
func NewOllamaGenerator(serverURL, model string, timeout time.Duration) (*LangChainGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	httpClient := &http.Client{Timeout: timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLangChainGenerator(llm, model), nil
}

// NewOpenAIGenerator creates a generator for the OpenAI API or a compatible
// endpoint when baseURL is set.
func NewOpenAIGenerator(apiKey, model, baseURL string, timeout time.Duration) (*LangChainGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewLangChainGenerator(llm, model), nil
}

// Generate implements domain.TextGenerator.
func (g *LangChainGenerator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", g.modelID, err)
	}
	return out, nil
}

func (g *LangChainGenerator) ModelID() string {
	return g.modelID
}

var _ domain.TextGenerator = (*LangChainGenerator)(nil)
