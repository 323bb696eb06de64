package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic requires max_tokens on every request.
const defaultAnthropicMaxTokens = 8192

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicGenerator creates an Anthropic generator. Extra request options
// (base URL, retries) are passed through to the SDK client.
func NewAnthropicGenerator(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("anthropic model name cannot be empty")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		// One upstream request per generation.
		option.WithMaxRetries(0),
	}
	clientOpts = append(clientOpts, opts...)

	client := anthropic.NewClient(clientOpts...)
	return &AnthropicGenerator{client: &client, model: model}, nil
}

// Generate implements domain.TextGenerator. JSONMode has no direct
// equivalent here; the prompt already demands bare JSON.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{{
			Role:    anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)},
		}},
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic %s: %w", g.model, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic %s: no text content in response", g.model)
	}
	return sb.String(), nil
}

func (g *AnthropicGenerator) ModelID() string {
	return g.model
}

var _ domain.TextGenerator = (*AnthropicGenerator)(nil)
