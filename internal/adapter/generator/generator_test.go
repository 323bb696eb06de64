package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a langchaingo model that records the call options it receives.
type fakeModel struct {
	reply   string
	err     error
	calls   int
	opts    llms.CallOptions
	prompts []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	for _, o := range options {
		o(&f.opts)
	}
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, tc.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangChainGenerator_Generate(t *testing.T) {
	model := &fakeModel{reply: `{"ok": true}`}
	gen := NewLangChainGenerator(model, "qwen3:0.6b")

	out, err := gen.Generate(context.Background(), "make a quiz", domain.GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   1024,
		JSONMode:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, []string{"make a quiz"}, model.prompts)
	assert.InDelta(t, 0.7, model.opts.Temperature, 1e-9)
	assert.Equal(t, 1024, model.opts.MaxTokens)
	assert.True(t, model.opts.JSONMode)
	assert.Equal(t, "qwen3:0.6b", gen.ModelID())
}

func TestLangChainGenerator_Error(t *testing.T) {
	cause := errors.New("model not loaded")
	gen := NewLangChainGenerator(&fakeModel{err: cause}, "qwen3:0.6b")

	_, err := gen.Generate(context.Background(), "p", domain.GenerateOptions{Temperature: 0.7})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestGeminiGenerator_Generate(t *testing.T) {
	var calls int
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.True(t, strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"summary": "s"}`}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	t.Cleanup(server.Close)

	gen, err := NewGeminiGenerator(context.Background(), "test-key", "gemini-2.5-flash", 5*time.Second, WithGeminiBaseURL(server.URL))
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), "make a quiz", domain.GenerateOptions{Temperature: 0.7, JSONMode: true})
	require.NoError(t, err)

	assert.Equal(t, `{"summary": "s"}`, out)
	assert.Equal(t, 1, calls)
	genConfig, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from %v", body)
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	assert.InDelta(t, 0.7, genConfig["temperature"], 1e-6)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-2.5-flash", time.Second)
	require.Error(t, err)
}

func newTestAnthropicGenerator(t *testing.T, handler http.HandlerFunc) *AnthropicGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gen, err := NewAnthropicGenerator("test-key", "claude-haiku-4-5-20251001", 5*time.Second, option.WithBaseURL(server.URL))
	require.NoError(t, err)
	return gen
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	var body map[string]any
	gen := newTestAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `{"summary": `},
				{"type": "text", "text": `"s"}`},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	})

	out, err := gen.Generate(context.Background(), "make a quiz", domain.GenerateOptions{Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, `{"summary": "s"}`, out)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.EqualValues(t, defaultAnthropicMaxTokens, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
}

func TestAnthropicGenerator_ServerErrorIsNotRetried(t *testing.T) {
	var calls int
	gen := newTestAnthropicGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	})

	_, err := gen.Generate(context.Background(), "make a quiz", domain.GenerateOptions{Temperature: 0.7})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "bard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}

func TestNew_MissingKey(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderAnthropic, config.ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			_, err := New(context.Background(), config.LLMConfig{Provider: provider, Model: "m", Timeout: time.Second})
			require.Error(t, err)
		})
	}
}

func TestNew_Ollama(t *testing.T) {
	gen, err := New(context.Background(), config.LLMConfig{
		Provider:  config.ProviderOllama,
		Model:     "qwen3:0.6b",
		ServerURL: "http://localhost:11434",
		Timeout:   time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "qwen3:0.6b", gen.ModelID())
}

func TestMock(t *testing.T) {
	m := NewMock(MockResponse{Text: "first"}, MockResponse{Err: errors.New("second fails")})

	out, err := m.Generate(context.Background(), "p1", domain.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	_, err = m.Generate(context.Background(), "p2", domain.GenerateOptions{})
	assert.EqualError(t, err, "second fails")

	_, err = m.Generate(context.Background(), "p3", domain.GenerateOptions{})
	assert.ErrorIs(t, err, ErrNoResponses)

	assert.Equal(t, 3, m.Calls())
	assert.Equal(t, []string{"p1", "p2", "p3"}, m.Prompts)
}
