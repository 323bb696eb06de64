package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"wiki-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://wiki-quiz/quiz-document.json"

func stringArray() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func difficultyEnum() []any {
	out := make([]any, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		out[i] = string(d)
	}
	return out
}

// QuizSchema is the JSON Schema a model response must satisfy. It is embedded
// verbatim in the prompt and compiled once for validation.
var QuizSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"title":    "QuizDocument",
	"type":     "object",
	"required": []any{"summary", "key_entities", "sections", "quiz", "related_topics"},
	"properties": map[string]any{
		"url":     map[string]any{"type": "string"},
		"title":   map[string]any{"type": "string"},
		"summary": map[string]any{"type": "string", "minLength": 1},
		"key_entities": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"people":        stringArray(),
				"organizations": stringArray(),
				"locations":     stringArray(),
			},
		},
		"sections": stringArray(),
		"quiz": map[string]any{
			"type":     "array",
			"minItems": domain.MinQuestions,
			"maxItems": domain.MaxQuestions,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options", "answer", "difficulty", "explanation"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": domain.OptionsPerQuestion,
						"maxItems": domain.OptionsPerQuestion,
						"items":    map[string]any{"type": "string"},
					},
					"answer":      map[string]any{"type": "string", "minLength": 1},
					"difficulty":  map[string]any{"type": "string", "enum": difficultyEnum()},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
		"related_topics": stringArray(),
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled QuizSchema. The compiled schema is safe for
// concurrent use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go ints.
		raw, err := json.Marshal(QuizSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// SchemaText renders QuizSchema as indented JSON for the prompt.
func SchemaText() string {
	b, err := json.MarshalIndent(QuizSchema, "", "  ")
	if err != nil {
		// QuizSchema is a static literal of JSON-safe values.
		panic(fmt.Sprintf("quizgen: marshal schema: %v", err))
	}
	return string(b)
}
