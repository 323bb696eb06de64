package quizgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"wiki-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
)

// ErrNoJSONObject is wrapped by the error returned when a response has no {...} span.
var ErrNoJSONObject = errors.New("no JSON object found in model response")

// ExtractJSON strips reasoning blocks and markdown fences from a model response
// and returns the first complete JSON object in what remains.
func ExtractJSON(response string) (string, error) {
	cleaned := thinkBlock.ReplaceAllString(response, "")
	// An unterminated block swallows the rest of the response.
	if i := strings.Index(cleaned, "<think>"); i != -1 {
		cleaned = cleaned[:i]
	}
	cleaned = codeFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	// Braces may also appear in prose around the object, so each '{' is tried
	// in turn and the first one that opens a complete JSON value wins.
	for offset := 0; offset < len(cleaned); {
		i := strings.IndexByte(cleaned[offset:], '{')
		if i == -1 {
			break
		}
		start := offset + i
		var obj json.RawMessage
		if err := json.NewDecoder(strings.NewReader(cleaned[start:])).Decode(&obj); err == nil {
			return string(obj), nil
		}
		offset = start + 1
	}

	// Nothing decodes; hand the widest span to Validate so the decode error is reported.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return cleaned[start : end+1], nil
}

type wireEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

type wireQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// wireDocument is what the model is asked to emit. Fields not listed here,
// including any id, are ignored.
type wireDocument struct {
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyEntities   wireEntities   `json:"key_entities"`
	Sections      []string       `json:"sections"`
	Quiz          []wireQuestion `json:"quiz"`
	RelatedTopics []string       `json:"related_topics"`
}

// Validate checks raw JSON against QuizSchema and the cross-field rules, and
// maps it to a QuizDocument without an id. Every rejection is a
// GENERATION_FAILED DomainError.
func Validate(raw []byte) (*domain.QuizDocument, error) {
	schema, err := compiled()
	if err != nil {
		return nil, domain.NewInternalError("quiz schema failed to compile", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewGenerationError("model response is not valid JSON", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, domain.NewGenerationError("model response does not match the quiz schema", err)
	}

	var wire wireDocument
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, domain.NewGenerationError("model response could not be decoded", err)
	}

	doc := &domain.QuizDocument{
		URL:     wire.URL,
		Title:   wire.Title,
		Summary: wire.Summary,
		KeyEntities: domain.KeyEntities{
			People:        wire.KeyEntities.People,
			Organizations: wire.KeyEntities.Organizations,
			Locations:     wire.KeyEntities.Locations,
		}.Normalize(),
		Sections:      nonNil(wire.Sections),
		Quiz:          make([]domain.QuizQuestion, 0, len(wire.Quiz)),
		RelatedTopics: nonNil(wire.RelatedTopics),
	}

	for i, q := range wire.Quiz {
		difficulty, ok := domain.ParseDifficulty(q.Difficulty)
		if !ok {
			return nil, domain.NewGenerationError(fmt.Sprintf("question %d has unknown difficulty %q", i+1, q.Difficulty), nil)
		}
		question := domain.QuizQuestion{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  difficulty,
			Explanation: q.Explanation,
		}
		if !question.HasAnswerInOptions() {
			return nil, domain.NewGenerationError(fmt.Sprintf("question %d: answer %q is not one of its options", i+1, q.Answer), nil).
				WithContext("question_index", i)
		}
		doc.Quiz = append(doc.Quiz, question)
	}

	return doc, nil
}

// ParseResponse runs ExtractJSON and Validate over a raw model response.
func ParseResponse(response string) (*domain.QuizDocument, error) {
	raw, err := ExtractJSON(response)
	if err != nil {
		return nil, domain.NewGenerationError("model response contained no JSON object", err)
	}
	return Validate([]byte(raw))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
