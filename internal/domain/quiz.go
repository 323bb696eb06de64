package domain

import (
	"slices"
	"strings"
	"time"
)

// Difficulty is the difficulty label attached to every generated question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the accepted difficulty labels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts a label to a Difficulty. The second return value is
// false when the label is not one of easy, medium or hard.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Difficulties, d) {
		return d, true
	}
	return "", false
}

// Quiz cardinalities shared by the prompt, the schema and validation.
const (
	MinQuestions       = 5
	MaxQuestions       = 10
	OptionsPerQuestion = 4
)

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question    string     `json:"question" yaml:"question"`
	Options     []string   `json:"options" yaml:"options"`
	Answer      string     `json:"answer" yaml:"answer"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Explanation string     `json:"explanation" yaml:"explanation"`
}

// HasAnswerInOptions reports whether the answer is one of the options.
func (q QuizQuestion) HasAnswerInOptions() bool {
	return slices.Contains(q.Options, q.Answer)
}

// KeyEntities groups the named entities found in an article.
// Each list is empty rather than nil.
type KeyEntities struct {
	People        []string `json:"people" yaml:"people"`
	Organizations []string `json:"organizations" yaml:"organizations"`
	Locations     []string `json:"locations" yaml:"locations"`
}

// Normalize replaces nil lists with empty ones.
func (k KeyEntities) Normalize() KeyEntities {
	return KeyEntities{
		People:        nonNil(k.People),
		Organizations: nonNil(k.Organizations),
		Locations:     nonNil(k.Locations),
	}
}

// QuizDocument is the synthesized quiz for one article. ID is nil until the
// document has been persisted.
type QuizDocument struct {
	ID            *int64         `json:"id,omitempty" yaml:"id,omitempty"`
	URL           string         `json:"url" yaml:"url"`
	Title         string         `json:"title" yaml:"title"`
	Summary       string         `json:"summary" yaml:"summary"`
	KeyEntities   KeyEntities    `json:"key_entities" yaml:"key_entities"`
	Sections      []string       `json:"sections" yaml:"sections"`
	Quiz          []QuizQuestion `json:"quiz" yaml:"quiz"`
	RelatedTopics []string       `json:"related_topics" yaml:"related_topics"`
}

// WithID returns a copy of the document carrying the given id.
// The receiver is left untouched.
func (d *QuizDocument) WithID(id int64) *QuizDocument {
	out := d.Clone()
	out.ID = &id
	return out
}

// WithoutID returns a copy of the document with the id cleared.
func (d *QuizDocument) WithoutID() *QuizDocument {
	out := d.Clone()
	out.ID = nil
	return out
}

// Clone returns a deep copy.
func (d *QuizDocument) Clone() *QuizDocument {
	out := *d
	if d.ID != nil {
		id := *d.ID
		out.ID = &id
	}
	out.KeyEntities = KeyEntities{
		People:        slices.Clone(d.KeyEntities.People),
		Organizations: slices.Clone(d.KeyEntities.Organizations),
		Locations:     slices.Clone(d.KeyEntities.Locations),
	}
	out.Sections = slices.Clone(d.Sections)
	out.RelatedTopics = slices.Clone(d.RelatedTopics)
	out.Quiz = make([]QuizQuestion, len(d.Quiz))
	for i, q := range d.Quiz {
		q.Options = slices.Clone(q.Options)
		out.Quiz[i] = q
	}
	return &out
}

// QuizRecord is a persisted quiz row.
type QuizRecord struct {
	ID             int64
	URL            string
	Title          string
	DateGenerated  time.Time
	ScrapedContent string
	FullQuizData   string // quiz document encoded as JSON, id omitted
}

// HistoryEntry summarises one previously generated quiz.
type HistoryEntry struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	DateGenerated time.Time `json:"date_generated"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
