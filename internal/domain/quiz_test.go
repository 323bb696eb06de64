package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *QuizDocument {
	return &QuizDocument{
		URL:     "https://en.wikipedia.org/wiki/Alan_Turing",
		Title:   "Alan Turing",
		Summary: "Alan Turing was a British mathematician.",
		KeyEntities: KeyEntities{
			People:        []string{"Alan Turing"},
			Organizations: []string{"Bletchley Park"},
			Locations:     []string{"United Kingdom"},
		},
		Sections: []string{"Early life", "Legacy"},
		Quiz: []QuizQuestion{
			{
				Question:    "Where did Turing work during the war?",
				Options:     []string{"Bletchley Park", "CERN", "MIT", "Bell Labs"},
				Answer:      "Bletchley Park",
				Difficulty:  DifficultyEasy,
				Explanation: "Mentioned in the war section.",
			},
		},
		RelatedTopics: []string{"Cryptography"},
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
		ok    bool
	}{
		{"easy", DifficultyEasy, true},
		{"Medium", DifficultyMedium, true},
		{" HARD ", DifficultyHard, true},
		{"expert", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuizQuestion_HasAnswerInOptions(t *testing.T) {
	q := QuizQuestion{Options: []string{"a", "b", "c", "d"}, Answer: "c"}
	assert.True(t, q.HasAnswerInOptions())

	q.Answer = "e"
	assert.False(t, q.HasAnswerInOptions())
}

func TestKeyEntities_Normalize(t *testing.T) {
	k := KeyEntities{People: []string{"Ada"}}.Normalize()
	assert.Equal(t, []string{"Ada"}, k.People)
	assert.NotNil(t, k.Organizations)
	assert.NotNil(t, k.Locations)
	assert.Empty(t, k.Organizations)
}

func TestQuizDocument_WithIDLeavesReceiverUntouched(t *testing.T) {
	doc := sampleDocument()

	persisted := doc.WithID(42)

	require.NotNil(t, persisted.ID)
	assert.Equal(t, int64(42), *persisted.ID)
	assert.Nil(t, doc.ID)

	persisted.Quiz[0].Options[0] = "changed"
	persisted.Sections[0] = "changed"
	assert.Equal(t, "Bletchley Park", doc.Quiz[0].Options[0])
	assert.Equal(t, "Early life", doc.Sections[0])
}

func TestQuizDocument_WithoutID(t *testing.T) {
	doc := sampleDocument().WithID(7)
	cleared := doc.WithoutID()
	assert.Nil(t, cleared.ID)
	require.NotNil(t, doc.ID)
	assert.Equal(t, int64(7), *doc.ID)
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewFetchError("https://en.wikipedia.org/wiki/Go", cause)

	assert.Equal(t, "failed to fetch article: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go", err.Context["url"])

	wrapped := fmt.Errorf("pipeline: %w", err)
	assert.True(t, HasCode(wrapped, CodeFetchFailed))
	assert.False(t, HasCode(wrapped, CodeInvalidSource))
	assert.False(t, HasCode(cause, CodeFetchFailed))
}
