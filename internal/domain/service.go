package domain

import "context"

// ArticleExtractor turns a source URL into a cleaned article.
type ArticleExtractor interface {
	// Extract fetches the page behind rawURL and returns its title and prose.
	// Failures are DomainErrors coded INVALID_SOURCE, FETCH_FAILED or CONTENT_NOT_FOUND.
	Extract(ctx context.Context, rawURL string) (*ArticleDocument, error)
}

// QuizSynthesizer turns article text into a validated quiz document.
type QuizSynthesizer interface {
	// Synthesize returns a document without an id, or a GENERATION_FAILED DomainError.
	Synthesize(ctx context.Context, title, body, sourceURL string) (*QuizDocument, error)
}

// GenerateOptions tunes a single TextGenerator call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
	// JSONMode asks the backend to emit a bare JSON document when it supports it.
	JSONMode bool
}

// TextGenerator is the language model behind quiz synthesis.
// Implementations perform exactly one upstream request per call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// ModelID names the model serving the requests, for logging.
	ModelID() string
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists doc and returns a copy carrying the generated id.
	SaveQuiz(ctx context.Context, doc *QuizDocument, scrapedContent string) (*QuizDocument, error)

	// ListHistory returns every stored quiz, newest first.
	ListHistory(ctx context.Context) ([]HistoryEntry, error)

	// GetQuizRecord returns the stored row, or nil when no row has that id.
	GetQuizRecord(ctx context.Context, id int64) (*QuizRecord, error)

	// Ping checks database connectivity and returns the server time.
	Ping(ctx context.Context) (string, error)
}
