package dto

import (
	"encoding/json"
	"time"
)

// HealthResponse is served at the root path.
type HealthResponse struct {
	Message string `json:"message"`
}

// GenerateQuizRequest carries the article URL when it is sent as a JSON body
// instead of the url query parameter.
type GenerateQuizRequest struct {
	URL string `json:"url"`
}

// HistoryItemResponse represents one stored quiz in the history listing
type HistoryItemResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	DateGenerated time.Time `json:"date_generated"`
}

// QuizDetailResponse represents a stored quiz. QuizData is the document as it
// was persisted, without its id.
type QuizDetailResponse struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	QuizData json.RawMessage `json:"quiz_data"`
}
