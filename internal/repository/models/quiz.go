package models

import (
	"database/sql"
	"time"
)

// Quiz represents a row of the quizzes table.
type Quiz struct {
	ID             int64          `db:"id"`
	URL            string         `db:"url"`
	Title          string         `db:"title"`
	DateGenerated  time.Time      `db:"date_generated"`
	ScrapedContent sql.NullString `db:"scraped_content"`
	FullQuizData   string         `db:"full_quiz_data"`
}

// QuizHistory is the projection listed by the history endpoint.
type QuizHistory struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	URL           string    `db:"url"`
	DateGenerated time.Time `db:"date_generated"`
}
