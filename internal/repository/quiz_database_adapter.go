package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// Driver names that need dialect-specific SQL.
const (
	oracleDriver = "oracle"
)

const (
	insertQuizQuery = `INSERT INTO quizzes (url, title, date_generated, scraped_content, full_quiz_data)
	VALUES (?, ?, ?, ?, ?)`

	listHistoryQuery = `SELECT
		id "id",
		title "title",
		url "url",
		date_generated "date_generated"
	FROM quizzes
	ORDER BY date_generated DESC, id DESC`

	getQuizQuery = `SELECT
		id "id",
		url "url",
		title "title",
		date_generated "date_generated",
		scraped_content "scraped_content",
		full_quiz_data "full_quiz_data"
	FROM quizzes
	WHERE id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) *QuizDatabaseAdapter {
	return &QuizDatabaseAdapter{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (a *QuizDatabaseAdapter) isOracle() bool {
	return a.db.DriverName() == oracleDriver
}

// EncodeQuizData serialises a document for the full_quiz_data column. The id
// is omitted and HTML characters are written as-is.
func EncodeQuizData(doc *domain.QuizDocument) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.WithoutID()); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, doc *domain.QuizDocument, scrapedContent string) (*domain.QuizDocument, error) {
	data, err := EncodeQuizData(doc)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Errorf("encode quiz: %w", err))
	}

	args := []interface{}{doc.URL, doc.Title, a.now(), util.StringToNullString(scrapedContent), data}

	var id int64
	if a.isOracle() {
		// Oracle has no INSERT ... RETURNING result set.
		query := a.db.Rebind(insertQuizQuery + ` RETURNING id INTO ?`)
		args = append(args, sql.Out{Dest: &id})
		if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
			return nil, domain.NewPersistenceError(fmt.Errorf("insert quiz: %w", err))
		}
	} else {
		query := a.db.Rebind(insertQuizQuery + ` RETURNING id`)
		if err := a.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, domain.NewPersistenceError(fmt.Errorf("insert quiz: %w", err))
		}
	}

	return doc.WithID(id), nil
}

// ListHistory implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var rows []models.QuizHistory
	if err := a.db.SelectContext(ctx, &rows, a.db.Rebind(listHistoryQuery)); err != nil {
		return nil, domain.NewInternalError("failed to load quiz history", err)
	}

	history := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		history = append(history, domain.HistoryEntry{
			ID:            r.ID,
			Title:         r.Title,
			URL:           r.URL,
			DateGenerated: r.DateGenerated,
		})
	}
	return history, nil
}

// GetQuizRecord implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizRecord(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	var row models.Quiz
	err := a.db.GetContext(ctx, &row, a.db.Rebind(getQuizQuery), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load quiz %d", id), err)
	}
	return toDomainQuizRecord(&row), nil
}

// Ping implements domain.QuizRepository
func (a *QuizDatabaseAdapter) Ping(ctx context.Context) (string, error) {
	query := `SELECT CURRENT_TIMESTAMP`
	if a.isOracle() {
		query += ` FROM DUAL`
	}
	var now string
	if err := a.db.QueryRowxContext(ctx, query).Scan(&now); err != nil {
		return "", fmt.Errorf("database ping failed: %w", err)
	}
	return now, nil
}

func toDomainQuizRecord(m *models.Quiz) *domain.QuizRecord {
	return &domain.QuizRecord{
		ID:             m.ID,
		URL:            m.URL,
		Title:          m.Title,
		DateGenerated:  m.DateGenerated,
		ScrapedContent: m.ScrapedContent.String,
		FullQuizData:   m.FullQuizData,
	}
}

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
