package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz runs extraction, synthesis and persistence for one URL.
	GenerateQuiz(ctx context.Context, rawURL string) (*domain.QuizDocument, error)
	ListHistory(ctx context.Context) ([]dto.HistoryItemResponse, error)
	GetQuiz(ctx context.Context, id int64) (*dto.QuizDetailResponse, error)
}

// quizService implements QuizService
type quizService struct {
	extractor   domain.ArticleExtractor
	synthesizer domain.QuizSynthesizer
	repo        domain.QuizRepository
	lookup      QuizLookupService
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	extractor domain.ArticleExtractor,
	synthesizer domain.QuizSynthesizer,
	repo domain.QuizRepository,
	lookup QuizLookupService,
) QuizService {
	return &quizService{
		extractor:   extractor,
		synthesizer: synthesizer,
		repo:        repo,
		lookup:      lookup,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, rawURL string) (*domain.QuizDocument, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domain.NewInvalidInputError("url is required")
	}

	start := time.Now()
	log := logger.Get().With(zap.String("url", rawURL))

	article, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		log.Warn("Article extraction failed", zap.Error(err))
		return nil, err
	}
	log.Debug("Article extracted",
		zap.String("title", article.Title),
		zap.Int("body_len", len(article.Body)))

	doc, err := s.synthesizer.Synthesize(ctx, article.Title, article.Body, rawURL)
	if err != nil {
		log.Warn("Quiz synthesis failed", zap.Error(err))
		return nil, err
	}

	saved, err := s.repo.SaveQuiz(ctx, doc, article.Body)
	if err != nil {
		log.Error("Failed to save quiz", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewPersistenceError(err)
	}

	log.Info("Quiz generated",
		zap.Int64("quiz_id", *saved.ID),
		zap.Int("questions", len(saved.Quiz)),
		zap.Duration("elapsed", time.Since(start)))
	return saved, nil
}

// ListHistory implements QuizService
func (s *quizService) ListHistory(ctx context.Context) ([]dto.HistoryItemResponse, error) {
	entries, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistoryItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.HistoryItemResponse{
			ID:            e.ID,
			Title:         e.Title,
			URL:           e.URL,
			DateGenerated: e.DateGenerated,
		})
	}
	return items, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id int64) (*dto.QuizDetailResponse, error) {
	record, err := s.lookup.GetQuizRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}

	data := json.RawMessage(record.FullQuizData)
	if !json.Valid(data) {
		logger.Get().Error("Stored quiz data is not valid JSON", zap.Int64("quiz_id", id))
		return nil, domain.NewInternalError("stored quiz data is corrupt", nil).WithContext("quiz_id", id)
	}

	return &dto.QuizDetailResponse{
		ID:       record.ID,
		Title:    record.Title,
		URL:      record.URL,
		QuizData: data,
	}, nil
}
