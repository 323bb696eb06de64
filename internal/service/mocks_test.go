package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockArticleExtractor ---
type MockArticleExtractor struct {
	mock.Mock
}

func (m *MockArticleExtractor) Extract(ctx context.Context, rawURL string) (*domain.ArticleDocument, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArticleDocument), args.Error(1)
}

// --- MockQuizSynthesizer ---
type MockQuizSynthesizer struct {
	mock.Mock
}

func (m *MockQuizSynthesizer) Synthesize(ctx context.Context, title, body, sourceURL string) (*domain.QuizDocument, error) {
	args := m.Called(ctx, title, body, sourceURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDocument), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, doc *domain.QuizDocument, scrapedContent string) (*domain.QuizDocument, error) {
	args := m.Called(ctx, doc, scrapedContent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDocument), args.Error(1)
}

func (m *MockQuizRepository) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockQuizRepository) GetQuizRecord(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) Ping(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuizLookupService ---
type MockQuizLookupService struct {
	mock.Mock
}

func (m *MockQuizLookupService) GetQuizRecord(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}
