package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultQuizRecordTTL applies when the configured TTL is not positive.
const DefaultQuizRecordTTL = 24 * time.Hour

// QuizLookupService reads stored quiz records, going through the cache when
// one is configured.
type QuizLookupService interface {
	// GetQuizRecord returns nil without error when no quiz has that id.
	GetQuizRecord(ctx context.Context, id int64) (*domain.QuizRecord, error)
}

type cachedQuizRecord struct {
	ID             int64     `json:"id"`
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	DateGenerated  time.Time `json:"date_generated"`
	ScrapedContent string    `json:"scraped_content"`
	FullQuizData   string    `json:"full_quiz_data"`
}

type quizLookupService struct {
	repo    domain.QuizRepository
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewQuizLookupService creates a lookup service. A nil cache reads straight
// from the repository.
func NewQuizLookupService(repo domain.QuizRepository, cache domain.Cache, ttl time.Duration) QuizLookupService {
	if ttl <= 0 {
		ttl = DefaultQuizRecordTTL
	}
	return &quizLookupService{repo: repo, cache: cache, ttl: ttl}
}

func (s *quizLookupService) GetQuizRecord(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	if s.cache == nil {
		return s.repo.GetQuizRecord(ctx, id)
	}

	cacheKey := cache.QuizRecordKey(id)
	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		var entry cachedQuizRecord
		errUnmarshal := json.Unmarshal([]byte(cached), &entry)
		if errUnmarshal == nil {
			logger.Get().Debug("Quiz record cache hit", zap.String("cacheKey", cacheKey))
			return entry.toDomain(), nil
		}
		logger.Get().Warn("Failed to decode cached quiz record, refetching", zap.Error(errUnmarshal), zap.String("cacheKey", cacheKey))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Quiz record cache read failed", zap.Error(err), zap.String("cacheKey", cacheKey))
	}

	// Cache miss or unreadable entry: collapse concurrent loads of the same id.
	res, err, _ := s.sfGroup.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		record, fetchErr := s.repo.GetQuizRecord(ctx, id)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if record == nil {
			return (*domain.QuizRecord)(nil), nil
		}

		payload, errMarshal := json.Marshal(fromDomain(record))
		if errMarshal != nil {
			logger.Get().Error("Failed to encode quiz record for caching", zap.Error(errMarshal), zap.String("cacheKey", cacheKey))
			return record, nil
		}
		if errSet := s.cache.Set(ctx, cacheKey, string(payload), s.ttl); errSet != nil {
			logger.Get().Warn("Failed to cache quiz record", zap.Error(errSet), zap.String("cacheKey", cacheKey))
		} else {
			logger.Get().Debug("Quiz record cached", zap.String("cacheKey", cacheKey), zap.Duration("ttl", s.ttl))
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	record, ok := res.(*domain.QuizRecord)
	if !ok {
		return nil, domain.NewInternalError("unexpected quiz record type from lookup", nil)
	}
	return record, nil
}

func fromDomain(r *domain.QuizRecord) cachedQuizRecord {
	return cachedQuizRecord{
		ID:             r.ID,
		URL:            r.URL,
		Title:          r.Title,
		DateGenerated:  r.DateGenerated,
		ScrapedContent: r.ScrapedContent,
		FullQuizData:   r.FullQuizData,
	}
}

func (c cachedQuizRecord) toDomain() *domain.QuizRecord {
	return &domain.QuizRecord{
		ID:             c.ID,
		URL:            c.URL,
		Title:          c.Title,
		DateGenerated:  c.DateGenerated,
		ScrapedContent: c.ScrapedContent,
		FullQuizData:   c.FullQuizData,
	}
}
