package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const recordJSON = `{"id":7,"title":"Go","url":"https://en.wikipedia.org/wiki/Go","quiz_data":"{}"}`

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.QuizRecordKey(7)

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(recordJSON)
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, recordJSON, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection pool timeout")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_SetWithTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.QuizRecordKey(7)
	ttl := 24 * time.Hour

	mock.ExpectSet(key, recordJSON, ttl).SetVal("OK")
	assert.NoError(t, adapter.Set(ctx, key, recordJSON, ttl))

	redisErr := errors.New("OOM command not allowed")
	mock.ExpectSet(key, recordJSON, ttl).SetErr(redisErr)
	assert.ErrorIs(t, adapter.Set(ctx, key, recordJSON, ttl), redisErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_DeleteAndPing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.QuizRecordKey(7)

	// Deleting an absent key is not an error.
	mock.ExpectDel(key).SetVal(0)
	assert.NoError(t, adapter.Delete(ctx, key))

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	pingErr := errors.New("dial tcp: connection refused")
	mock.ExpectPing().SetErr(pingErr)
	assert.ErrorIs(t, adapter.Ping(ctx), pingErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
