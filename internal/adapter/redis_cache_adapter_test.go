package adapter

import (
	"context"
	"testing"
	"time"

	"sports-trivia/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectGet("sportstrivia:leaderboard:global:ALL").SetVal(`{"entries":[]}`)

	val, err := cacheAdapter.Get(context.Background(), "sportstrivia:leaderboard:global:ALL")
	assert.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectGet("missing-key").RedisNil()

	_, err := cacheAdapter.Get(context.Background(), "missing-key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectSet("key", "value", time.Minute).SetVal("OK")

	err := cacheAdapter.Set(context.Background(), "key", "value", time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectDel("key").SetVal(1)

	err := cacheAdapter.Delete(context.Background(), "key")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
