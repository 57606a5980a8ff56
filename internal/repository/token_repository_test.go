package repository

import (
	"context"
	"testing"
	"time"

	redisapp "movie_catalog/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedRedisRepo(t *testing.T) (*RedisTokenRepo, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()

	return NewRedisTokenRepo(&redisapp.Client{Client: db}), mock
}

func TestRedisTokenRepo_SaveRefreshToken(t *testing.T) {
	repo, mock := newMockedRedisRepo(t)

	mock.ExpectSet("refresh:some-token", "1", 30*time.Minute).SetVal("OK")

	err := repo.SaveRefreshToken(context.Background(), "some-token", 30*time.Minute)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_HasRefreshToken(t *testing.T) {
	repo, mock := newMockedRedisRepo(t)

	mock.ExpectGet("refresh:known").SetVal("1")
	mock.ExpectGet("refresh:unknown").RedisNil()

	ok, err := repo.HasRefreshToken(context.Background(), "known")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasRefreshToken(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_TakeRefreshToken(t *testing.T) {
	repo, mock := newMockedRedisRepo(t)

	mock.ExpectGetDel("refresh:known").SetVal("1")
	mock.ExpectGetDel("refresh:gone").RedisNil()

	taken, err := repo.TakeRefreshToken(context.Background(), "known")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.TakeRefreshToken(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.NoError(t, mock.ExpectationsWereMet())
}
