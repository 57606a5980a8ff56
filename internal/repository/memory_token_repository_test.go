package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenRepo_SaveHasTake(t *testing.T) {
	repo := NewMemoryTokenRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveRefreshToken(ctx, "token-1", time.Minute))

	ok, err := repo.HasRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasRefreshToken(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, ok)

	taken, err := repo.TakeRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, taken)

	// Gone after the take.
	ok, err = repo.HasRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, ok)

	taken, err = repo.TakeRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMemoryTokenRepo_TakeUnknown(t *testing.T) {
	repo := NewMemoryTokenRepo()

	taken, err := repo.TakeRefreshToken(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMemoryTokenRepo_ExpiredEntryStays(t *testing.T) {
	repo := NewMemoryTokenRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveRefreshToken(ctx, "short-lived", -time.Second))

	// The recorded expiry has passed but the entry is not swept.
	ok, err := repo.HasRefreshToken(ctx, "short-lived")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryTokenRepo_ConcurrentTake(t *testing.T) {
	repo := NewMemoryTokenRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveRefreshToken(ctx, "contested", time.Minute))

	const goroutines = 32

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok, err := repo.TakeRefreshToken(ctx, "contested")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// check-then-delete holds the lock for both steps, so exactly one
	// goroutine gets the token.
	assert.Equal(t, 1, taken)
	assert.Equal(t, 0, repo.Len())
}
