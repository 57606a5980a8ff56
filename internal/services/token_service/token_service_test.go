package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	libjwt "movie_catalog/internal/lib/jwt"
	"movie_catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, token string, exp time.Duration) error {
	args := m.Called(ctx, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) HasRefreshToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) TakeRefreshToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

var (
	testUserID = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	testCtx    = context.Background()
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo repository.TokenRepository) *TokenService {
	codec := libjwt.NewCodec("access-secret", "refresh-secret")
	return NewTokenService(discardLogger(), repo, codec, 20*time.Minute, 30*time.Minute)
}

func TestGenerateTokens_Success(t *testing.T) {
	repo := new(MockTokenRepository)
	service := newTestService(repo)

	repo.On("SaveRefreshToken", testCtx, mock.Anything, 30*time.Minute).
		Return(nil)

	tokens, err := service.GenerateTokens(testCtx, testUserID)

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	repo.AssertExpectations(t)

	// The access token must verify back to the same principal.
	id, err := service.VerifyAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id)
}

func TestGenerateTokens_RepoError(t *testing.T) {
	repo := new(MockTokenRepository)
	service := newTestService(repo)

	expectedErr := errors.New("storage error")
	repo.On("SaveRefreshToken", testCtx, mock.Anything, mock.Anything).
		Return(expectedErr)

	tokens, err := service.GenerateTokens(testCtx, testUserID)

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, tokens)
	repo.AssertExpectations(t)
}

func TestRefreshTokens_EmptyToken(t *testing.T) {
	service := newTestService(repository.NewMemoryTokenRepo())

	_, err := service.RefreshTokens(testCtx, "")

	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestRefreshTokens_UnknownToken(t *testing.T) {
	service := newTestService(repository.NewMemoryTokenRepo())

	_, err := service.RefreshTokens(testCtx, "garbage")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_Rotation(t *testing.T) {
	store := repository.NewMemoryTokenRepo()
	service := newTestService(store)

	tokens, err := service.GenerateTokens(testCtx, testUserID)
	require.NoError(t, err)

	newTokens, err := service.RefreshTokens(testCtx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)
	assert.NotEmpty(t, newTokens.RefreshToken)
	assert.NotEqual(t, tokens.RefreshToken, newTokens.RefreshToken)

	// Replaying the redeemed token must fail: rotation is one-shot.
	_, err = service.RefreshTokens(testCtx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated pair is bound to the same principal.
	id, err := service.VerifyAccessToken(newTokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id)
}

func TestRefreshTokens_ExpiredTokenStaysInSet(t *testing.T) {
	store := repository.NewMemoryTokenRepo()
	codec := libjwt.NewCodec("access-secret", "refresh-secret")
	service := NewTokenService(discardLogger(), store, codec, 20*time.Minute, -time.Minute)

	// Refresh TTL is negative, so the issued token is already expired but
	// still registered in the active set.
	tokens, err := service.GenerateTokens(testCtx, testUserID)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = service.RefreshTokens(testCtx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A failed refresh never mutates the active set.
	assert.Equal(t, 1, store.Len())
}

func TestRefreshTokens_StorageError(t *testing.T) {
	repo := new(MockTokenRepository)
	service := newTestService(repo)

	expectedErr := errors.New("storage error")
	repo.On("HasRefreshToken", testCtx, "some-token").
		Return(false, expectedErr)

	_, err := service.RefreshTokens(testCtx, "some-token")

	assert.ErrorIs(t, err, expectedErr)
	repo.AssertExpectations(t)
}

func TestRefreshTokens_Concurrent(t *testing.T) {
	store := repository.NewMemoryTokenRepo()
	service := newTestService(store)

	tokens, err := service.GenerateTokens(testCtx, testUserID)
	require.NoError(t, err)

	const goroutines = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := service.RefreshTokens(testCtx, tokens.RefreshToken)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, ErrInvalidToken)
				failed++
			}
		}()
	}

	wg.Wait()

	// Exactly one concurrent refresh wins; no double-spend.
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, goroutines-1, failed)
}

func TestLogout_EmptyToken(t *testing.T) {
	service := newTestService(repository.NewMemoryTokenRepo())

	err := service.Logout(testCtx, "")

	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestLogout_UnknownToken(t *testing.T) {
	service := newTestService(repository.NewMemoryTokenRepo())

	err := service.Logout(testCtx, "never-issued")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_OneShot(t *testing.T) {
	store := repository.NewMemoryTokenRepo()
	service := newTestService(store)

	tokens, err := service.GenerateTokens(testCtx, testUserID)
	require.NoError(t, err)

	require.NoError(t, service.Logout(testCtx, tokens.RefreshToken))

	// Revocation is one-shot: the second logout finds nothing.
	err = service.Logout(testCtx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ThenRefreshFails(t *testing.T) {
	store := repository.NewMemoryTokenRepo()
	service := newTestService(store)

	tokens, err := service.GenerateTokens(testCtx, testUserID)
	require.NoError(t, err)

	require.NoError(t, service.Logout(testCtx, tokens.RefreshToken))

	_, err = service.RefreshTokens(testCtx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Invalid(t *testing.T) {
	service := newTestService(repository.NewMemoryTokenRepo())

	_, err := service.VerifyAccessToken("garbage")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
