package suite

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"movie_catalog/internal/domain/models"
	libjwt "movie_catalog/internal/lib/jwt"
	"movie_catalog/internal/repository"
	"movie_catalog/internal/storage"

	httpapp "movie_catalog/internal/app/http"
	tokensvc "movie_catalog/internal/services/token_service"
	usersvc "movie_catalog/internal/services/user_service"
	httprouters "movie_catalog/internal/transport/http"

	"github.com/google/uuid"
)

// memoryUserRepo backs the suite so the full login/refresh/logout flow runs
// without a database.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]models.User)}
}

func (r *memoryUserRepo) SaveUser(_ context.Context, user models.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return uuid.Nil, storage.ErrUserExists
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	r.users[user.Email] = user

	return user.ID, nil
}

func (r *memoryUserRepo) UserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return user, nil
}

type Suite struct {
	*testing.T
	Server       *httpapp.Server
	TokenService *tokensvc.TokenService
	TokenStore   *repository.MemoryTokenRepo
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Hour)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenStore := repository.NewMemoryTokenRepo()
	codec := libjwt.NewCodec("test-access-secret", "test-refresh-secret")
	tokenService := tokensvc.NewTokenService(log, tokenStore, codec, 20*time.Minute, 30*time.Minute)
	userService := usersvc.NewUserService(log, newMemoryUserRepo(), tokenService)

	routers := httprouters.NewRouter(log, userService, tokenService, nil, nil, nil)

	server := httpapp.New(log, "localhost", "0", t.TempDir(), routers)
	server.BuildRouters()

	t.Cleanup(func() {
		t.Helper()
		cancelCtx()
	})

	return ctx, &Suite{
		T:            t,
		Server:       server,
		TokenService: tokenService,
		TokenStore:   tokenStore,
	}
}
