package app

import (
	"context"
	"fmt"
	"log/slog"

	"movie_catalog/internal/config"
	libjwt "movie_catalog/internal/lib/jwt"
	"movie_catalog/internal/repository"
	filestorage "movie_catalog/internal/storage/filestorage"
	redisapp "movie_catalog/internal/storage/redis"
	httprouters "movie_catalog/internal/transport/http"

	httpapp "movie_catalog/internal/app/http"
	mediasvc "movie_catalog/internal/services/media_service"
	moviesvc "movie_catalog/internal/services/movie_service"
	reviewsvc "movie_catalog/internal/services/review_service"
	tokensvc "movie_catalog/internal/services/token_service"
	usersvc "movie_catalog/internal/services/user_service"
)

type App struct {
	HTTPServer *httpapp.Server

	repo  *repository.Repository
	redis *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		tokenRepo   repository.TokenRepository
		redisClient *redisapp.Client
	)

	switch cfg.TokenStore {
	case "redis":
		redisClient = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(ctx); err != nil {
			return nil, fmt.Errorf("%s: redis unreachable: %w", op, err)
		}
		tokenRepo = repository.NewRedisTokenRepo(redisClient)
	default:
		tokenRepo = repository.NewMemoryTokenRepo()
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	codec := libjwt.NewCodec(cfg.Tokens.AccessSecret, cfg.Tokens.RefreshSecret)

	tokenService := tokensvc.NewTokenService(log, tokenRepo, codec, cfg.Tokens.AccessTTL, cfg.Tokens.RefreshTTL)
	userService := usersvc.NewUserService(log, repo.User, tokenService)
	movieService := moviesvc.NewMovieService(log, repo.Movie)
	reviewService := reviewsvc.NewReviewService(log, repo.Review, repo.Movie)
	mediaService := mediasvc.NewMediaService(log, fileStorage)

	routers := httprouters.NewRouter(log, userService, tokenService, movieService, reviewService, mediaService)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, cfg.FileStorage.BaseDir, routers)

	return &App{
		HTTPServer: server,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

func (a *App) Stop() {
	_ = a.HTTPServer.Stop()

	a.repo.Close()

	if a.redis != nil {
		a.redis.Close()
	}
}
