package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/lib/logger/sl"
	"movie_catalog/internal/repository"
	"movie_catalog/internal/storage"
	"movie_catalog/internal/transport/http/dto"

	"github.com/google/uuid"
)

var ErrMovieNotFound = errors.New("movie not found")

type MovieService struct {
	log  *slog.Logger
	repo repository.MovieRepository
}

func NewMovieService(log *slog.Logger, repo repository.MovieRepository) *MovieService {
	return &MovieService{
		log:  log,
		repo: repo,
	}
}

func (s *MovieService) CreateMovie(ctx context.Context, req dto.CreateMovieRequest) (models.Movie, error) {
	const op = "movie_service.CreateMovie"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	movie := models.Movie{
		ID:          uuid.New(),
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Studio:      req.Studio,
		RunningTime: req.RunningTime,
		Genre:       req.Genre,
		Director:    req.Director,
		Year:        req.Year,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.SaveMovie(ctx, movie)
	if err != nil {
		log.Error("failed to save movie", sl.Err(err))

		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("movie created", slog.String("movie_id", created.ID.String()))

	return created, nil
}

func (s *MovieService) ListMovies(ctx context.Context, page, limit int) ([]models.Movie, error) {
	const op = "movie_service.ListMovies"

	movies, err := s.repo.GetMovies(ctx, page, limit)
	if err != nil {
		s.log.Error("failed to list movies", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return movies, nil
}

func (s *MovieService) GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	const op = "movie_service.GetMovieByID"

	movie, err := s.repo.GetMovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return models.Movie{}, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		s.log.Error("failed to get movie", slog.String("op", op), sl.Err(err))

		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return movie, nil
}

// GetMoviesByGenre returns ErrMovieNotFound when no movie carries the genre.
func (s *MovieService) GetMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	const op = "movie_service.GetMoviesByGenre"

	movies, err := s.repo.GetMoviesByGenre(ctx, genre)
	if err != nil {
		s.log.Error("failed to get movies by genre", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
	}

	return movies, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, id uuid.UUID, req dto.UpdateMovieRequest) error {
	const op = "movie_service.UpdateMovie"

	movie := models.Movie{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Studio:      req.Studio,
		RunningTime: req.RunningTime,
		Genre:       req.Genre,
		Director:    req.Director,
		Year:        req.Year,
	}

	if err := s.repo.UpdateMovie(ctx, id, movie); err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		s.log.Error("failed to update movie", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	const op = "movie_service.DeleteMovie"

	if err := s.repo.DeleteMovie(ctx, id); err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		s.log.Error("failed to delete movie", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
