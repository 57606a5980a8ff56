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

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrMovieNotFound  = errors.New("movie not found")
	ErrNotOwner       = errors.New("unauthorized access")
)

type ReviewService struct {
	log     *slog.Logger
	reviews repository.ReviewRepository
	movies  repository.MovieRepository
}

func NewReviewService(log *slog.Logger, reviews repository.ReviewRepository, movies repository.MovieRepository) *ReviewService {
	return &ReviewService{
		log:     log,
		reviews: reviews,
		movies:  movies,
	}
}

// CreateReview stores a review authored by the principal from the verified
// access token. The movie must exist.
func (s *ReviewService) CreateReview(ctx context.Context, authorID, movieID uuid.UUID, rating int, text string) (models.Review, error) {
	const op = "review_service.CreateReview"

	log := s.log.With(
		slog.String("op", op),
		slog.String("movie_id", movieID.String()),
	)

	if _, err := s.movies.GetMovieByID(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return models.Review{}, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		log.Error("failed to get movie", sl.Err(err))

		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	review := models.Review{
		ID:        uuid.New(),
		AuthorID:  authorID,
		MovieID:   movieID,
		Rating:    rating,
		Review:    text,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.reviews.SaveReview(ctx, review)
	if err != nil {
		log.Error("failed to save review", sl.Err(err))

		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("review created", slog.String("review_id", created.ID.String()))

	return created, nil
}

func (s *ReviewService) ListMovieReviews(ctx context.Context, movieID uuid.UUID, page, limit int) ([]models.ReviewWithRefs, error) {
	const op = "review_service.ListMovieReviews"

	if _, err := s.movies.GetMovieByID(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.reviews.GetMovieReviews(ctx, movieID, page, limit)
	if err != nil {
		s.log.Error("failed to list reviews", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}

// UpdateReview rejects callers other than the review's author.
func (s *ReviewService) UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, rating int, text string) error {
	const op = "review_service.UpdateReview"

	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return fmt.Errorf("%s: %w", op, ErrReviewNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if review.AuthorID != callerID {
		return fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	if err := s.reviews.UpdateReview(ctx, reviewID, rating, text); err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return fmt.Errorf("%s: %w", op, ErrReviewNotFound)
		}

		s.log.Error("failed to update review", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error {
	const op = "review_service.DeleteReview"

	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return fmt.Errorf("%s: %w", op, ErrReviewNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if review.AuthorID != callerID {
		return fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return fmt.Errorf("%s: %w", op, ErrReviewNotFound)
		}

		s.log.Error("failed to delete review", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
