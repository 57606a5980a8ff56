package repository

import (
	"context"
	"time"

	"movie_catalog/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type MovieRepository interface {
	SaveMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	GetMovies(ctx context.Context, page, limit int) ([]models.Movie, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error)
	GetMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, movie models.Movie) error
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	SaveReview(ctx context.Context, review models.Review) (models.Review, error)
	GetReviewByID(ctx context.Context, id uuid.UUID) (models.Review, error)
	GetMovieReviews(ctx context.Context, movieID uuid.UUID, page, limit int) ([]models.ReviewWithRefs, error)
	UpdateReview(ctx context.Context, id uuid.UUID, rating int, text string) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

// TokenRepository is the active-refresh-token set. SaveRefreshToken registers
// a token, HasRefreshToken is a non-mutating membership check, and
// TakeRefreshToken removes the token and reports whether it was present.
// The remove-if-present is a single atomic step, so two concurrent takes of
// the same token can never both succeed.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, exp time.Duration) error
	HasRefreshToken(ctx context.Context, token string) (bool, error)
	TakeRefreshToken(ctx context.Context, token string) (bool, error)
}
