package repository

import (
	"context"
	"errors"
	"fmt"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ReviewRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReviewRepo) SaveReview(ctx context.Context, review models.Review) (models.Review, error) {
	const op = "repository.review_repository.SaveReview"

	query, args, err := r.sb.Insert("reviews").
		Columns("id", "author_id", "movie_id", "rating", "review", "created_at").
		Values(review.ID, review.AuthorID, review.MovieID, review.Rating, review.Review, review.CreatedAt).
		ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (r *ReviewRepo) GetReviewByID(ctx context.Context, id uuid.UUID) (models.Review, error) {
	const op = "repository.review_repository.GetReviewByID"

	query, args, err := r.sb.Select("id", "author_id", "movie_id", "rating", "review", "created_at").
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var rev models.Review
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&rev.ID, &rev.AuthorID, &rev.MovieID, &rev.Rating, &rev.Review, &rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Review{}, fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
		}

		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return rev, nil
}

func (r *ReviewRepo) GetMovieReviews(ctx context.Context, movieID uuid.UUID, page, limit int) ([]models.ReviewWithRefs, error) {
	const op = "repository.review_repository.GetMovieReviews"

	builder := r.sb.Select(
		"r.id", "r.author_id", "r.movie_id", "r.rating", "r.review", "r.created_at",
		"u.name AS author_name", "m.title AS movie_title",
	).
		From("reviews r").
		Join("users u ON u.id = r.author_id").
		Join("movies m ON m.id = r.movie_id").
		Where(sq.Eq{"r.movie_id": movieID}).
		OrderBy("r.created_at DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit)).Offset(uint64(page * limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reviews []models.ReviewWithRefs

	for rows.Next() {
		var rev models.ReviewWithRefs
		err := rows.Scan(
			&rev.ID, &rev.AuthorID, &rev.MovieID, &rev.Rating, &rev.Review, &rev.CreatedAt,
			&rev.AuthorName, &rev.MovieTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: can't scan row: %w", op, err)
		}

		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}

func (r *ReviewRepo) UpdateReview(ctx context.Context, id uuid.UUID, rating int, text string) error {
	const op = "repository.review_repository.UpdateReview"

	query, args, err := r.sb.Update("reviews").
		Set("rating", rating).
		Set("review", text).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
	}

	return nil
}

func (r *ReviewRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	const op = "repository.review_repository.DeleteReview"

	query, args, err := r.sb.Delete("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
	}

	return nil
}
