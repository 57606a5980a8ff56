package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MovieRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMovieRepository(db *pgxpool.Pool) *MovieRepo {
	return &MovieRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var movieColumns = []string{"id", "title", "image_url", "studio", "running_time", "genre", "director", "year", "created_at"}

func (r *MovieRepo) SaveMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	const op = "repository.movie_repository.SaveMovie"

	now := time.Now().UTC()

	query, args, err := r.sb.Insert("movies").
		Columns("id", "title", "image_url", "studio", "running_time", "genre", "director", "year", "created_at").
		Values(movie.ID, movie.Title, movie.ImageURL, movie.Studio, movie.RunningTime, movie.Genre, movie.Director, movie.Year, now).
		ToSql()
	if err != nil {
		return models.Movie{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	movie.CreatedAt = now

	return movie, nil
}

func (r *MovieRepo) GetMovies(ctx context.Context, page, limit int) ([]models.Movie, error) {
	const op = "repository.movie_repository.GetMovies"

	builder := r.sb.Select(movieColumns...).
		From("movies").
		OrderBy("year DESC")

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

	return scanMovies(rows, op)
}

func (r *MovieRepo) GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	const op = "repository.movie_repository.GetMovieByID"

	query, args, err := r.sb.Select(movieColumns...).
		From("movies").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Movie{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var m models.Movie
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.Title, &m.ImageURL, &m.Studio, &m.RunningTime, &m.Genre, &m.Director, &m.Year, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Movie{}, fmt.Errorf("%s: %w", op, storage.ErrMovieNotFound)
		}

		return models.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (r *MovieRepo) GetMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	const op = "repository.movie_repository.GetMoviesByGenre"

	query, args, err := r.sb.Select(movieColumns...).
		From("movies").
		Where(sq.Expr("? = ANY(genre)", genre)).
		OrderBy("year DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanMovies(rows, op)
}

func (r *MovieRepo) UpdateMovie(ctx context.Context, id uuid.UUID, movie models.Movie) error {
	const op = "repository.movie_repository.UpdateMovie"

	builder := r.sb.Update("movies").
		Set("title", movie.Title).
		Set("studio", movie.Studio).
		Set("running_time", movie.RunningTime).
		Set("genre", movie.Genre).
		Set("director", movie.Director).
		Set("year", movie.Year).
		Where(sq.Eq{"id": id})

	if movie.ImageURL != "" {
		builder = builder.Set("image_url", movie.ImageURL)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMovieNotFound)
	}

	return nil
}

func (r *MovieRepo) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	const op = "repository.movie_repository.DeleteMovie"

	query, args, err := r.sb.Delete("movies").
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
		return fmt.Errorf("%s: %w", op, storage.ErrMovieNotFound)
	}

	return nil
}

func scanMovies(rows pgx.Rows, op string) ([]models.Movie, error) {
	var movies []models.Movie

	for rows.Next() {
		var m models.Movie
		err := rows.Scan(&m.ID, &m.Title, &m.ImageURL, &m.Studio, &m.RunningTime, &m.Genre, &m.Director, &m.Year, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: can't scan row: %w", op, err)
		}

		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return movies, nil
}
