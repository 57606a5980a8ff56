package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/storage"
	"movie_catalog/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) SaveMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMovies(ctx context.Context, page, limit int) ([]models.Movie, error) {
	args := m.Called(ctx, page, limit)
	if movies := args.Get(0); movies != nil {
		return movies.([]models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	args := m.Called(ctx, genre)
	if movies := args.Get(0); movies != nil {
		return movies.([]models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) UpdateMovie(ctx context.Context, id uuid.UUID, movie models.Movie) error {
	args := m.Called(ctx, id, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var testCtx = context.Background()

func newTestService(repo *MockMovieRepository) *MovieService {
	return NewMovieService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestCreateMovie_Success(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	req := dto.CreateMovieRequest{
		Title:       "Spirited Away",
		ImageURL:    "http://localhost:8082/uploads/movies/spirited-away.png",
		Studio:      "Studio Ghibli",
		RunningTime: 125,
		Genre:       []string{"animation", "fantasy"},
		Director:    "Hayao Miyazaki",
		Year:        2001,
	}

	repo.On("SaveMovie", testCtx, mock.MatchedBy(func(m models.Movie) bool {
		return m.Title == req.Title &&
			m.Year == req.Year &&
			m.ID != uuid.Nil &&
			!m.CreatedAt.IsZero()
	})).Return(models.Movie{ID: uuid.New(), Title: req.Title}, nil)

	created, err := service.CreateMovie(testCtx, req)

	require.NoError(t, err)
	assert.Equal(t, req.Title, created.Title)
	repo.AssertExpectations(t)
}

func TestCreateMovie_RepoError(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	expectedErr := errors.New("connection refused")
	repo.On("SaveMovie", testCtx, mock.Anything).
		Return(models.Movie{}, expectedErr)

	_, err := service.CreateMovie(testCtx, dto.CreateMovieRequest{Title: "Whatever"})

	assert.ErrorIs(t, err, expectedErr)
}

func TestListMovies(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	expected := []models.Movie{
		{ID: uuid.New(), Title: "Akira", Year: 1988},
		{ID: uuid.New(), Title: "Metropolis", Year: 1927},
	}
	repo.On("GetMovies", testCtx, 1, 20).Return(expected, nil)

	movies, err := service.ListMovies(testCtx, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, expected, movies)
}

func TestGetMovieByID_NotFound(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	id := uuid.New()
	repo.On("GetMovieByID", testCtx, id).
		Return(models.Movie{}, storage.ErrMovieNotFound)

	_, err := service.GetMovieByID(testCtx, id)

	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestGetMoviesByGenre_Empty(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	repo.On("GetMoviesByGenre", testCtx, "western").
		Return([]models.Movie{}, nil)

	_, err := service.GetMoviesByGenre(testCtx, "western")

	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestGetMoviesByGenre_Found(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	expected := []models.Movie{{ID: uuid.New(), Title: "Akira", Genre: []string{"animation"}}}
	repo.On("GetMoviesByGenre", testCtx, "animation").Return(expected, nil)

	movies, err := service.GetMoviesByGenre(testCtx, "animation")

	require.NoError(t, err)
	assert.Equal(t, expected, movies)
}

func TestUpdateMovie_NotFound(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	id := uuid.New()
	repo.On("UpdateMovie", testCtx, id, mock.Anything).
		Return(storage.ErrMovieNotFound)

	err := service.UpdateMovie(testCtx, id, dto.UpdateMovieRequest{Title: "Renamed"})

	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestDeleteMovie(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	id := uuid.New()
	repo.On("DeleteMovie", testCtx, id).Return(nil)

	require.NoError(t, service.DeleteMovie(testCtx, id))
	repo.AssertExpectations(t)
}

func TestDeleteMovie_NotFound(t *testing.T) {
	repo := new(MockMovieRepository)
	service := newTestService(repo)

	id := uuid.New()
	repo.On("DeleteMovie", testCtx, id).Return(storage.ErrMovieNotFound)

	assert.ErrorIs(t, service.DeleteMovie(testCtx, id), ErrMovieNotFound)
}
