package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/lib/logger/sl"
	"movie_catalog/internal/storage"
	"movie_catalog/internal/transport/http/dto"
	"movie_catalog/internal/transport/http/dto/request"
	"movie_catalog/internal/transport/http/dto/response"

	moviesvc "movie_catalog/internal/services/movie_service"
	reviewsvc "movie_catalog/internal/services/review_service"
	tokensvc "movie_catalog/internal/services/token_service"
	usersvc "movie_catalog/internal/services/user_service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
}

type AuthService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyAccessToken(tokenString string) (uuid.UUID, error)
}

type MovieService interface {
	CreateMovie(ctx context.Context, req dto.CreateMovieRequest) (models.Movie, error)
	ListMovies(ctx context.Context, page, limit int) ([]models.Movie, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (models.Movie, error)
	GetMoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req dto.UpdateMovieRequest) error
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type ReviewService interface {
	CreateReview(ctx context.Context, authorID, movieID uuid.UUID, rating int, text string) (models.Review, error)
	ListMovieReviews(ctx context.Context, movieID uuid.UUID, page, limit int) ([]models.ReviewWithRefs, error)
	UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, rating int, text string) error
	DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error
}

type MediaService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, subPath string) (string, error)
}

type Routers struct {
	log           *slog.Logger
	UserService   UserService
	AuthService   AuthService
	MovieService  MovieService
	ReviewService ReviewService
	MediaService  MediaService
}

func NewRouter(log *slog.Logger, userService UserService, authService AuthService, movieService MovieService, reviewService ReviewService, mediaService MediaService) *Routers {
	return &Routers{
		log:           log,
		UserService:   userService,
		AuthService:   authService,
		MovieService:  movieService,
		ReviewService: reviewService,
		MediaService:  mediaService,
	}
}

// principalID extracts the verified user id stored by the auth middleware.
func principalID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user").(uuid.UUID)
	return id, ok
}

func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("missing login fields", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrMissingCredentials)
	}

	pair, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, response.ErrMissingCredentials)
		case errors.Is(err, usersvc.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("user_not_found", "User not found"))
		case errors.Is(err, usersvc.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		default:
			log.Error("login failed", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"user_id": userID,
		},
	})
}

func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.TokenRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.AuthService.RefreshTokens(c.Request().Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, tokensvc.ErrEmptyToken):
			return c.JSON(http.StatusBadRequest, response.ErrTokenRequired)
		case errors.Is(err, tokensvc.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, response.ErrInvalidToken)
		default:
			log.Error("failed to refresh tokens", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.TokenRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.AuthService.Logout(c.Request().Context(), req.Token); err != nil {
		switch {
		case errors.Is(err, tokensvc.ErrEmptyToken):
			return c.JSON(http.StatusBadRequest, response.ErrTokenRequired)
		case errors.Is(err, tokensvc.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, response.ErrInvalidToken)
		default:
			log.Error("failed to logout", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Successfully logged out",
	})
}

func (r *Routers) UploadProfileImage(c echo.Context) error {
	const op = "http.routers.UploadProfileImage"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("image")
	if err != nil {
		log.Warn("no file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"file_required",
			"No file uploaded, upload as form-data with key 'image'",
		))
	}

	imageURL, err := r.MediaService.UploadImage(c.Request().Context(), file, "profile_images")
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", err.Error()))
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("invalid_file_type", err.Error()))
		default:
			log.Error("failed to upload image", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status:  "success",
		Message: "File uploaded successfully",
		Data:    map[string]string{"image_url": imageURL},
	})
}

func (r *Routers) CreateMovie(c echo.Context) error {
	const op = "http.routers.CreateMovie"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateMovieRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"missing_fields",
			"Required fields: title, image_url, studio, running_time, director, year",
		))
	}

	movie, err := r.MovieService.CreateMovie(c.Request().Context(), req)
	if err != nil {
		log.Error("failed to create movie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusCreated, movie)
}

func (r *Routers) ListMovies(c echo.Context) error {
	const op = "http.routers.ListMovies"

	log := r.log.With(
		slog.String("op", op),
	)

	page, limit := paginationParams(c)

	movies, err := r.MovieService.ListMovies(c.Request().Context(), page, limit)
	if err != nil {
		log.Error("failed to list movies", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, movies)
}

func (r *Routers) GetMovie(c echo.Context) error {
	const op = "http.routers.GetMovie"

	log := r.log.With(
		slog.String("op", op),
	)

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid movie id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid movie ID format"))
	}

	movie, err := r.MovieService.GetMovieByID(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, moviesvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("movie_not_found", "Movie not found"))
		}

		log.Error("failed to get movie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, movie)
}

func (r *Routers) MoviesByGenre(c echo.Context) error {
	const op = "http.routers.MoviesByGenre"

	log := r.log.With(
		slog.String("op", op),
	)

	genre := c.Param("genre")
	if genre == "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("missing_genre", "Genre parameter is required"))
	}

	movies, err := r.MovieService.GetMoviesByGenre(c.Request().Context(), genre)
	if err != nil {
		if errors.Is(err, moviesvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails(
				"movies_not_found",
				"No movies found in the '"+genre+"' genre",
			))
		}

		log.Error("failed to get movies by genre", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, movies)
}

func (r *Routers) UpdateMovie(c echo.Context) error {
	const op = "http.routers.UpdateMovie"

	log := r.log.With(
		slog.String("op", op),
	)

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid movie id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid movie ID format"))
	}

	var req dto.UpdateMovieRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"missing_fields",
			"Required fields: title, studio, running_time, director, year",
		))
	}

	if err := r.MovieService.UpdateMovie(c.Request().Context(), movieID, req); err != nil {
		if errors.Is(err, moviesvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("movie_not_found", "Movie not found"))
		}

		log.Error("failed to update movie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Movie info updated",
	})
}

func (r *Routers) DeleteMovie(c echo.Context) error {
	const op = "http.routers.DeleteMovie"

	log := r.log.With(
		slog.String("op", op),
	)

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid movie id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid movie ID format"))
	}

	if err := r.MovieService.DeleteMovie(c.Request().Context(), movieID); err != nil {
		if errors.Is(err, moviesvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("movie_not_found", "Movie not found"))
		}

		log.Error("failed to delete movie", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Movie deleted",
	})
}

func (r *Routers) ListMovieReviews(c echo.Context) error {
	const op = "http.routers.ListMovieReviews"

	log := r.log.With(
		slog.String("op", op),
	)

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid movie id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid movie ID format"))
	}

	page, limit := paginationParams(c)

	reviews, err := r.ReviewService.ListMovieReviews(c.Request().Context(), movieID, page, limit)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("movie_not_found", "Movie not found"))
		}

		log.Error("failed to list reviews", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, reviews)
}

func (r *Routers) CreateReview(c echo.Context) error {
	const op = "http.routers.CreateReview"

	log := r.log.With(
		slog.String("op", op),
	)

	authorID, ok := principalID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("invalid_token", "Invalid Token"))
	}

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid movie id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid movie ID format"))
	}

	var req dto.ReviewRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("missing_fields", "Required rating and review"))
	}

	review, err := r.ReviewService.CreateReview(c.Request().Context(), authorID, movieID, req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("movie_not_found", "Movie not found"))
		}

		log.Error("failed to create review", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusCreated, review)
}

func (r *Routers) UpdateReview(c echo.Context) error {
	const op = "http.routers.UpdateReview"

	log := r.log.With(
		slog.String("op", op),
	)

	callerID, ok := principalID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("invalid_token", "Invalid Token"))
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid review id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid review ID format"))
	}

	var req dto.ReviewRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("missing_fields", "Required rating and review"))
	}

	if err := r.ReviewService.UpdateReview(c.Request().Context(), callerID, reviewID, req.Rating, req.Review); err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("review_not_found", "Review not found"))
		case errors.Is(err, reviewsvc.ErrNotOwner):
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "Unauthorized access"))
		default:
			log.Error("failed to update review", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Review updated",
	})
}

func (r *Routers) DeleteReview(c echo.Context) error {
	const op = "http.routers.DeleteReview"

	log := r.log.With(
		slog.String("op", op),
	)

	callerID, ok := principalID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("invalid_token", "Invalid Token"))
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid review id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "Invalid review ID format"))
	}

	if err := r.ReviewService.DeleteReview(c.Request().Context(), callerID, reviewID); err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("review_not_found", "Review not found"))
		case errors.Is(err, reviewsvc.ErrNotOwner):
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "Unauthorized access"))
		default:
			log.Error("failed to delete review", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
		}
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Review deleted",
	})
}

func paginationParams(c echo.Context) (page, limit int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 0 {
		page = 0
	}

	limit, err = strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	return page, limit
}
