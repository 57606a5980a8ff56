package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"movie_catalog/internal/domain/models"
	"movie_catalog/internal/lib/logger/sl"
	"movie_catalog/internal/repository"
	"movie_catalog/internal/storage"
	"movie_catalog/internal/transport/http/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
)

// SessionIssuer hands out token pairs for a verified principal.
type SessionIssuer interface {
	GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error)
}

type UserService struct {
	log      *slog.Logger
	repo     repository.UserRepository
	sessions SessionIssuer
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, sessions SessionIssuer) *UserService {
	return &UserService{
		log:      log,
		repo:     repo,
		sessions: sessions,
	}
}

// Login verifies the credentials and issues a token pair. The active set is
// only touched after the password check passes.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "user_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	log.Info("attempting to login user")

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.sessions.GenerateTokens(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return pair, nil
}

func (s *UserService) RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error) {
	const op = "user_service.RegisterNewUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", input.Email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveUser(ctx, *input.ToDomain(passHash))
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))

	return id, nil
}
