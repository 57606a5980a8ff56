package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"movie_catalog/internal/domain/models"
	libjwt "movie_catalog/internal/lib/jwt"
	"movie_catalog/internal/lib/logger/sl"
	"movie_catalog/internal/metrics"
	"movie_catalog/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyToken = errors.New("refresh token is required")

	// ErrInvalidToken covers forged, previously revoked, already redeemed and
	// expired refresh tokens alike. The cases are deliberately not
	// distinguishable from the outside.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenService issues, rotates and revokes access/refresh token pairs. The
// active refresh-token set lives in the injected repository; the service
// itself holds no token state.
type TokenService struct {
	log        *slog.Logger
	repo       repository.TokenRepository
	codec      *libjwt.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(log *slog.Logger, repo repository.TokenRepository, codec *libjwt.Codec, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		log:        log,
		repo:       repo,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateTokens issues a fresh access/refresh pair for an already verified
// principal and registers the refresh token in the active set.
func (s *TokenService) GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	const op = "token_service.GenerateTokens"

	accessToken, err := s.codec.NewAccessToken(userID, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.codec.NewRefreshToken(userID, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.SessionsIssued.Inc()

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens redeems a refresh token for a new pair. Rotation is one-shot:
// the presented token leaves the active set and is never usable again. Under
// concurrent refreshes of the same token exactly one caller wins; the rest
// get ErrInvalidToken.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "token_service.RefreshTokens"

	log := s.log.With(slog.String("op", op))

	if refreshToken == "" {
		return nil, ErrEmptyToken
	}

	exists, err := s.repo.HasRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Error("failed to check active set", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("refresh token not in active set")

		return nil, ErrInvalidToken
	}

	claims, err := s.codec.ParseRefreshToken(refreshToken)
	if err != nil {
		// Expired or tampered. The entry stays in the set; only an explicit
		// logout or redeem removes entries.
		log.Warn("refresh token failed verification", sl.Err(err))

		return nil, ErrInvalidToken
	}

	// The take is the decisive step: a concurrent refresh that got past the
	// checks above loses here.
	taken, err := s.repo.TakeRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Error("failed to take refresh token", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !taken {
		log.Warn("refresh token already redeemed")

		return nil, ErrInvalidToken
	}

	log.Info("rotating refresh token", slog.String("user_id", claims.UserID.String()))

	return s.GenerateTokens(ctx, claims.UserID)
}

// Logout revokes a refresh token. Revocation is one-shot: a second logout
// with the same token fails because the token is no longer present.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	const op = "token_service.Logout"

	log := s.log.With(slog.String("op", op))

	if refreshToken == "" {
		return ErrEmptyToken
	}

	taken, err := s.repo.TakeRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Error("failed to take refresh token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}
	if !taken {
		log.Warn("logout with unknown or already revoked token")

		return ErrInvalidToken
	}

	metrics.SessionsRevoked.Inc()

	log.Info("refresh token revoked")

	return nil
}

// VerifyAccessToken checks an access token and extracts the principal id.
// Used by the request-authorization middleware.
func (s *TokenService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.codec.ParseAccessToken(tokenString)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}
