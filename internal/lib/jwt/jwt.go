package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the claim set carried by both access and refresh tokens:
// the principal id plus the registered issued-at/expiry claims.
type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens. Access and refresh tokens use
// separate secrets, so one kind never verifies as the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewCodec(accessSecret, refreshSecret string) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (c *Codec) NewAccessToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	return sign(userID, ttl, c.accessSecret)
}

func (c *Codec) NewRefreshToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	return sign(userID, ttl, c.refreshSecret)
}

func (c *Codec) ParseAccessToken(tokenString string) (*SessionClaims, error) {
	return parse(tokenString, c.accessSecret)
}

func (c *Codec) ParseRefreshToken(tokenString string) (*SessionClaims, error) {
	return parse(tokenString, c.refreshSecret)
}

func sign(userID uuid.UUID, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()

	// The jti keeps every issued token unique: iat/exp have second
	// resolution, so two tokens for one principal can otherwise collide
	// within a single clock tick.
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

func parse(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
