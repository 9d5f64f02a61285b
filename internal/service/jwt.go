package service

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by every issued token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey string, ttl time.Duration) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// TTL is the lifetime stamped into every issued token.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID. The jti keeps tokens issued in the same
// second distinct.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("token subject must not be empty")
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id bound to token. Every failure is reported as
// ErrInvalidToken; the cause stays reachable through errors.Unwrap.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", apperrors.WrapError(apperrors.ErrInvalidToken, errors.New("token has no subject"))
	}
	return claims.UserID, nil
}
