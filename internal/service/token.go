package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/satriobayu/authsvc/internal/config"
)

var (
	ErrMisconfigured = errors.New("auth config invalid")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
)

// TokenError is a verification failure. Reason is one of ErrTokenExpired,
// ErrTokenMalformed or ErrTokenSignature; the message is the underlying
// verifier's text.
type TokenError struct {
	Reason error
	cause  error
}

func (e *TokenError) Error() string { return e.cause.Error() }

func (e *TokenError) Unwrap() error { return e.Reason }

// TokenService mints and verifies HS256 access and refresh tokens. Secrets are
// fixed at construction.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required", ErrMisconfigured)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrMisconfigured)
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_TTL must be positive", ErrMisconfigured)
	}
	if cfg.RefreshTokenTTL < 0 {
		return nil, fmt.Errorf("%w: REFRESH_TOKEN_TTL must not be negative", ErrMisconfigured)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		now:           time.Now,
	}, nil
}

func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs with the refresh secret. With a zero refresh TTL the
// token carries no exp claim and stays valid indefinitely.
func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) VerifyAccessToken(token string) (uuid.UUID, error) {
	return s.verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (uuid.UUID, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) issue(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID.String(),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) verify(tokenStr string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		// Only the canonical encoding verifies, so a revoked token cannot be
		// replayed with different base64 padding bits.
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, &TokenError{Reason: ErrTokenMalformed, cause: fmt.Errorf("token has invalid subject")}
	}
	return userID, nil
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Reason: ErrTokenExpired, cause: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Reason: ErrTokenSignature, cause: err}
	default:
		return &TokenError{Reason: ErrTokenMalformed, cause: err}
	}
}
