package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/garibaycarlos/core-code-camp/internal/config"
	"github.com/garibaycarlos/core-code-camp/internal/platform/logger"
)

// tokenType marks tokens minted by this service.
const tokenType = "operator"

// SettingsFunc returns the auth settings in effect. It is called on every
// operation so a configuration reload rotates the secret.
type SettingsFunc func() config.AuthConfig

// hmacJWTService implements TokenService with HMAC-SHA256 signing.
type hmacJWTService struct {
	settings  SettingsFunc
	timeFunc  func() time.Time
	clockSkew time.Duration
}

type operatorClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacJWTService)(nil)

// NewJWTService creates a TokenService reading its secret and token
// lifetime from settings.
func NewJWTService(settings SettingsFunc) TokenService {
	return newJWTService(settings, time.Now)
}

func newJWTService(settings SettingsFunc, now func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		settings:  settings,
		timeFunc:  now,
		clockSkew: 2 * time.Minute,
	}
}

// GenerateToken creates a signed operator token.
func (s *hmacJWTService) GenerateToken(ctx context.Context, subject string) (string, error) {
	log := logger.FromContext(ctx)
	cfg := s.settings()
	if !cfg.Enabled() {
		return "", ErrAuthDisabled
	}

	now := s.timeFunc()
	claims := operatorClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.TokenLifetimeMinutes) * time.Minute)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		log.Error("failed to sign operator token",
			"error", err,
			"subject", subject,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign operator token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// ValidateToken validates an operator token and returns its claims.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	cfg := s.settings()
	if !cfg.Enabled() {
		return nil, ErrAuthDisabled
	}
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&operatorClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("operator token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("operator token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("operator token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*operatorClaims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		log.Debug("operator token validation failed: unexpected claims")
		return nil, ErrInvalidToken
	}

	log.Debug("operator token validated",
		"subject", claims.Subject,
		"token_id", claims.ID)

	return &Claims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
