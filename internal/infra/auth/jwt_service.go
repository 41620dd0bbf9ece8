// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"usergate/config"
	"usergate/internal/domain/entity"
	"usergate/internal/domain/service"
	"usergate/internal/errors"
)

const defaultSessionTTL = time.Hour * 24

// identityClaims embeds the full SessionIdentity projection in the token so
// that authorizing a request needs no store round-trip.
type identityClaims struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session token secret must be provided")
	}

	ttl := defaultSessionTTL
	if cfg.Auth != nil && cfg.Auth.SessionTTL > 0 {
		ttl = cfg.Auth.SessionTTL
	}

	return &jwtService{
		secret:     []byte(cfg.SecretKey.Session),
		sessionTTL: ttl,
	}, nil
}

// GenerateSessionToken signs a token carrying the identity snapshot.
func (s *jwtService) GenerateSessionToken(identity *entity.SessionIdentity) (string, error) {
	if identity == nil {
		return "", errors.New("cannot issue a session token without an identity")
	}

	now := time.Now()
	claims := &identityClaims{
		Login:     identity.Login,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// ValidateSessionToken verifies the signature and expiry of a session token
// and rebuilds the SessionIdentity from its claims.
func (s *jwtService) ValidateSessionToken(tokenString string) (*entity.SessionIdentity, error) {
	claims := &identityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject in session token")
	}

	return &entity.SessionIdentity{
		ID:        id,
		Login:     claims.Login,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}

// SessionTokenDuration returns the configured duration for session tokens.
func (s *jwtService) SessionTokenDuration() time.Duration {
	return s.sessionTTL
}
