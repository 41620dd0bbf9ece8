package service

import (
	"time"

	"usergate/internal/domain/entity"
)

// TokenService signs and validates the session tokens handed to the web layer.
// The token carries the full SessionIdentity projection so that a request can
// be authorized without a store round-trip: the caller re-supplies its identity
// on every request, the token is merely its transport.
type TokenService interface {
	// GenerateSessionToken signs a token embedding the identity snapshot.
	GenerateSessionToken(identity *entity.SessionIdentity) (string, error)

	// ValidateSessionToken verifies signature and expiry and rebuilds the
	// identity snapshot from the claims.
	ValidateSessionToken(token string) (*entity.SessionIdentity, error)

	// SessionTokenDuration returns the configured token time-to-live.
	SessionTokenDuration() time.Duration
}
