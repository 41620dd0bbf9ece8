// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"usergate/internal/domain/entity"
)

// SessionState enumerates the two identity states of an account session.
type SessionState int

const (
	// Anonymous means no identity is bound: only Register and Authenticate
	// are legal.
	Anonymous SessionState = iota

	// Authenticated means the session is bound to exactly one account ID:
	// only Update, Logout and Delete are legal.
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// All five fields are required.
type RegisterInput struct {
	Login     string `json:"login" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateInput defines the data for a profile update. Password is optional:
// empty means "keep the current password".
type UpdateInput struct {
	Login     string `json:"login" validate:"required"`
	Password  string `json:"password"`
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is returned by successful register and authenticate calls:
// the identity snapshot plus the signed session token transporting it.
// ExpiresIn is the token lifetime in seconds.
type AuthOutput struct {
	Identity     *entity.SessionIdentity `json:"identity"`
	SessionToken string                  `json:"session_token"`
	ExpiresIn    int64                   `json:"expires_in"`
}

// AccountSession is one caller-session's view of the account service: a
// state machine over {Anonymous, Authenticated}. A session handles one
// request at a time and is never shared between callers. Every operation
// invoked from the wrong state fails with the illegal-state error.
type AccountSession interface {
	// State reports the current identity state.
	State() SessionState

	// Identity returns the bound identity snapshot, nil while anonymous.
	Identity() *entity.SessionIdentity

	// Register creates a new account and binds the session to it.
	// Anonymous -> Authenticated.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Authenticate verifies credentials and binds the session to the account.
	// Anonymous -> Authenticated. Unknown login and wrong password are
	// deliberately indistinguishable.
	Authenticate(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Update rewrites the bound account's profile and returns the refreshed
	// identity snapshot. Stays Authenticated.
	Update(ctx context.Context, input *UpdateInput) (*entity.SessionIdentity, error)

	// Logout discards the bound identity. Authenticated -> Anonymous.
	// Never touches the store.
	Logout() error

	// Delete removes the bound account. Authenticated -> Anonymous.
	Delete(ctx context.Context) error
}

// AccountUsecase issues account sessions. The web layer creates one session
// per request: a fresh anonymous one for register/login, a resumed one from
// the caller-supplied identity for profile operations.
type AccountUsecase interface {
	// NewSession returns a session in the Anonymous state.
	NewSession() AccountSession

	// ResumeSession returns a session bound to the given identity, as
	// re-supplied by the caller. The identity is not read back from the
	// store; the caller owns it.
	ResumeSession(identity *entity.SessionIdentity) AccountSession
}
