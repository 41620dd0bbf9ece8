// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"usergate/internal/domain/entity"
	domainerrors "usergate/internal/domain/errors"
	"usergate/internal/domain/repository"
	"usergate/internal/domain/service"
	"usergate/internal/errors"
	"usergate/internal/usecase"
)

// accountService holds the shared, stateless dependencies of account sessions.
type accountService struct {
	users        repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		users:        users,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// NewSession returns a fresh session in the Anonymous state.
func (srv *accountService) NewSession() usecase.AccountSession {
	return &accountSession{svc: srv, state: usecase.Anonymous}
}

// ResumeSession rebuilds an Authenticated session from the caller-supplied
// identity snapshot.
func (srv *accountService) ResumeSession(identity *entity.SessionIdentity) usecase.AccountSession {
	if identity == nil {
		return srv.NewSession()
	}

	snapshot := *identity

	return &accountSession{svc: srv, state: usecase.Authenticated, identity: &snapshot}
}

// accountSession is the per-caller state machine over {Anonymous, Authenticated}.
// It holds the single bound identity of one authenticated session and nothing
// else; the store remains the source of truth for persisted data.
type accountSession struct {
	svc      *accountService
	state    usecase.SessionState
	identity *entity.SessionIdentity
}

func (s *accountSession) State() usecase.SessionState {
	return s.state
}

func (s *accountSession) Identity() *entity.SessionIdentity {
	return s.identity
}

// Register validates the input, hashes the password and inserts the account.
// On success the session transitions to Authenticated, bound to the new ID.
func (s *accountSession) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := s.requireState(usecase.Anonymous, "register"); err != nil {
		return nil, err
	}

	if hasEmptyField(input.Login, input.Password, input.Email, input.FirstName, input.LastName) {
		return nil, domainerrors.ErrValidation.WrapMessage("registration rejected")
	}

	hash, err := s.svc.hasher.Hash(input.Password)
	if err != nil {
		s.svc.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	created, err := s.svc.users.Insert(ctx, &entity.UserAccount{
		Login:        input.Login,
		PasswordHash: hash,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return nil, domainerrors.ErrRegistrationFailed.WrapMessage("registration failed")
		}
		s.svc.logger.Error("Failed to insert user during registration", "login", input.Login, "error", err)

		return nil, storeError(err, "failed to insert user")
	}

	s.bind(entity.NewSessionIdentity(created))
	s.svc.logger.Info("User registered", "userID", created.ID, "login", created.Login)

	return s.authOutput()
}

// Authenticate looks the login up and checks the password. Absent login and
// wrong password produce the same error so callers cannot enumerate accounts.
func (s *accountSession) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := s.requireState(usecase.Anonymous, "authenticate"); err != nil {
		return nil, err
	}

	if hasEmptyField(input.Login, input.Password) {
		return nil, domainerrors.ErrValidation.WrapMessage("authentication rejected")
	}

	record, err := s.svc.users.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		s.svc.logger.Error("Failed to look up user during login", "error", err)

		return nil, storeError(err, "failed to find user by login")
	}

	if !s.svc.hasher.Check(input.Password, record.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	s.bind(entity.NewSessionIdentity(record))
	s.svc.logger.Debug("User logged in", "userID", record.ID)

	return s.authOutput()
}

// Update rewrites the bound account's profile. An empty password leaves the
// stored hash unchanged; a non-empty one is hashed before the write.
func (s *accountSession) Update(ctx context.Context, input *usecase.UpdateInput) (*entity.SessionIdentity, error) {
	if err := s.requireState(usecase.Authenticated, "update"); err != nil {
		return nil, err
	}

	if hasEmptyField(input.Login, input.Email, input.FirstName, input.LastName) {
		return nil, domainerrors.ErrValidation.WrapMessage("update rejected")
	}

	var hash string
	if input.Password != "" {
		var err error
		if hash, err = s.svc.hasher.Hash(input.Password); err != nil {
			s.svc.logger.Error("Failed to hash password during update", "error", err)

			return nil, errors.Wrap(err, "failed to hash password during update")
		}
	}

	err := s.svc.users.Update(ctx, &entity.UserAccount{
		ID:           s.identity.ID,
		Login:        input.Login,
		PasswordHash: hash,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUpdateFailed.WrapMessage("account update failed")
		case errors.Is(err, repository.ErrDuplicateLogin):
			return nil, domainerrors.ErrRegistrationFailed.WrapMessage("login already taken")
		}
		s.svc.logger.Error("Failed to update user", "userID", s.identity.ID, "error", err)

		return nil, storeError(err, "failed to update user")
	}

	// Overwrite the bound snapshot with the persisted values.
	s.identity.Login = input.Login
	s.identity.Email = input.Email
	s.identity.FirstName = input.FirstName
	s.identity.LastName = input.LastName

	snapshot := *s.identity
	s.svc.logger.Info("User profile updated", "userID", s.identity.ID)

	return &snapshot, nil
}

// Logout discards the bound identity. No store interaction.
func (s *accountSession) Logout() error {
	if err := s.requireState(usecase.Authenticated, "logout"); err != nil {
		return err
	}

	s.svc.logger.Debug("User logged out", "userID", s.identity.ID)
	s.unbind()

	return nil
}

// Delete removes the bound account and drops back to Anonymous.
func (s *accountSession) Delete(ctx context.Context) error {
	if err := s.requireState(usecase.Authenticated, "delete"); err != nil {
		return err
	}

	if err := s.svc.users.DeleteByID(ctx, s.identity.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUpdateFailed.WrapMessage("account deletion failed")
		}
		s.svc.logger.Error("Failed to delete user", "userID", s.identity.ID, "error", err)

		return storeError(err, "failed to delete user")
	}

	s.svc.logger.Info("User account deleted", "userID", s.identity.ID)
	s.unbind()

	return nil
}

// requireState guards every transition: an operation invoked from the wrong
// state is a contract violation, not a runtime fault.
func (s *accountSession) requireState(want usecase.SessionState, op string) error {
	if s.state != want {
		return domainerrors.ErrIllegalState.
			WithDetails(op + " requires an " + want.String() + " session, current state is " + s.state.String())
	}

	return nil
}

func (s *accountSession) bind(identity *entity.SessionIdentity) {
	s.identity = identity
	s.state = usecase.Authenticated
}

func (s *accountSession) unbind() {
	s.identity = nil
	s.state = usecase.Anonymous
}

// authOutput packages the bound identity with a freshly signed session token.
func (s *accountSession) authOutput() (*usecase.AuthOutput, error) {
	token, err := s.svc.tokenService.GenerateSessionToken(s.identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	snapshot := *s.identity

	return &usecase.AuthOutput{
		Identity:     &snapshot,
		SessionToken: token,
		ExpiresIn:    int64(s.svc.tokenService.SessionTokenDuration().Seconds()),
	}, nil
}

// storeError maps a repository failure to the generic "try again" error while
// keeping the cause in the chain for the logs.
func storeError(err error, message string) error {
	return errors.Wrap(errors.Join(domainerrors.ErrStoreUnavailable, err), message)
}

// hasEmptyField reports whether any required field is empty after trimming.
func hasEmptyField(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}

	return false
}
