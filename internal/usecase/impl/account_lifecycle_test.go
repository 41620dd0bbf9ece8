package impl_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"usergate/config"
	domainerrors "usergate/internal/domain/errors"
	"usergate/internal/infra/auth"
	"usergate/internal/infra/persistence/memory"
	"usergate/internal/usecase"
	"usergate/internal/usecase/impl"
)

// newLifecycleService wires the account service against the in-memory store
// with real bcrypt and JWT implementations, so the tests below exercise the
// full account lifecycle end to end.
func newLifecycleService(t *testing.T) usecase.AccountUsecase {
	t.Helper()

	cfg := &config.Config{
		SecretKey: config.SecretKey{Session: "lifecycle-test-secret"},
		Auth: &config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			SessionTTL: time.Minute,
		},
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return impl.NewAccountService(memory.NewUserRepository(), auth.NewBcryptHasher(cfg), tokenService, logger)
}

func aliceRegistration() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Login:     "alice",
		Password:  "Secr3t!",
		Email:     "a@x.com",
		FirstName: "Alice",
		LastName:  "A",
	}
}

func TestLifecycle_RegisterThenAuthenticate(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	registered, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, registered.SessionToken)
	assert.Equal(t, "alice", registered.Identity.Login)

	loggedIn, err := svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "Secr3t!"})
	require.NoError(t, err)
	assert.Equal(t, registered.Identity, loggedIn.Identity)
}

func TestLifecycle_UpdateWithoutPasswordKeepsOldOne(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	registered, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)

	session := svc.ResumeSession(registered.Identity)
	updated, err := session.Update(ctx, &usecase.UpdateInput{
		Login:     "alice",
		Email:     "new@x.com",
		FirstName: "Alice",
		LastName:  "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)

	// The untouched password still authenticates.
	again, err := svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "Secr3t!"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", again.Identity.Email)
	assert.Equal(t, "B", again.Identity.LastName)
}

func TestLifecycle_PasswordChange(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	registered, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)

	_, err = svc.ResumeSession(registered.Identity).Update(ctx, &usecase.UpdateInput{
		Login:     "alice",
		Password:  "N3wPass!",
		Email:     "a@x.com",
		FirstName: "Alice",
		LastName:  "A",
	})
	require.NoError(t, err)

	_, err = svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "Secr3t!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "N3wPass!"})
	assert.NoError(t, err)
}

func TestLifecycle_SecondRegistrationWithSameLogin(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	_, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)

	input := aliceRegistration()
	input.Email = "other@x.com"

	_, err = svc.NewSession().Register(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrRegistrationFailed)
}

func TestLifecycle_DeleteThenAuthenticateFails(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	registered, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)

	session := svc.ResumeSession(registered.Identity)
	require.NoError(t, session.Delete(ctx))
	assert.Equal(t, usecase.Anonymous, session.State())

	_, err = svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "Secr3t!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLifecycle_LogoutLeavesAccountIntact(t *testing.T) {
	svc := newLifecycleService(t)
	ctx := context.Background()

	registered, err := svc.NewSession().Register(ctx, aliceRegistration())
	require.NoError(t, err)

	session := svc.ResumeSession(registered.Identity)
	require.NoError(t, session.Logout())

	_, err = svc.NewSession().Authenticate(ctx, &usecase.LoginInput{Login: "alice", Password: "Secr3t!"})
	assert.NoError(t, err)
}
