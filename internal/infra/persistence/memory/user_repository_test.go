package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usergate/internal/domain/entity"
	"usergate/internal/domain/repository"
)

func newAccount(login string) *entity.UserAccount {
	return &entity.UserAccount{
		Login:        login,
		PasswordHash: "$2a$10$hash",
		Email:        login + "@x.com",
		FirstName:    "First",
		LastName:     "Last",
	}
}

func TestUserRepository_InsertAssignsIDs(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)
	second, err := repo.Insert(ctx, newAccount("bob"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestUserRepository_InsertDuplicateLogin(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, newAccount("alice"))
	assert.ErrorIs(t, err, repository.ErrDuplicateLogin)

	// The failed insert must not have created a second row.
	found, err := repo.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ID)
}

func TestUserRepository_FindByLoginAbsent(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.FindByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)

	err = repo.Update(ctx, &entity.UserAccount{
		ID:        created.ID,
		Login:     "alice2",
		Email:     "new@x.com",
		FirstName: "Alice",
		LastName:  "B",
	})
	require.NoError(t, err)

	found, err := repo.FindByLogin(ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, found.PasswordHash)
	assert.Equal(t, "new@x.com", found.Email)

	// The old login no longer resolves.
	_, err = repo.FindByLogin(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateReplacesPassword(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)

	updated := newAccount("alice")
	updated.ID = created.ID
	updated.PasswordHash = "$2a$10$other"

	require.NoError(t, repo.Update(ctx, updated))

	found, err := repo.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$other", found.PasswordHash)
}

func TestUserRepository_UpdateMissingRow(t *testing.T) {
	repo := NewUserRepository()

	err := repo.Update(context.Background(), &entity.UserAccount{ID: 99, Login: "ghost"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateDuplicateLogin(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)
	bob, err := repo.Insert(ctx, newAccount("bob"))
	require.NoError(t, err)

	stolen := newAccount("alice")
	stolen.ID = bob.ID

	assert.ErrorIs(t, repo.Update(ctx, stolen), repository.ErrDuplicateLogin)
}

func TestUserRepository_DeleteByID(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	_, err = repo.FindByLogin(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, repo.DeleteByID(ctx, created.ID), repository.ErrUserNotFound)
}

func TestUserRepository_IDsAreNeverReused(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, first.ID))

	second, err := repo.Insert(ctx, newAccount("alice"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
