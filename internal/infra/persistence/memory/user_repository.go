// Package memory provides an in-memory UserRepository used by tests and
// store-less local runs. It honours the same contract as the PostgreSQL
// implementation, including atomic login-uniqueness on insert.
package memory

import (
	"context"
	"sync"

	"usergate/internal/domain/entity"
	"usergate/internal/domain/repository"
)

type userRepository struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]entity.UserAccount
	byLogin map[string]int64
}

// NewUserRepository returns an empty in-memory account store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		nextID:  1,
		byID:    make(map[int64]entity.UserAccount),
		byLogin: make(map[string]int64),
	}
}

func (repo *userRepository) Insert(_ context.Context, user *entity.UserAccount) (*entity.UserAccount, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	// Uniqueness check and insertion happen under one lock, mirroring the
	// unique-constraint atomicity of the SQL store.
	if _, taken := repo.byLogin[user.Login]; taken {
		return nil, repository.ErrDuplicateLogin
	}

	stored := *user
	stored.ID = repo.nextID
	repo.nextID++ // IDs are never reused, even after deletion.

	repo.byID[stored.ID] = stored
	repo.byLogin[stored.Login] = stored.ID

	out := stored

	return &out, nil
}

func (repo *userRepository) FindByLogin(_ context.Context, login string) (*entity.UserAccount, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id, ok := repo.byLogin[login]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user := repo.byID[id]

	return &user, nil
}

func (repo *userRepository) Update(_ context.Context, user *entity.UserAccount) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	current, ok := repo.byID[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if other, taken := repo.byLogin[user.Login]; taken && other != user.ID {
		return repository.ErrDuplicateLogin
	}

	updated := current
	updated.Login = user.Login
	updated.Email = user.Email
	updated.FirstName = user.FirstName
	updated.LastName = user.LastName
	if user.PasswordHash != "" {
		updated.PasswordHash = user.PasswordHash
	}

	delete(repo.byLogin, current.Login)
	repo.byID[updated.ID] = updated
	repo.byLogin[updated.Login] = updated.ID

	return nil
}

func (repo *userRepository) DeleteByID(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	delete(repo.byID, id)
	delete(repo.byLogin, user.Login)

	return nil
}
