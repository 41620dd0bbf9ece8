// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"usergate/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateLogin is returned when an insert or update collides with an
	// existing login. Uniqueness is enforced by the storage layer (unique
	// constraint), never by an application-level check-then-insert.
	ErrDuplicateLogin = errors.New("login already taken")

	// ErrStoreUnavailable wraps connection or query failures of the underlying
	// storage. Callers may retry at their discretion.
	ErrStoreUnavailable = errors.New("user store unavailable")
)

// UserRepository defines the standard operations for user account persistence.
// The application layer depends on this interface, not the concrete implementation.
// All operations are single-row and atomic at the storage layer.
type UserRepository interface {
	// Insert persists a new account and returns it with the store-assigned ID.
	// Returns ErrDuplicateLogin when the login already exists.
	Insert(ctx context.Context, user *entity.UserAccount) (*entity.UserAccount, error)

	// FindByLogin retrieves a single account by its login.
	// Returns ErrUserNotFound when absent; absence is not a failure.
	FindByLogin(ctx context.Context, login string) (*entity.UserAccount, error)

	// Update overwrites login, email and name fields of the row matching
	// user.ID. An empty user.PasswordHash leaves the stored hash unchanged.
	// Returns ErrUserNotFound when no row matched, ErrDuplicateLogin when the
	// new login collides with another account.
	Update(ctx context.Context, user *entity.UserAccount) error

	// DeleteByID removes the account row. Returns ErrUserNotFound when no row
	// matched. Accounts are never soft-deleted.
	DeleteByID(ctx context.Context, id int64) error
}
