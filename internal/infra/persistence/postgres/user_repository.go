package postgres

import (
	"context"

	"gorm.io/gorm"

	"usergate/internal/domain/entity"
	"usergate/internal/domain/repository"
	"usergate/internal/errors"
	"usergate/internal/infra/persistence/model"
)

// userRepository implements the domain UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Insert persists a new account row. Login uniqueness is enforced by the
// table's unique constraint, so two concurrent registrations with the same
// login cannot race past an application-level check.
func (repo *userRepository) Insert(ctx context.Context, user *entity.UserAccount) (*entity.UserAccount, error) {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repository.ErrDuplicateLogin
		}

		return nil, storeFailure(err, "failed to insert user")
	}

	return toUserDomain(userM), nil
}

// FindByLogin retrieves a single account by its login.
func (repo *userRepository) FindByLogin(ctx context.Context, login string) (*entity.UserAccount, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("login = ?", login).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, storeFailure(err, "failed to find user by login")
	}

	return toUserDomain(&userM), nil
}

// Update overwrites the row matching user.ID. An empty PasswordHash leaves
// the stored hash untouched, mirroring the "password unchanged" update form.
func (repo *userRepository) Update(ctx context.Context, user *entity.UserAccount) error {
	values := map[string]any{
		"login":     user.Login,
		"email":     user.Email,
		"firstname": user.FirstName,
		"lastname":  user.LastName,
	}
	if user.PasswordHash != "" {
		values["password"] = user.PasswordHash
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(values)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateLogin
		}

		return storeFailure(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DeleteByID removes the account row. Hard delete, as accounts are never
// soft-deleted.
func (repo *userRepository) DeleteByID(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return storeFailure(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// storeFailure marks a driver-level failure as ErrStoreUnavailable while
// keeping the original error in the chain for the logs.
func storeFailure(err error, message string) error {
	return errors.Wrap(errors.Join(repository.ErrStoreUnavailable, err), message)
}

// --- Mapper functions ---

func toUserDomain(data *model.UserModel) *entity.UserAccount {
	if data == nil {
		return nil
	}

	return &entity.UserAccount{
		ID:           data.ID,
		Login:        data.Login,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
	}
}

func fromUserDomain(user *entity.UserAccount) *model.UserModel {
	if user == nil {
		return nil
	}

	return &model.UserModel{
		ID:           user.ID,
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
	}
}
