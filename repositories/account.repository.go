package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/tup-eyegrade/eyegrade-api/identity"
	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/gorm"
)

// AccountRepository is the identity directory backed by the local accounts table.
type AccountRepository struct {
	db *gorm.DB
}

var _ identity.Directory = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := conn(ctx, r.db).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Sync creates the account or refreshes its email. It reports whether a new row was created.
func (r *AccountRepository) Sync(ctx context.Context, id, email string) (bool, error) {
	var account models.Account
	err := conn(ctx, r.db).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.Create(ctx, &models.Account{ID: id, Email: email}); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up account: %w", err)
	}

	if account.Email != email {
		err := conn(ctx, r.db).Model(&account).Update("email", email).Error
		if err != nil {
			return false, fmt.Errorf("failed to update account email: %w", err)
		}
	}
	return false, nil
}

func (r *AccountRepository) LookupEmail(ctx context.Context, userID string) (string, error) {
	var account models.Account
	err := conn(ctx, r.db).Where("id = ?", userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", identity.ErrAccountNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}
	return account.Email, nil
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, userID string) error {
	result := conn(ctx, r.db).Where("id = ?", userID).Delete(&models.Account{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return identity.ErrAccountNotFound
	}
	return nil
}
