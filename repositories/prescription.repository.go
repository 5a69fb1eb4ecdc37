package repositories

import (
	"context"
	"fmt"

	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Prescription, error)
	ListAll(ctx context.Context) ([]models.Prescription, error)
	Create(ctx context.Context, prescription *models.Prescription) error
	Delete(ctx context.Context, userID, publicID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

// ListByUser returns the user's prescriptions, oldest checkup first.
func (r *prescriptionRepository) ListByUser(ctx context.Context, userID string) ([]models.Prescription, error) {
	prescriptions := []models.Prescription{}
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("checkup_date ASC").
		Order("id ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

// ListAll scans every prescription of every user.
func (r *prescriptionRepository) ListAll(ctx context.Context) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	if err := conn(ctx, r.db).Order("id ASC").Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to scan prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if err := conn(ctx, r.db).Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// Delete removes one prescription owned by userID and reports how many rows went.
func (r *prescriptionRepository) Delete(ctx context.Context, userID, publicID string) (int64, error) {
	result := conn(ctx, r.db).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Delete(&models.Prescription{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete prescription: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *prescriptionRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Prescription{}).Error; err != nil {
		return fmt.Errorf("failed to delete prescriptions: %w", err)
	}
	return nil
}
