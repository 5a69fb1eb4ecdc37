package repositories

import (
	"context"
	"fmt"

	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(ctx context.Context, log *models.AssessmentLog) error
	ListByUser(ctx context.Context, userID string) ([]models.AssessmentLog, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, log *models.AssessmentLog) error {
	if err := conn(ctx, r.db).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create assessment log: %w", err)
	}
	return nil
}

func (r *assessmentRepository) ListByUser(ctx context.Context, userID string) ([]models.AssessmentLog, error) {
	var logs []models.AssessmentLog
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessment logs: %w", err)
	}
	return logs, nil
}

func (r *assessmentRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&models.AssessmentLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete assessment logs: %w", err)
	}
	return nil
}
