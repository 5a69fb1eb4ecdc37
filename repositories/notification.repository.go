package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	WasNotified(ctx context.Context, prescriptionID string, due time.Time) (bool, error)
	Record(ctx context.Context, prescriptionID string, due, sentAt time.Time) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WasNotified(ctx context.Context, prescriptionID string, due time.Time) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ReminderNotification{}).
		Where("prescription_id = ? AND due_date = ?", prescriptionID, datatypes.Date(due)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reminder notification: %w", err)
	}
	return count > 0, nil
}

func (r *notificationRepository) Record(ctx context.Context, prescriptionID string, due, sentAt time.Time) error {
	notification := &models.ReminderNotification{
		PrescriptionID: prescriptionID,
		DueDate:        datatypes.Date(due),
		SentAt:         sentAt,
	}
	if err := conn(ctx, r.db).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to record reminder notification: %w", err)
	}
	return nil
}
