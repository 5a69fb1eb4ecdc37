package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReminderNotification marks that the reminder for one due date of a prescription went out.
type ReminderNotification struct {
	BaseUUIDModel
	PrescriptionID string         `gorm:"size:32;not null;uniqueIndex:idx_notification_due" json:"prescription_id"`
	DueDate        datatypes.Date `gorm:"not null;uniqueIndex:idx_notification_due"        json:"due_date"`
	SentAt         time.Time      `gorm:"not null"                                         json:"sent_at"`
}
