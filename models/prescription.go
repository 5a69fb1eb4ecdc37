package models

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prescription is one recorded eye checkup. Rows are inserted and deleted, never updated.
type Prescription struct {
	ID          uint           `gorm:"primaryKey"                  json:"-"`
	PublicID    string         `gorm:"size:32;uniqueIndex;not null" json:"id"`
	UserID      string         `gorm:"size:64;not null;index"      json:"user_id"`
	LeftEye     string         `gorm:"size:50"                     json:"left_eye"`
	RightEye    string         `gorm:"size:50"                     json:"right_eye"`
	Notes       string         `gorm:"size:1000"                   json:"notes"`
	CheckupDate datatypes.Date `gorm:"not null;index"              json:"checkup_date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"              json:"created_at"`
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		publicID, err := gonanoid.New()
		if err != nil {
			return err
		}
		p.PublicID = publicID
	}
	return nil
}

// Checkup returns the checkup date as a time.Time.
func (p Prescription) Checkup() time.Time {
	return time.Time(p.CheckupDate)
}
