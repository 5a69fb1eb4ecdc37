package models

import "time"

// Account mirrors an identity-provider user for deployments without Supabase Auth.
type Account struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime"              json:"created_at"`
}
