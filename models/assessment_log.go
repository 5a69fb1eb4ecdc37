package models

// AssessmentLog records one submitted symptom assessment.
type AssessmentLog struct {
	BaseUUIDModel
	UserID  string `gorm:"size:64;not null;index" json:"user_id"`
	Score   int    `gorm:"not null"               json:"score"`
	Total   int    `gorm:"not null"               json:"total"`
	Flagged bool   `gorm:"not null"               json:"flagged"`
}
