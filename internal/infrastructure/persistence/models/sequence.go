package models

import "time"

// NumberSequenceModel backs the business number generators. One row per
// sequence key, e.g. "order:2026".
type NumberSequenceModel struct {
	Key       string    `gorm:"type:varchar(50);primary_key"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
