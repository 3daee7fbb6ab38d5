package model

import "time"

// EmailVerificationModel mirrors the 'email_verification' table. At most one
// pending code exists per senior.
type EmailVerificationModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	SeniorID  uint64 `gorm:"not null;uniqueIndex"`
	Code      string `gorm:"type:varchar(6);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailVerificationModel) TableName() string {
	return "email_verification"
}
