// Package model holds the GORM persistence models. They mirror tables, not
// domain entities; mapping between the two happens in the postgres package.
package model

import "time"

// NormalUserModel mirrors the 'normal_users' table. An account is unique per
// (oauth_provider, oauth_id) pair.
type NormalUserModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	OAuthProvider string `gorm:"column:oauth_provider;type:varchar(16);not null;uniqueIndex:idx_normal_users_identity"`
	OAuthID      string `gorm:"column:oauth_id;type:varchar(255);not null;uniqueIndex:idx_normal_users_identity"`
	Nickname     string `gorm:"type:varchar(100);not null"`
	Picture      string `gorm:"type:varchar(512);not null"`
	RefreshToken string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (NormalUserModel) TableName() string {
	return "normal_users"
}

// SeniorUserModel mirrors the 'senior_users' table.
// RepresentativeCareers is stored as a JSON-encoded text column.
type SeniorUserModel struct {
	ID                    uint64 `gorm:"primaryKey;autoIncrement"`
	Email                 string `gorm:"type:varchar(255);unique;not null"`
	Password              string `gorm:"type:varchar(255);not null"`
	Name                  string `gorm:"type:varchar(100);not null"`
	Phone                 string `gorm:"type:varchar(32);not null"`
	Nickname              string `gorm:"type:varchar(100);not null"`
	Picture               string `gorm:"type:varchar(512);not null"`
	Major                 string `gorm:"type:varchar(100);not null;index"`
	ExperienceYears       int    `gorm:"not null"`
	MentoringPrice        int    `gorm:"not null"`
	RepresentativeCareers string `gorm:"type:text;not null"`
	Description           string `gorm:"type:text"`
	MentoringMethodID     uint32 `gorm:"column:mentoring_method_id;not null;default:1"`
	MentoringStatus       bool   `gorm:"not null;default:false"`
	MentoringAlwaysOn     bool   `gorm:"not null;default:false"`
	EmailVerified         bool   `gorm:"not null;default:false"`
	RefreshToken          string `gorm:"type:text"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (SeniorUserModel) TableName() string {
	return "senior_users"
}
