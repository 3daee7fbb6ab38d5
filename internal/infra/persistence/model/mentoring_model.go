package model

import "time"

// MentoringTimeModel mirrors the fixed 'mentoring_time' reference table of
// bookable hour slots. It is seeded once and never written at runtime.
type MentoringTimeModel struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Hour int    `gorm:"unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (MentoringTimeModel) TableName() string {
	return "mentoring_time"
}

// MentoringScheduleModel mirrors the 'mentoring_schedule' join table linking
// a senior to the slots they accept.
type MentoringScheduleModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	SeniorID uint64 `gorm:"not null;index"`
	TimeID   uint64 `gorm:"not null"`

	Time *MentoringTimeModel `gorm:"foreignKey:TimeID"`
}

// TableName explicitly sets the table name for GORM.
func (MentoringScheduleModel) TableName() string {
	return "mentoring_schedule"
}

// MentoringOrderModel mirrors the 'mentoring_order' table. Price and method
// are denormalized copies taken from the seller at order time.
type MentoringOrderModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	BuyerID  uint64 `gorm:"not null;index"`
	SellerID uint64 `gorm:"not null;index"`
	TimeID   uint64 `gorm:"not null"`
	MethodID uint32 `gorm:"column:method_id;not null"`
	Price    int    `gorm:"not null"`
	Content  string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Time *MentoringTimeModel `gorm:"foreignKey:TimeID"`
}

// TableName explicitly sets the table name for GORM.
func (MentoringOrderModel) TableName() string {
	return "mentoring_order"
}
