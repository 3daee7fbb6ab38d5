package entity

import "time"

// MentoringMethod is how a mentoring session is held. The numeric values
// match the mentoring_method reference table.
type MentoringMethod uint32

const (
	// MentoringMethodVideoCall is a mentoring session over video call.
	MentoringMethodVideoCall MentoringMethod = 1
	// MentoringMethodVoiceCall is a mentoring session over voice call.
	MentoringMethodVoiceCall MentoringMethod = 2
)

// String returns the string representation of the MentoringMethod.
func (m MentoringMethod) String() string {
	switch m {
	case MentoringMethodVoiceCall:
		return "voice_call"
	default:
		return "video_call"
	}
}

// IsValid checks if the MentoringMethod is a valid value.
func (m MentoringMethod) IsValid() bool {
	switch m {
	case MentoringMethodVideoCall, MentoringMethodVoiceCall:
		return true
	default:
		return false
	}
}

// MentoringTime is one bookable hour slot from the fixed mentoring_time table.
type MentoringTime struct {
	ID   uint64
	Hour int // Hour of day, 0-23.
}

// MentoringSchedule is a senior's bookable slot set together with the
// mentoring settings that live on the senior row.
type MentoringSchedule struct {
	SeniorID uint64
	Times    []MentoringTime
	Method   MentoringMethod
	Status   bool
	AlwaysOn bool
}

// MentoringOrder is a booking of one senior's slot by a normal user.
// Price and method are copied from the seller row at creation time so later
// profile edits do not rewrite history.
type MentoringOrder struct {
	ID        uint64
	BuyerID   uint64 // The normal user who placed the order.
	SellerID  uint64 // The senior user being booked.
	Time      MentoringTime
	Method    MentoringMethod
	Price     int
	Content   string // Free-form message from the buyer.
	CreatedAt time.Time
}
