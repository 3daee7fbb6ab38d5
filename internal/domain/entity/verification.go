package entity

import "time"

// EmailVerificationWindow is how long an issued code stays usable.
const EmailVerificationWindow = 3 * time.Minute

// EmailVerification is a pending email-verification code for a senior user.
// At most one code is active per senior; issuing a new one replaces it.
type EmailVerification struct {
	ID        uint64
	SeniorID  uint64
	Code      string // Zero-padded six-digit code.
	CreatedAt time.Time
}

// ExpiredAt reports whether the code is past its validity window at the
// given instant.
func (v *EmailVerification) ExpiredAt(now time.Time) bool {
	return now.Sub(v.CreatedAt) >= EmailVerificationWindow
}
