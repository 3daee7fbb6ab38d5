package entity

import "time"

// SessionToken is a decoded session token together with its wire form.
// Access and refresh tokens share this shape; only their lifetime differs.
type SessionToken struct {
	Encoded   string    // The signed compact serialization, as sent on the wire.
	UserType  UserType  // Which account table the subject lives in.
	UserID    uint64    // The account's numeric primary key.
	IssuedAt  time.Time // Claim iat.
	ExpiresAt time.Time // Claim exp.
}

// ExpiresIn returns the token's total lifetime. It doubles as the cookie
// MaxAge so the cookie and the token expire together.
func (t *SessionToken) ExpiresIn() time.Duration {
	return t.ExpiresAt.Sub(t.IssuedAt)
}
