// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "github.com/pkg/errors"

// UserType represents the kind of account a session belongs to.
// It is a closed set: every switch over it handles exactly these two variants.
type UserType string

const (
	// UserTypeNormal indicates a mentee account created through OAuth sign-in.
	UserTypeNormal UserType = "normal"
	// UserTypeSenior indicates a mentor account created through email/password registration.
	UserTypeSenior UserType = "senior"
)

// String returns the string representation of the UserType.
func (t UserType) String() string {
	return string(t)
}

// IsValid checks if the UserType is a valid value.
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeNormal, UserTypeSenior:
		return true
	default:
		return false
	}
}

// ParseUserType converts a string into a UserType, rejecting unknown values.
func ParseUserType(s string) (UserType, error) {
	t := UserType(s)
	if !t.IsValid() {
		return "", errors.Errorf("unknown user type %q", s)
	}

	return t, nil
}
