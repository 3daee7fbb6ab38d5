package entity

import "github.com/pkg/errors"

// OAuthProvider identifies the external identity provider a normal user
// signed up with.
type OAuthProvider string

const (
	// OAuthProviderGoogle is Google Sign-In.
	OAuthProviderGoogle OAuthProvider = "google"
	// OAuthProviderKakao is Kakao Login.
	OAuthProviderKakao OAuthProvider = "kakao"
	// OAuthProviderNaver is Naver Login.
	OAuthProviderNaver OAuthProvider = "naver"
)

// String returns the string representation of the OAuthProvider.
func (p OAuthProvider) String() string {
	return string(p)
}

// IsValid checks if the OAuthProvider is a valid value.
func (p OAuthProvider) IsValid() bool {
	switch p {
	case OAuthProviderGoogle, OAuthProviderKakao, OAuthProviderNaver:
		return true
	default:
		return false
	}
}

// ParseOAuthProvider converts a string into an OAuthProvider, rejecting unknown values.
func ParseOAuthProvider(s string) (OAuthProvider, error) {
	p := OAuthProvider(s)
	if !p.IsValid() {
		return "", errors.Errorf("unknown oauth provider %q", s)
	}

	return p, nil
}

// OAuthUserData is the provider-independent identity extracted from a
// provider's user-info endpoint. Every provider payload collapses to this
// pair at the adapter boundary; nothing else from the payload is kept.
type OAuthUserData struct {
	Provider OAuthProvider // The provider that vouched for this identity.
	ID       string        // The provider-scoped account ID, always as a string.
}
