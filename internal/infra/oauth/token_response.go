// Package oauth implements the provider clients used for normal-user sign-in.
package oauth

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"resback/internal/domain/service"
)

// tokenResponse is the wire shape of a token-endpoint response. Providers
// deviate from RFC 6749 in small ways, so the fields are deliberately loose:
// expires_in arrives as a JSON number from Google and Kakao but as a string
// from Naver, and token_type casing varies. Decoding tolerates all of them;
// normalize collapses the result into one service.ProviderToken.
type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    flexibleInt64 `json:"expires_in"`
	RefreshToken string        `json:"refresh_token"`
	Scope        string        `json:"scope"`
}

// flexibleInt64 is an integer that also accepts its decimal-string form.
type flexibleInt64 int64

func (f *flexibleInt64) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*f = 0

		return nil
	}

	if raw != "" && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "unmarshal string value")
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %q as integer", s)
		}
		*f = flexibleInt64(n)

		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "unmarshal integer value")
	}
	*f = flexibleInt64(n)

	return nil
}

// normalize validates the decoded response and converts it to the
// provider-independent token shape.
func (r *tokenResponse) normalize() (*service.ProviderToken, error) {
	if r.AccessToken == "" {
		return nil, errors.New("token response has no access_token")
	}

	var scopes []string
	if r.Scope != "" {
		scopes = strings.Fields(r.Scope)
	}

	return &service.ProviderToken{
		AccessToken:  r.AccessToken,
		TokenType:    strings.ToLower(r.TokenType),
		ExpiresIn:    time.Duration(r.ExpiresIn) * time.Second,
		RefreshToken: r.RefreshToken,
		Scopes:       scopes,
	}, nil
}
