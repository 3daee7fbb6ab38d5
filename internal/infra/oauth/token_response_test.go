package oauth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenResponse_NumericAndStringExpiresInAgree(t *testing.T) {
	// Google and Kakao send expires_in as a number; Naver sends the same
	// value as a string. Both must decode to the same ProviderToken.
	numeric := []byte(`{"access_token":"abc","token_type":"Bearer","expires_in":3600}`)
	stringy := []byte(`{"access_token":"abc","token_type":"bearer","expires_in":"3600"}`)

	var fromNumber, fromString tokenResponse
	require.NoError(t, json.Unmarshal(numeric, &fromNumber))
	require.NoError(t, json.Unmarshal(stringy, &fromString))

	left, err := fromNumber.normalize()
	require.NoError(t, err)
	right, err := fromString.normalize()
	require.NoError(t, err)

	assert.Equal(t, left, right)
	assert.Equal(t, time.Hour, left.ExpiresIn)
	assert.Equal(t, "bearer", left.TokenType)
}

func TestTokenResponse_TokenTypeCaseInsensitive(t *testing.T) {
	for _, tokenType := range []string{"bearer", "Bearer", "BEARER"} {
		var wire tokenResponse
		raw := `{"access_token":"abc","token_type":"` + tokenType + `","expires_in":60}`
		require.NoError(t, json.Unmarshal([]byte(raw), &wire))

		token, err := wire.normalize()
		require.NoError(t, err)
		assert.Equal(t, "bearer", token.TokenType)
	}
}

func TestTokenResponse_OptionalFields(t *testing.T) {
	var wire tokenResponse
	raw := `{"access_token":"abc","token_type":"bearer","expires_in":60,"refresh_token":"r1","scope":"email profile"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	token, err := wire.normalize()
	require.NoError(t, err)
	assert.Equal(t, "r1", token.RefreshToken)
	assert.Equal(t, []string{"email", "profile"}, token.Scopes)

	var minimal tokenResponse
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"abc","token_type":"bearer"}`), &minimal))

	token, err = minimal.normalize()
	require.NoError(t, err)
	assert.Empty(t, token.RefreshToken)
	assert.Nil(t, token.Scopes)
	assert.Zero(t, token.ExpiresIn)
}

func TestTokenResponse_MissingAccessToken(t *testing.T) {
	var wire tokenResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token_type":"bearer","expires_in":60}`), &wire))

	token, err := wire.normalize()
	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestFlexibleInt64_RejectsGarbage(t *testing.T) {
	var wire tokenResponse
	err := json.Unmarshal([]byte(`{"access_token":"abc","token_type":"bearer","expires_in":"soon"}`), &wire)
	assert.Error(t, err)
}
