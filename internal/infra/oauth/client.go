package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"resback/config"
	"resback/internal/domain/entity"
	"resback/internal/domain/service"
)

const requestTimeout = 10 * time.Second

// baseClient carries the parts of the OAuth flow that all providers share:
// building the authorize redirect, the authorization-code exchange and
// authenticated JSON GETs. Provider-specific payload decoding lives in the
// per-provider files.
type baseClient struct {
	provider   entity.OAuthProvider
	cfg        *config.OAuthProviderConfig
	httpClient *http.Client
}

func newBaseClient(provider entity.OAuthProvider, cfg *config.OAuthProviderConfig) (baseClient, error) {
	if cfg == nil {
		return baseClient{}, errors.Errorf("missing %s oauth configuration", provider)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return baseClient{}, errors.Errorf("%s oauth client credentials must be provided", provider)
	}

	return baseClient{
		provider:   provider,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// Provider returns which provider this client talks to.
func (c *baseClient) Provider() entity.OAuthProvider {
	return c.provider
}

// AuthorizationURL builds the provider's authorize redirect for the given CSRF state.
func (c *baseClient) AuthorizationURL(state string) string {
	query := url.Values{}
	query.Set("client_id", c.cfg.ClientID)
	query.Set("redirect_uri", c.cfg.RedirectURL)
	query.Set("response_type", "code")
	query.Set("state", state)
	if c.cfg.Scopes != "" {
		query.Set("scope", c.cfg.Scopes)
	}

	return c.cfg.AuthURL + "?" + query.Encode()
}

// ExchangeCode trades an authorization code for a provider token.
// The client_secret travels in the form body, which every supported
// provider accepts and Kakao requires.
func (c *baseClient) ExchangeCode(ctx context.Context, code string) (*service.ProviderToken, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s token endpoint", c.provider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, errors.Errorf("%s token endpoint returned %d: %s", c.provider, resp.StatusCode, body)
	}

	var wire tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, errors.Wrapf(err, "decode %s token response", c.provider)
	}

	token, err := wire.normalize()
	if err != nil {
		return nil, errors.Wrapf(err, "%s token response", c.provider)
	}

	return token, nil
}

// getUserInfo performs an authenticated GET against the user-info endpoint
// and decodes the payload into out.
func (c *baseClient) getUserInfo(ctx context.Context, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserInfoURL, nil)
	if err != nil {
		return errors.Wrap(err, "build user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s user info endpoint", c.provider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("%s user info endpoint returned %d: %s", c.provider, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s user info", c.provider)
	}

	return nil
}

// NewProviderClients builds one client per configured provider, keyed by
// provider name for the session layer's path-parameter lookup.
func NewProviderClients(cfg *config.Config) (map[entity.OAuthProvider]service.OAuthProviderClient, error) {
	if cfg.OAuth == nil {
		return nil, errors.New("oauth configuration is required")
	}

	google, err := NewGoogleClient(cfg.OAuth.Google)
	if err != nil {
		return nil, err
	}
	kakao, err := NewKakaoClient(cfg.OAuth.Kakao)
	if err != nil {
		return nil, err
	}
	naver, err := NewNaverClient(cfg.OAuth.Naver)
	if err != nil {
		return nil, err
	}

	return map[entity.OAuthProvider]service.OAuthProviderClient{
		entity.OAuthProviderGoogle: google,
		entity.OAuthProviderKakao:  kakao,
		entity.OAuthProviderNaver:  naver,
	}, nil
}
