package oauth

import (
	"context"

	"github.com/pkg/errors"

	"resback/config"
	"resback/internal/domain/entity"
	"resback/internal/domain/service"
)

// naverUserResponse is Naver's user-info envelope. The account sits one
// level down under "response"; resultcode "00" means success.
type naverUserResponse struct {
	ResultCode string    `json:"resultcode"`
	Message    string    `json:"message"`
	Response   naverUser `json:"response"`
}

type naverUser struct {
	ID string `json:"id"`
}

type naverClient struct {
	baseClient
}

// NewNaverClient builds the Naver Login client. Naver is also the provider
// whose token endpoint returns expires_in as a string, which the shared
// tokenResponse decoding already absorbs.
func NewNaverClient(cfg *config.OAuthProviderConfig) (service.OAuthProviderClient, error) {
	base, err := newBaseClient(entity.OAuthProviderNaver, cfg)
	if err != nil {
		return nil, err
	}

	return &naverClient{baseClient: base}, nil
}

// FetchUserInfo resolves the Naver account behind an access token.
func (c *naverClient) FetchUserInfo(ctx context.Context, accessToken string) (*entity.OAuthUserData, error) {
	var payload naverUserResponse
	if err := c.getUserInfo(ctx, accessToken, &payload); err != nil {
		return nil, err
	}
	if payload.Response.ID == "" {
		return nil, errors.Errorf("naver user info failed: resultcode=%s message=%s", payload.ResultCode, payload.Message)
	}

	return &entity.OAuthUserData{Provider: entity.OAuthProviderNaver, ID: payload.Response.ID}, nil
}
