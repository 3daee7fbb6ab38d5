package oauth

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"resback/config"
	"resback/internal/domain/entity"
	"resback/internal/domain/service"
)

// kakaoUser is Kakao's user-info payload. The account ID is numeric on the
// wire and stringified at the boundary.
type kakaoUser struct {
	ID          uint64    `json:"id"`
	ConnectedAt time.Time `json:"connected_at"`
}

type kakaoClient struct {
	baseClient
}

// NewKakaoClient builds the Kakao Login client.
func NewKakaoClient(cfg *config.OAuthProviderConfig) (service.OAuthProviderClient, error) {
	base, err := newBaseClient(entity.OAuthProviderKakao, cfg)
	if err != nil {
		return nil, err
	}

	return &kakaoClient{baseClient: base}, nil
}

// FetchUserInfo resolves the Kakao account behind an access token.
func (c *kakaoClient) FetchUserInfo(ctx context.Context, accessToken string) (*entity.OAuthUserData, error) {
	var payload kakaoUser
	if err := c.getUserInfo(ctx, accessToken, &payload); err != nil {
		return nil, err
	}
	if payload.ID == 0 {
		return nil, errors.New("kakao user info has no id")
	}

	return &entity.OAuthUserData{
		Provider: entity.OAuthProviderKakao,
		ID:       strconv.FormatUint(payload.ID, 10),
	}, nil
}
