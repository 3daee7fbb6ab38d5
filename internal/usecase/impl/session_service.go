// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"crypto/subtle"
	"fmt"
	"hash/fnv"
	"log/slog"

	deliverycontext "resback/internal/delivery/context"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/domain/service"
	"resback/internal/usecase"

	"github.com/pkg/errors"
)

// defaultProfilePicture is assigned to accounts created without an uploaded
// picture. Picture uploads are handled outside this service.
const defaultProfilePicture = "https://respec.team/static/profile/default.png"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	tokenSvc     service.TokenService
	hasher       service.PasswordHasher
	oauthClients map[entity.OAuthProvider]service.OAuthProviderClient
	logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	tokenSvc service.TokenService,
	hasher service.PasswordHasher,
	oauthClients map[entity.OAuthProvider]service.OAuthProviderClient,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		txManager:    txManager,
		tokenSvc:     tokenSvc,
		hasher:       hasher,
		oauthClients: oauthClients,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AuthorizationURL returns the provider's authorize redirect for a login attempt.
func (srv *sessionService) AuthorizationURL(provider entity.OAuthProvider, state string) (string, error) {
	client, ok := srv.oauthClients[provider]
	if !ok {
		return "", domainerrors.ErrUnsupportedProvider.WithDetails(provider.String())
	}

	return client.AuthorizationURL(state), nil
}

// LoginOAuth completes an OAuth sign-in from an authorization code. The
// account is created on first contact; every login overwrites the stored
// refresh token, so one refresh token is active per user.
func (srv *sessionService) LoginOAuth(ctx context.Context, provider entity.OAuthProvider, code string) (*usecase.LoginOutput, error) {
	client, ok := srv.oauthClients[provider]
	if !ok {
		return nil, domainerrors.ErrUnsupportedProvider.WithDetails(provider.String())
	}

	providerToken, err := client.ExchangeCode(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("OAuth code exchange failed",
			slog.String("provider", provider.String()), slog.Any("error", err))

		return nil, domainerrors.ErrOAuthProvider.WrapMessage(err.Error())
	}

	userData, err := client.FetchUserInfo(ctx, providerToken.AccessToken)
	if err != nil {
		srv.log(ctx).Warn("OAuth user info fetch failed",
			slog.String("provider", provider.String()), slog.Any("error", err))

		return nil, domainerrors.ErrOAuthProvider.WrapMessage(err.Error())
	}

	var output *usecase.LoginOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		normalRepo := repoFactory.NewNormalUserRepository()

		user, err := normalRepo.FindByOAuthIdentity(ctx, userData.Provider, userData.ID)
		if errors.Is(err, repository.ErrUserNotFound) {
			user = &entity.NormalUser{
				Provider: userData.Provider,
				OAuthID:  userData.ID,
				Nickname: generatedNickname(userData),
				Picture:  defaultProfilePicture,
			}
			if err := normalRepo.Create(ctx, user); err != nil {
				return errors.Wrap(err, "register normal user")
			}
		} else if err != nil {
			return errors.Wrap(err, "find normal user")
		}

		output, err = srv.issueSession(ctx, repoFactory, entity.UserTypeNormal, user.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("OAuth login completed",
		slog.String("provider", provider.String()), slog.Uint64("user_id", output.UserID))

	return output, nil
}

// LoginSenior performs an email/password login for a senior user. An unknown
// email and a wrong password produce the same error, so callers cannot probe
// which addresses are registered.
func (srv *sessionService) LoginSenior(ctx context.Context, input usecase.SeniorLoginInput) (*usecase.LoginOutput, error) {
	var output *usecase.LoginOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seniorRepo := repoFactory.NewSeniorUserRepository()

		user, err := seniorRepo.FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrLogin
		} else if err != nil {
			return errors.Wrap(err, "find senior user")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrLogin
		}

		output, err = srv.issueSession(ctx, repoFactory, entity.UserTypeSenior, user.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Senior login completed", slog.Uint64("user_id", output.UserID))

	return output, nil
}

// Refresh issues a new access token for a valid refresh token. The submitted
// token must match the stored one byte for byte; the refresh token itself is
// not rotated.
func (srv *sessionService) Refresh(ctx context.Context, encodedRefreshToken string) (*usecase.RefreshOutput, error) {
	token, err := srv.tokenSvc.Verify(encodedRefreshToken)
	if err != nil {
		return nil, err
	}

	var output *usecase.RefreshOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		stored, err := storedRefreshToken(ctx, repoFactory, token.UserType, token.UserID)
		if err != nil {
			return err
		}

		if subtle.ConstantTimeCompare([]byte(stored), []byte(encodedRefreshToken)) != 1 {
			return domainerrors.ErrUnauthorized.WithDetails("refresh token superseded")
		}

		accessToken, err := srv.tokenSvc.Issue(token.UserType, token.UserID, srv.tokenSvc.AccessTokenDuration())
		if err != nil {
			return errors.Wrap(err, "issue access token")
		}

		output = &usecase.RefreshOutput{
			AccessToken: accessToken,
			UserType:    token.UserType,
			UserID:      token.UserID,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Logout invalidates the server-side session behind an access token by
// clearing the stored refresh token.
func (srv *sessionService) Logout(ctx context.Context, encodedAccessToken string) error {
	token, err := srv.tokenSvc.Verify(encodedAccessToken)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return clearRefreshToken(ctx, repoFactory, token.UserType, token.UserID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Logout completed",
		slog.String("user_type", token.UserType.String()), slog.Uint64("user_id", token.UserID))

	return nil
}

// issueSession creates the access/refresh pair and stores the refresh token
// on the user row inside the caller's transaction.
func (srv *sessionService) issueSession(ctx context.Context, repoFactory repository.RepositoryFactory, userType entity.UserType, userID uint64) (*usecase.LoginOutput, error) {
	accessToken, err := srv.tokenSvc.Issue(userType, userID, srv.tokenSvc.AccessTokenDuration())
	if err != nil {
		return nil, errors.Wrap(err, "issue access token")
	}
	refreshToken, err := srv.tokenSvc.Issue(userType, userID, srv.tokenSvc.RefreshTokenDuration())
	if err != nil {
		return nil, errors.Wrap(err, "issue refresh token")
	}

	var updateErr error
	switch userType {
	case entity.UserTypeNormal:
		updateErr = repoFactory.NewNormalUserRepository().UpdateRefreshToken(ctx, userID, refreshToken.Encoded)
	case entity.UserTypeSenior:
		updateErr = repoFactory.NewSeniorUserRepository().UpdateRefreshToken(ctx, userID, refreshToken.Encoded)
	}
	if updateErr != nil {
		return nil, errors.Wrap(updateErr, "store refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserType:     userType,
		UserID:       userID,
	}, nil
}

func storedRefreshToken(ctx context.Context, repoFactory repository.RepositoryFactory, userType entity.UserType, userID uint64) (string, error) {
	switch userType {
	case entity.UserTypeNormal:
		user, err := repoFactory.NewNormalUserRepository().FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domainerrors.ErrUserNotFound
		} else if err != nil {
			return "", errors.Wrap(err, "find normal user")
		}

		return user.RefreshToken, nil
	case entity.UserTypeSenior:
		user, err := repoFactory.NewSeniorUserRepository().FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domainerrors.ErrUserNotFound
		} else if err != nil {
			return "", errors.Wrap(err, "find senior user")
		}

		return user.RefreshToken, nil
	default:
		return "", errors.Errorf("unknown user type %q", userType)
	}
}

func clearRefreshToken(ctx context.Context, repoFactory repository.RepositoryFactory, userType entity.UserType, userID uint64) error {
	var err error
	switch userType {
	case entity.UserTypeNormal:
		err = repoFactory.NewNormalUserRepository().UpdateRefreshToken(ctx, userID, "")
	case entity.UserTypeSenior:
		err = repoFactory.NewSeniorUserRepository().UpdateRefreshToken(ctx, userID, "")
	default:
		return errors.Errorf("unknown user type %q", userType)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return err
}

// generatedNickname derives a stable placeholder nickname from the provider
// identity. Users rename themselves through the profile update endpoint.
func generatedNickname(userData *entity.OAuthUserData) string {
	h := fnv.New32a()
	h.Write([]byte(userData.Provider.String()))
	h.Write([]byte(":"))
	h.Write([]byte(userData.ID))

	return fmt.Sprintf("mentee_%08x", h.Sum32())
}
