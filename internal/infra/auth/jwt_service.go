package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"resback/config"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/service"
)

// TokenIssuer is the iss claim stamped on every token this service signs.
const TokenIssuer = "https://respec.team/api"

// jwtService is a concrete implementation of the TokenService interface
// using RS256-signed JWTs. Access and refresh tokens are structurally
// identical; callers choose the lifetime.
type jwtService struct {
	keys       *KeyMaterial
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config, keys *KeyMaterial) (service.TokenService, error) {
	if cfg.Token.AccessMaxAge <= 0 || cfg.Token.RefreshMaxAge <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &jwtService{
		keys:       keys,
		accessTTL:  cfg.Token.AccessMaxAge,
		refreshTTL: cfg.Token.RefreshMaxAge,
	}, nil
}

// Issue creates a signed token for the given account with the given lifetime.
func (s *jwtService) Issue(userType entity.UserType, userID uint64, lifetime time.Duration) (*entity.SessionToken, error) {
	now := time.Now()
	expiresAt := now.Add(lifetime)

	claims := jwt.MapClaims{
		"iss":   TokenIssuer,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"sub":   strconv.FormatUint(userID, 10),
		"nonce": userType.String(),
	}

	encoded, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.keys.SigningKey())
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	return &entity.SessionToken{
		Encoded:   encoded,
		UserType:  userType,
		UserID:    userID,
		IssuedAt:  time.Unix(now.Unix(), 0),
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// Verify checks an encoded token and returns its resolved claims.
func (s *jwtService) Verify(encoded string) (*entity.SessionToken, error) {
	if encoded == "" {
		return nil, domainerrors.ErrTokenNotExists
	}

	token, err := jwt.Parse(encoded, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.keys.VerificationKey(), nil
	}, jwt.WithIssuedAt(), jwt.WithIssuer(TokenIssuer))
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrInvalidToken
	}

	// The remaining failures can only happen on tokens we did not issue
	// ourselves, so they are reported as internal errors rather than 401s.
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "read sub claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "sub claim %q is not a user id", sub)
	}

	nonce, _ := claims["nonce"].(string)
	userType, err := entity.ParseUserType(nonce)
	if err != nil {
		return nil, errors.Wrap(err, "read nonce claim")
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil {
		return nil, errors.Wrap(err, "read iat claim")
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Wrap(err, "read exp claim")
	}

	return &entity.SessionToken{
		Encoded:   encoded,
		UserType:  userType,
		UserID:    userID,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}
