package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/domain/service"

	"github.com/pkg/errors"
)

// The services are tested against in-memory repositories behind a pass-through
// transaction manager, so every test exercises the real orchestration code.

type fakeTxManager struct {
	factory *fakeRepoFactory
	execErr error // When set, Execute fails without running fn.
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.execErr != nil {
		return m.execErr
	}

	return fn(m.factory)
}

type fakeRepoFactory struct {
	normalRepo       *fakeNormalUserRepo
	seniorRepo       *fakeSeniorUserRepo
	mentoringRepo    *fakeMentoringRepo
	verificationRepo *fakeVerificationRepo
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		normalRepo:       &fakeNormalUserRepo{users: map[uint64]*entity.NormalUser{}},
		seniorRepo:       &fakeSeniorUserRepo{users: map[uint64]*entity.SeniorUser{}},
		mentoringRepo:    &fakeMentoringRepo{schedules: map[uint64][]uint64{}, orders: map[uint64]*entity.MentoringOrder{}},
		verificationRepo: &fakeVerificationRepo{codes: map[uint64]*entity.EmailVerification{}},
	}
}

func (f *fakeRepoFactory) NewNormalUserRepository() repository.NormalUserRepository {
	return f.normalRepo
}

func (f *fakeRepoFactory) NewSeniorUserRepository() repository.SeniorUserRepository {
	return f.seniorRepo
}

func (f *fakeRepoFactory) NewMentoringRepository() repository.MentoringRepository {
	return f.mentoringRepo
}

func (f *fakeRepoFactory) NewVerificationRepository() repository.VerificationRepository {
	return f.verificationRepo
}

type fakeNormalUserRepo struct {
	users  map[uint64]*entity.NormalUser
	nextID uint64
}

func (r *fakeNormalUserRepo) FindByID(_ context.Context, id uint64) (*entity.NormalUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeNormalUserRepo) FindByOAuthIdentity(_ context.Context, provider entity.OAuthProvider, oauthID string) (*entity.NormalUser, error) {
	for _, user := range r.users {
		if user.Provider == provider && user.OAuthID == oauthID {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeNormalUserRepo) Create(_ context.Context, user *entity.NormalUser) error {
	for _, existing := range r.users {
		if existing.Provider == user.Provider && existing.OAuthID == user.OAuthID {
			return repository.ErrDuplicateUser
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeNormalUserRepo) Update(_ context.Context, user *entity.NormalUser) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeNormalUserRepo) UpdateRefreshToken(_ context.Context, id uint64, refreshToken string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshToken = refreshToken

	return nil
}

func (r *fakeNormalUserRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeSeniorUserRepo struct {
	users  map[uint64]*entity.SeniorUser
	nextID uint64
}

func (r *fakeSeniorUserRepo) FindByID(_ context.Context, id uint64) (*entity.SeniorUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeSeniorUserRepo) FindByEmail(_ context.Context, email string) (*entity.SeniorUser, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeSeniorUserRepo) Search(_ context.Context, filter repository.SeniorSearchFilter) ([]*entity.SeniorUser, error) {
	var result []*entity.SeniorUser
	for _, user := range r.users {
		if filter.Major != "" && user.Major != filter.Major {
			continue
		}
		if filter.Keyword != "" {
			haystack := user.Nickname + " " + strings.Join(user.RepresentativeCareers, " ") + " " + user.Description
			if !strings.Contains(haystack, filter.Keyword) {
				continue
			}
		}
		copied := *user
		result = append(result, &copied)
	}

	return result, nil
}

func (r *fakeSeniorUserRepo) Create(_ context.Context, user *entity.SeniorUser) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeSeniorUserRepo) Update(_ context.Context, user *entity.SeniorUser) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeSeniorUserRepo) UpdateRefreshToken(_ context.Context, id uint64, refreshToken string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshToken = refreshToken

	return nil
}

func (r *fakeSeniorUserRepo) SetEmailVerified(_ context.Context, id uint64) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.EmailVerified = true

	return nil
}

func (r *fakeSeniorUserRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeMentoringRepo struct {
	times     []entity.MentoringTime
	schedules map[uint64][]uint64
	orders    map[uint64]*entity.MentoringOrder
	nextID    uint64
}

func (r *fakeMentoringRepo) ListTimes(_ context.Context) ([]entity.MentoringTime, error) {
	return append([]entity.MentoringTime(nil), r.times...), nil
}

func (r *fakeMentoringRepo) FindTimeByID(_ context.Context, id uint64) (*entity.MentoringTime, error) {
	for _, slot := range r.times {
		if slot.ID == id {
			copied := slot

			return &copied, nil
		}
	}

	return nil, repository.ErrTimeNotFound
}

func (r *fakeMentoringRepo) FindTimeByHour(_ context.Context, hour int) (*entity.MentoringTime, error) {
	for _, slot := range r.times {
		if slot.Hour == hour {
			copied := slot

			return &copied, nil
		}
	}

	return nil, repository.ErrTimeNotFound
}

func (r *fakeMentoringRepo) ListScheduleTimes(ctx context.Context, seniorID uint64) ([]entity.MentoringTime, error) {
	var result []entity.MentoringTime
	for _, timeID := range r.schedules[seniorID] {
		slot, err := r.FindTimeByID(ctx, timeID)
		if err != nil {
			return nil, err
		}
		result = append(result, *slot)
	}

	return result, nil
}

func (r *fakeMentoringRepo) ReplaceSchedule(_ context.Context, seniorID uint64, timeIDs []uint64) error {
	r.schedules[seniorID] = append([]uint64(nil), timeIDs...)

	return nil
}

func (r *fakeMentoringRepo) CreateOrder(_ context.Context, order *entity.MentoringOrder) error {
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeMentoringRepo) FindOrderByID(_ context.Context, id uint64) (*entity.MentoringOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order

	return &copied, nil
}

type fakeVerificationRepo struct {
	codes  map[uint64]*entity.EmailVerification
	nextID uint64
}

func (r *fakeVerificationRepo) Replace(_ context.Context, verification *entity.EmailVerification) error {
	r.nextID++
	verification.ID = r.nextID
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = time.Now()
	}
	copied := *verification
	r.codes[verification.SeniorID] = &copied

	return nil
}

func (r *fakeVerificationRepo) FindBySeniorID(_ context.Context, seniorID uint64) (*entity.EmailVerification, error) {
	verification, ok := r.codes[seniorID]
	if !ok {
		return nil, repository.ErrVerificationNotFound
	}
	copied := *verification

	return &copied, nil
}

func (r *fakeVerificationRepo) DeleteBySeniorID(_ context.Context, seniorID uint64) error {
	delete(r.codes, seniorID)

	return nil
}

// fakeTokenService encodes claims into an opaque counter-tagged string so
// every issued token is unique even within the same second.
type fakeTokenService struct {
	issued  map[string]*entity.SessionToken
	counter int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: map[string]*entity.SessionToken{}}
}

func (s *fakeTokenService) Issue(userType entity.UserType, userID uint64, lifetime time.Duration) (*entity.SessionToken, error) {
	s.counter++
	now := time.Now()
	token := &entity.SessionToken{
		Encoded:   fmt.Sprintf("token-%s-%d-%d", userType, userID, s.counter),
		UserType:  userType,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(lifetime),
	}
	s.issued[token.Encoded] = token

	return token, nil
}

func (s *fakeTokenService) Verify(encoded string) (*entity.SessionToken, error) {
	if encoded == "" {
		return nil, domainerrors.ErrTokenNotExists
	}
	token, ok := s.issued[encoded]
	if !ok || time.Now().After(token.ExpiresAt) {
		return nil, domainerrors.ErrInvalidToken
	}

	return token, nil
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration { return 30 * time.Minute }

func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return 14 * 24 * time.Hour }

type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeOAuthClient struct {
	provider    entity.OAuthProvider
	token       *service.ProviderToken
	userData    *entity.OAuthUserData
	exchangeErr error
	userInfoErr error

	lastCode string
}

func (c *fakeOAuthClient) Provider() entity.OAuthProvider {
	return c.provider
}

func (c *fakeOAuthClient) AuthorizationURL(state string) string {
	return fmt.Sprintf("https://auth.example.com/%s?state=%s", c.provider, state)
}

func (c *fakeOAuthClient) ExchangeCode(_ context.Context, code string) (*service.ProviderToken, error) {
	c.lastCode = code
	if c.exchangeErr != nil {
		return nil, c.exchangeErr
	}

	return c.token, nil
}

func (c *fakeOAuthClient) FetchUserInfo(_ context.Context, _ string) (*entity.OAuthUserData, error) {
	if c.userInfoErr != nil {
		return nil, c.userInfoErr
	}

	return c.userData, nil
}

type sessionServiceFixture struct {
	service  *sessionService
	factory  *fakeRepoFactory
	tokenSvc *fakeTokenService
	google   *fakeOAuthClient
}

func createTestSessionService() *sessionServiceFixture {
	factory := newFakeRepoFactory()
	tokenSvc := newFakeTokenService()
	google := &fakeOAuthClient{
		provider: entity.OAuthProviderGoogle,
		token:    &service.ProviderToken{AccessToken: "provider-access", TokenType: "bearer"},
		userData: &entity.OAuthUserData{Provider: entity.OAuthProviderGoogle, ID: "google-uid-1"},
	}

	clients := map[entity.OAuthProvider]service.OAuthProviderClient{
		entity.OAuthProviderGoogle: google,
	}
	svc := NewSessionService(&fakeTxManager{factory: factory}, tokenSvc, fakePasswordHasher{}, clients, slog.Default())

	return &sessionServiceFixture{
		service:  svc.(*sessionService),
		factory:  factory,
		tokenSvc: tokenSvc,
		google:   google,
	}
}

var errUpstream = errors.New("upstream unavailable")
