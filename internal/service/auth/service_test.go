package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = "0198a2c4-7f00-7000-8000-00000000000" + string(rune('1'+len(f.users)))
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username, _ string) (bool, error) {
	_, err := f.GetByLogin(context.Background(), username)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email, _ string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

type fakeRefreshRepo struct {
	tokens  map[string]bool // token -> revoked
	revoked []string
}

func (f *fakeRefreshRepo) CreateRefreshToken(_ context.Context, _ string, token string, _ int64, _ auth.SessionTrackingRequest) error {
	f.tokens[token] = false
	return nil
}

func (f *fakeRefreshRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	revoked, ok := f.tokens[token]
	return !ok || revoked, nil
}

func (f *fakeRefreshRepo) RevokeRefreshToken(_ context.Context, token string) error {
	f.tokens[token] = true
	return nil
}

func (f *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	for token := range f.tokens {
		f.tokens[token] = true
	}
	return nil
}

type fakeMailer struct {
	resetLinks []string
}

func (m *fakeMailer) SendPasswordReset(_, link, _ string) error {
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

func (m *fakeMailer) SendLeaveRequestNotice(string, email.LeaveRequestData) error { return nil }

type fixture struct {
	svc    auth.AuthService
	users  *fakeUserRepo
	tokens *fakeRefreshRepo
	mailer *fakeMailer
	jwtSvc *jwt.JWTService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	jwtSvc, err := jwt.NewJWTService("test-secret", "1h", "24h", "600s", false)
	require.NoError(t, err)

	f := fixture{
		users:  newFakeUserRepo(),
		tokens: &fakeRefreshRepo{tokens: make(map[string]bool)},
		mailer: &fakeMailer{},
		jwtSvc: jwtSvc,
	}
	f.svc = NewAuthService(passthroughTx{}, f.users, jwtSvc, f.tokens, f.mailer, "http://localhost:3000/")
	return f
}

func strPtr(s string) *string { return &s }

func registerAna(t *testing.T, f fixture) user.UserResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Username: "ana",
		Email:    "ana@empresa.com",
		Password: "secreto123",
		Profile:  user.Profile{FirstName: strPtr("Ana"), LastName: strPtr("Gómez")},
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	resp := registerAna(t, f)

	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "Ana Gómez", resp.FullName)
	stored := f.users.users[resp.ID]
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "secreto123"))

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Username: "ANA", Email: "otra@empresa.com", Password: "secreto123",
		Profile: user.Profile{FirstName: strPtr("Ana"), LastName: strPtr("Ruiz")},
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = f.svc.Register(context.Background(), auth.RegisterRequest{
		Username: "ana2", Email: "ana@empresa.com", Password: "secreto123",
		Profile: user.Profile{FirstName: strPtr("Ana"), LastName: strPtr("Ruiz")},
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	registerAna(t, f)
	ctx := context.Background()

	for _, login := range []string{"ana", "ana@empresa.com"} {
		tokens, err := f.svc.Login(ctx, auth.LoginRequest{Login: login, Password: "secreto123"}, auth.SessionTrackingRequest{})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.Contains(t, f.tokens.tokens, tokens.RefreshToken)
		assert.Equal(t, "ana", tokens.User.Username)
	}

	_, err := f.svc.Login(ctx, auth.LoginRequest{Login: "ana", Password: "incorrecta"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Login: "nadie", Password: "secreto123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshAndLogout(t *testing.T) {
	f := newFixture(t)
	registerAna(t, f)
	ctx := context.Background()

	tokens, err := f.svc.Login(ctx, auth.LoginRequest{Login: "ana", Password: "secreto123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture(t)
	ana := registerAna(t, f)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "desconocido@empresa.com"}))
	assert.Empty(t, f.mailer.resetLinks)

	require.NoError(t, f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "ana@empresa.com"}))
	require.Len(t, f.mailer.resetLinks, 1)
	link := f.mailer.resetLinks[0]
	assert.True(t, strings.HasPrefix(link, "http://localhost:3000/reset-password?token="))

	token, _, err := f.jwtSvc.GenerateResetPasswordToken(ana.ID)
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "garbage", Password: "nuevaClave1", ConfirmPassword: "nuevaClave1"})
	assert.ErrorIs(t, err, auth.ErrResetTokenInvalid)

	require.NoError(t, f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, Password: "nuevaClave1", ConfirmPassword: "nuevaClave1"}))
	assert.Equal(t, []string{ana.ID}, f.tokens.revoked)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Login: "ana", Password: "nuevaClave1"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}
