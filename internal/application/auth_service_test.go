package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campdir/internal/domain/entity"
	"campdir/internal/domain/repository"
	"campdir/pkg/apperr"
	"campdir/pkg/helpers"
)

type fakeUserRepo struct {
	repository.UserRepository

	byEmail map[string]*entity.User

	setTokenCalls   int
	clearTokenCalls int
	storedToken     string
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.New(apperr.NotFound, "there is no user with that email")
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error {
	f.setTokenCalls++
	f.storedToken = hashedToken
	return nil
}

func (f *fakeUserRepo) ClearResetToken(ctx context.Context, id string) error {
	f.clearTokenCalls++
	return nil
}

type fakeQueue struct {
	err  error
	sent []any
}

func (f *fakeQueue) PublishJSON(ctx context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, body)
	return nil
}

func newAuthService(users *fakeUserRepo, q EmailQueue) *AuthService {
	return &AuthService{
		Users:    users,
		JWT:      helpers.NewJWTManager("test-secret", time.Hour),
		Emails:   q,
		ResetTTL: 10 * time.Minute,
		ResetURL: "http://localhost:5000/api/v1/auth/resetpassword",
	}
}

func testUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{ID: "u1", Name: "Demo", Email: email, Role: entity.RoleUser, Password: hash}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"demo@example.com": testUser(t, "demo@example.com", "password123"),
	}}
	svc := newAuthService(users, &fakeQueue{})

	s, err := svc.Login(context.Background(), &LoginInput{Email: "demo@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)
	require.True(t, s.Expires.After(time.Now()))

	claims, err := svc.JWT.Parse(s.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, entity.RoleUser, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"demo@example.com": testUser(t, "demo@example.com", "password123"),
	}}
	svc := newAuthService(users, &fakeQueue{})

	_, err := svc.Login(context.Background(), &LoginInput{Email: "demo@example.com", Password: "nope"})
	require.Error(t, err)
	require.Equal(t, apperr.Authentication, apperr.KindOf(err))
}

// An unknown email reads the same as a wrong password, so login never leaks
// which accounts exist.
func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&fakeUserRepo{byEmail: map[string]*entity.User{}}, &fakeQueue{})

	_, err := svc.Login(context.Background(), &LoginInput{Email: "ghost@example.com", Password: "x"})
	require.Error(t, err)
	require.Equal(t, apperr.Authentication, apperr.KindOf(err))
}

func TestForgotPasswordQueuesEmail(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"demo@example.com": testUser(t, "demo@example.com", "password123"),
	}}
	q := &fakeQueue{}
	svc := newAuthService(users, q)

	require.NoError(t, svc.ForgotPassword(context.Background(), "demo@example.com"))
	require.Equal(t, 1, users.setTokenCalls)
	require.Zero(t, users.clearTokenCalls)
	require.Len(t, q.sent, 1)
	// the stored token is a digest, never the raw token from the email
	require.Len(t, users.storedToken, 64)
}

func TestForgotPasswordRollsBackTokenWhenQueueFails(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{
		"demo@example.com": testUser(t, "demo@example.com", "password123"),
	}}
	svc := newAuthService(users, &fakeQueue{err: errors.New("broker down")})

	err := svc.ForgotPassword(context.Background(), "demo@example.com")
	require.Error(t, err)
	require.Equal(t, apperr.External, apperr.KindOf(err))
	require.Equal(t, 1, users.setTokenCalls)
	require.Equal(t, 1, users.clearTokenCalls)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(&fakeUserRepo{byEmail: map[string]*entity.User{}}, &fakeQueue{})

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	require.Error(t, err)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
