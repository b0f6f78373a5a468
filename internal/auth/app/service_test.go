package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/dekorshop/dekorshop/internal/user/app"
	userdomain "github.com/dekorshop/dekorshop/internal/user/domain"
)

type fakeUsers struct {
	byEmail map[string]userdomain.User
	hashes  map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]userdomain.User{}, hashes: map[string]string{}}
}

func (f *fakeUsers) Create(ctx context.Context, u userdomain.User, passwordHash string) (userdomain.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return userdomain.User{}, userapp.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	f.byEmail[u.Email] = u
	f.hashes[u.Email] = passwordHash
	return u, nil
}

func (f *fakeUsers) Credentials(ctx context.Context, email string) (userdomain.User, string, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return userdomain.User{}, "", userapp.ErrNotFound
	}
	return u, f.hashes[email], nil
}

func newService() (*Service, *fakeUsers) {
	users := newFakeUsers()
	return NewService(users, "test-secret", time.Hour), users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	u, token, err := svc.Register(ctx, "anna@example.com", "titkos-jelszo", "Kiss Anna")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.Equal(t, "Kiss Anna", u.DisplayName)

	t.Run("login with right password", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "anna@example.com", "titkos-jelszo")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "anna@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login for unknown user looks the same", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "anna@example.com", "titkos-jelszo", "Anna")
		assert.ErrorIs(t, err, userapp.ErrEmailTaken)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.Register(ctx, "not-an-email", "titkos-jelszo", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Register(ctx, "ok@example.com", "short", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, users := newService()

	u, token, err := svc.Register(ctx, "admin@example.com", "titkos-jelszo", "Admin")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.False(t, claims.Admin)

	t.Run("admin flag carried", func(t *testing.T) {
		stored := users.byEmail["admin@example.com"]
		stored.IsAdmin = true
		users.byEmail["admin@example.com"] = stored

		_, token, err := svc.Login(ctx, "admin@example.com", "titkos-jelszo")
		require.NoError(t, err)
		claims, err := svc.ParseToken(token)
		require.NoError(t, err)
		assert.True(t, claims.Admin)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err := svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := NewService(users, "other-secret", time.Hour)
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
