package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
)

func newSession() *SessionStore {
	return NewSessionStore(kv.NewMemory(), auth.NewService("test-secret", 0))
}

func TestSessionStore_Login(t *testing.T) {
	s := newSession()
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := s.Login(ctx, "faisal@aktobe.om", fixtures.DefaultPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "u_1", resp.User.ID)

		user, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u_1", user.ID)
		assert.True(t, s.IsAuthenticated(ctx))
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		_, err := s.Login(ctx, "FAISAL@aktobe.om", fixtures.DefaultPassword)
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "faisal@aktobe.om", "nope")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@aktobe.om", fixtures.DefaultPassword)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := s.Login(ctx, "", "")
		assert.True(t, IsValidation(err))
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := s.Login(ctx, "not-an-email", fixtures.DefaultPassword)
		assert.True(t, IsValidation(err))
	})
}

func TestSessionStore_LoginSurvivesReseed(t *testing.T) {
	svc := New(kv.NewMemory(), auth.NewService("test-secret", 0), Options{})
	ctx := context.Background()

	// Seeding rewrites the user collection; the stored records must keep
	// their password hashes or every account is locked out afterwards.
	require.NoError(t, svc.Seed(ctx))

	resp, err := svc.Session.Login(ctx, "faisal@aktobe.om", fixtures.DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, "u_1", resp.User.ID)

	// The API listing still never exposes a hash.
	users, err := svc.Session.Users(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestSessionStore_Logout(t *testing.T) {
	s := newSession()
	ctx := context.Background()

	// Logout with no session is a no-op.
	require.NoError(t, s.Logout(ctx))

	_, err := s.Login(ctx, "mariam@aktobe.om", fixtures.DefaultPassword)
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated(ctx))

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated(ctx))

	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionStore_Language(t *testing.T) {
	s := newSession()
	ctx := context.Background()

	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, LanguageEnglish, lang)

	require.NoError(t, s.SetLanguage(ctx, LanguageArabic))
	lang, err = s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, LanguageArabic, lang)

	err = s.SetLanguage(ctx, "fr")
	assert.True(t, IsValidation(err))
}

func TestServiceSeed(t *testing.T) {
	store := kv.NewMemory()
	svc := New(store, auth.NewService("test-secret", 0), Options{})
	ctx := context.Background()

	// Mutate, then seed back to fixtures.
	_, err := svc.Billing.UpdateInvoiceStatus(ctx, "inv_002", "paid")
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx))

	inv, err := svc.Billing.GetInvoice(ctx, "inv_002")
	require.NoError(t, err)
	assert.Equal(t, "pending", string(inv.Status))

	vehicles, err := svc.Fleet.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vehicles, 3)

	users, err := svc.Session.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
