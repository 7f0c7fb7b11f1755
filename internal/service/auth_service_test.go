package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/token"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users  map[uint64]model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}, nextID: 1}
}

func (f *fakeUserStore) add(u model.User) model.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, username, email, fullName, passwordHash string) (uint64, error) {
	for _, u := range f.users {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	u := f.add(model.User{Username: username, Email: email, FullName: fullName, PasswordHash: passwordHash, IsActive: true})
	return u.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByIdentifier(_ context.Context, identifier string) (model.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) IncrementTokenVersion(_ context.Context, id uint64) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.TokenVersion++
	f.users[id] = u
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	bl := token.NewBlacklist()
	codec, err := token.NewCodec("auth-service-test-secret", "HS256", 15, 7, bl)
	require.NoError(t, err)
	return NewAuthService(store, codec, bl), store
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := utils.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Username: "  ada  ",
		Email:    "ada@example.com",
		Password: "Password1",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	require.Equal(t, "ada", u.Username, "whitespace is trimmed")
	require.True(t, u.IsActive)
	require.False(t, u.IsAdmin)
	require.Zero(t, u.TokenVersion)
	require.NotEqual(t, "Password1", u.PasswordHash)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@b.com", Password: "Password1"}, "username"},
		{"no at sign", RegisterInput{Username: "ada", Email: "nope", Password: "Password1"}, "email"},
		{"email with spaces", RegisterInput{Username: "ada", Email: "a b@c.com", Password: "Password1"}, "email"},
		{"short password", RegisterInput{Username: "ada", Email: "a@b.com", Password: "Pw1"}, "password"},
		{"no uppercase", RegisterInput{Username: "ada", Email: "a@b.com", Password: "password1"}, "password"},
		{"no lowercase", RegisterInput{Username: "ada", Email: "a@b.com", Password: "PASSWORD1"}, "password"},
		{"no digit", RegisterInput{Username: "ada", Email: "a@b.com", Password: "Passwords"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ada", Email: "other@example.com", Password: "Password1"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "username", ve.Field)

	_, err = svc.Register(ctx, RegisterInput{Username: "grace", Email: "ada@example.com", Password: "Password1"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email", ve.Field)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: true})

	// By username and by email.
	for _, ident := range []string{"ada", "ada@example.com"} {
		pair, err := svc.Login(ctx, ident, "Password1")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, 15*60, pair.ExpiresIn)
		require.Equal(t, "ada", pair.User.Username)
	}

	// Unknown user and bad password are indistinguishable.
	_, err := svc.Login(ctx, "nobody", "Password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ada", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginInactive(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: false})

	// Inactive is only reported once the password matched.
	_, err := svc.Login(ctx, "ada", "Password1")
	require.ErrorIs(t, err, ErrInactiveUser)
	_, err = svc.Login(ctx, "ada", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: true})

	pair, err := svc.Login(ctx, "ada", "Password1")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The rotated-out token is spent; the loser of a race gets the same error.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The new token still works.
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_RefreshRejections(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	u := store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: true})

	pair, err := svc.Login(ctx, "ada", "Password1")
	require.NoError(t, err)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Token version bumped after issuance (logout-all) invalidates it.
	require.NoError(t, svc.LogoutAll(ctx, u.ID))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_RefreshInactiveUser(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	u := store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: true})

	pair, err := svc.Login(ctx, "ada", "Password1")
	require.NoError(t, err)

	u.IsActive = false
	store.users[u.ID] = u

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()
	store.add(model.User{Username: "ada", Email: "ada@example.com", PasswordHash: mustHash(t, "Password1"), IsActive: true})

	pair, err := svc.Login(ctx, "ada", "Password1")
	require.NoError(t, err)

	access, err := svc.Codec.Decode(pair.AccessToken, true)
	require.NoError(t, err)

	svc.Logout(access, pair.RefreshToken)

	// Both tokens are revoked afterwards.
	_, err = svc.Codec.Decode(pair.AccessToken, true)
	require.ErrorIs(t, err, token.ErrInvalidToken)
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Logging out again, or with junk, is a no-op.
	svc.Logout(access, pair.RefreshToken)
	svc.Logout(nil, "garbage")
}

func TestAuthService_LogoutAllUnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	require.ErrorIs(t, svc.LogoutAll(context.Background(), 999), ErrNotFound)
}
