package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront-client/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// --- Mocks ---

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type tokenSink struct {
	token string
	calls int
}

func (s *tokenSink) SetAccessToken(token string) {
	s.token = token
	s.calls++
}

// --- Helpers ---

func TestMain(m *testing.M) {
	restore := logger.Replace(zap.NewNop())
	code := m.Run()
	restore()
	os.Exit(code)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, email, role string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: "u-1",
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testsecret"))
	require.NoError(t, err)
	return token
}

func newSession(store Store, backend Backend, sink TokenSink) *Session {
	s := NewSession(store, backend, sink)
	s.now = func() time.Time { return fixedNow }
	return s
}

// --- Tests ---

func TestParseClaims(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		token := signToken(t, "ana@example.com", "admin", fixedNow.Add(time.Hour))

		claims, err := ParseClaims(token, fixedNow)

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "u-1", claims.UserID)
	})

	t.Run("Expired", func(t *testing.T) {
		token := signToken(t, "ana@example.com", "user", fixedNow.Add(-time.Minute))

		_, err := ParseClaims(token, fixedNow)

		assert.True(t, IsExpired(err))
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseClaims("not-a-jwt", fixedNow)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = ParseClaims("", fixedNow)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSession_Login(t *testing.T) {
	store := &MemoryStore{}
	s := newSession(store, nil, nil)

	assert.False(t, s.IsAuthenticated())
	assert.ErrorIs(t, s.Login("  "), ErrInvalidEmail)

	require.NoError(t, s.Login(" ana@example.com "))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "ana@example.com", s.Email())
	assert.False(t, s.IsAdmin())
	st, _ := store.Load()
	assert.Equal(t, State{Email: "ana@example.com"}, st)
}

func TestSession_LoginReplacesPreviousUser(t *testing.T) {
	sink := &tokenSink{}
	store := &MemoryStore{}
	s := newSession(store, nil, sink)
	boss := signToken(t, "boss@example.com", RoleAdmin, fixedNow.Add(time.Hour))
	require.NoError(t, s.LoginWithToken("", boss))
	require.True(t, s.IsAdmin())

	require.NoError(t, s.Login("guest@example.com"))

	assert.Equal(t, "guest@example.com", s.Email())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.Role())
	assert.Empty(t, sink.token)
	st, _ := store.Load()
	assert.Equal(t, State{Email: "guest@example.com"}, st)
}

func TestSession_LoginWithToken(t *testing.T) {
	t.Run("Role and email from claims", func(t *testing.T) {
		sink := &tokenSink{}
		store := &MemoryStore{}
		s := newSession(store, nil, sink)
		token := signToken(t, "admin@example.com", "ADMIN", fixedNow.Add(time.Hour))

		require.NoError(t, s.LoginWithToken("", "Bearer "+token))

		assert.Equal(t, "admin@example.com", s.Email())
		assert.Equal(t, "ADMIN", s.Role())
		assert.True(t, s.IsAdmin())
		assert.Equal(t, token, sink.token)
		st, _ := store.Load()
		assert.Equal(t, token, st.Token)
	})

	t.Run("Typed email wins", func(t *testing.T) {
		s := newSession(nil, nil, nil)
		token := signToken(t, "claims@example.com", "user", fixedNow.Add(time.Hour))

		require.NoError(t, s.LoginWithToken("typed@example.com", token))
		assert.Equal(t, "typed@example.com", s.Email())
	})

	t.Run("Expired token is refused", func(t *testing.T) {
		sink := &tokenSink{}
		s := newSession(nil, nil, sink)
		token := signToken(t, "ana@example.com", "user", fixedNow.Add(-time.Hour))

		err := s.LoginWithToken("ana@example.com", token)

		assert.True(t, IsExpired(err))
		assert.False(t, s.IsAuthenticated())
		assert.Zero(t, sink.calls)
	})
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mb := new(MockBackend)
		sink := &tokenSink{}
		store := &MemoryStore{}
		s := newSession(store, mb, sink)
		require.NoError(t, s.LoginWithToken("ana@example.com", signToken(t, "", "admin", fixedNow.Add(time.Hour))))
		mb.On("Logout", mock.Anything).Return(nil).Once()

		require.NoError(t, s.Logout(ctx))

		assert.False(t, s.IsAuthenticated())
		assert.False(t, s.IsAdmin())
		assert.Empty(t, s.Role())
		assert.Empty(t, sink.token)
		st, _ := store.Load()
		assert.Equal(t, State{}, st)
		mb.AssertExpectations(t)
	})

	t.Run("Backend failure still clears local state", func(t *testing.T) {
		mb := new(MockBackend)
		store := &MemoryStore{}
		s := newSession(store, mb, nil)
		require.NoError(t, s.Login("ana@example.com"))
		mb.On("Logout", mock.Anything).Return(errors.New("network down")).Once()

		err := s.Logout(ctx)

		assert.EqualError(t, err, "network down")
		assert.False(t, s.IsAuthenticated())
		st, _ := store.Load()
		assert.Empty(t, st.Email)
	})
}

func TestSession_SetRole(t *testing.T) {
	store := &MemoryStore{}
	s := newSession(store, nil, nil)

	s.SetRole("admin")
	assert.False(t, s.IsAdmin(), "anonymous users are never admin")
	st, _ := store.Load()
	assert.Empty(t, st.Role)

	require.NoError(t, s.Login("ana@example.com"))
	assert.True(t, s.IsAdmin())
	st, _ = store.Load()
	assert.Equal(t, "admin", st.Role)
}

func TestSession_Restore(t *testing.T) {
	t.Run("Nothing saved", func(t *testing.T) {
		s := newSession(NewFileStore(filepath.Join(t.TempDir(), "none.json")), nil, nil)

		require.NoError(t, s.Restore())
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("Round trip through the file store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "session.json")
		token := signToken(t, "ana@example.com", "admin", fixedNow.Add(time.Hour))

		first := newSession(NewFileStore(path), nil, nil)
		require.NoError(t, first.LoginWithToken("", token))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		sink := &tokenSink{}
		second := newSession(NewFileStore(path), nil, sink)
		require.NoError(t, second.Restore())

		assert.Equal(t, "ana@example.com", second.Email())
		assert.True(t, second.IsAdmin())
		assert.Equal(t, token, sink.token)
	})

	t.Run("Expired token drops the session", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		store := NewFileStore(path)
		require.NoError(t, store.Save(State{
			Email: "ana@example.com",
			Token: signToken(t, "ana@example.com", "user", fixedNow.Add(-time.Hour)),
		}))

		core, logs := observer.New(zap.InfoLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		s := newSession(store, nil, nil)
		require.NoError(t, s.Restore())

		assert.False(t, s.IsAuthenticated())
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.Equal(t, 1, logs.FilterMessage("saved session expired").Len())
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		err := newSession(NewFileStore(path), nil, nil).Restore()
		assert.ErrorContains(t, err, "decode session")
	})
}

func TestGuard(t *testing.T) {
	s := newSession(nil, nil, nil)

	assert.ErrorIs(t, Require(s), ErrUserNotAuthenticated)
	assert.ErrorIs(t, RequireAdmin(s), ErrUserNotAuthenticated)

	require.NoError(t, s.Login("ana@example.com"))
	assert.NoError(t, Require(s))
	assert.ErrorIs(t, RequireAdmin(s), ErrForbidden)

	s.SetRole("Admin")
	assert.NoError(t, RequireAdmin(s))

	assert.ErrorIs(t, Require(nil), ErrUserNotAuthenticated)
}
