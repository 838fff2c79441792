package user

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/internal/testutil"
	"turmeric-trace/pkg/jwt"
	"turmeric-trace/pkg/strapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
	prefs    map[string]*entities.UserPreference
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		sessions: map[string]*entities.Session{},
		prefs:    map[string]*entities.UserPreference{},
	}
}

func (m *memoryRepository) CreateSession(_ context.Context, s *entities.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID.String()] = &cp
	return nil
}

func (m *memoryRepository) GetSessionByID(_ context.Context, id string) (*entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memoryRepository) RevokeSession(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && s.RevokedAt == nil {
		s.RevokedAt = &at
	}
	return nil
}

func (m *memoryRepository) DeleteExpiredSessions(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryRepository) GetPreference(_ context.Context, userID string) (*entities.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepository) SavePreference(_ context.Context, p *entities.UserPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.prefs[p.UserID] = &cp
	return nil
}

func newTestService(t *testing.T, role string) (*userService, *memoryRepository, *testutil.Backend) {
	t.Helper()

	backend := testutil.NewBackend(t)
	backend.JSON(http.MethodPost, "/api/auth/local", http.StatusOK, map[string]any{
		"jwt":  "backend-jwt",
		"user": map[string]any{"id": 7, "username": "somchai"},
	})
	backend.JSON(http.MethodGet, "/api/users/me", http.StatusOK, map[string]any{
		"id": 7, "username": "somchai", "email": "s@example.com", "user_role": role,
	})

	repo := newMemoryRepository()
	svc, err := newUserService(repo, backend.Client(t), jwt.NewJWTServiceWithSecret("secret", time.Hour), "seal-key")
	require.NoError(t, err)
	return svc, repo, backend
}

func TestLoginOpensSession(t *testing.T) {
	svc, repo, backend := newTestService(t, "Farmer")
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Identifier: "somchai", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleFarmer, res.User.Role)
	assert.Equal(t, "/farmer/dashboard", res.Redirect)
	assert.NotEmpty(t, res.Token)
	assert.Len(t, repo.sessions, 1)

	for _, s := range repo.sessions {
		assert.NotContains(t, string(s.SealedToken), "backend-jwt")
	}

	session, err := svc.ResolveSession(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", session.UserID)
	assert.Equal(t, domain.RoleFarmer, session.Role)
	assert.Equal(t, "backend-jwt", session.BackendToken)

	recs := backend.Requests()
	require.Len(t, recs, 2)
	assert.Equal(t, "Bearer backend-jwt", recs[1].Auth)
}

func TestLoginRejectsAccountWithoutRole(t *testing.T) {
	svc, repo, _ := newTestService(t, "Authenticated")

	_, err := svc.Login(context.Background(), domain.LoginRequest{Identifier: "x", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	assert.Empty(t, repo.sessions)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, backend := newTestService(t, "Farmer")
	backend.JSON(http.MethodPost, "/api/auth/local", http.StatusBadRequest, map[string]any{
		"data": nil, "error": map[string]any{"status": 400, "message": "Invalid identifier or password"},
	})

	_, err := svc.Login(context.Background(), domain.LoginRequest{Identifier: "x", Password: "y"})
	assert.ErrorIs(t, err, strapi.ErrBadRequest)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newTestService(t, "Factory")
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Identifier: "f", Password: "pw"})
	require.NoError(t, err)

	session, err := svc.ResolveSession(ctx, res.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, session.ID))

	_, err = svc.ResolveSession(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestResolveSessionExpiredRow(t *testing.T) {
	svc, _, _ := newTestService(t, "Admin")
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Identifier: "a", Password: "pw"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ResolveSession(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestResolveSessionUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t, "Admin")

	token, _, err := svc.jwtService.GenerateSessionToken(jwt.SessionClaims{SessionID: "missing", UserID: "1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestPreferences(t *testing.T) {
	svc, _, _ := newTestService(t, "Farmer")
	ctx := context.Background()

	pref, err := svc.GetPreferences(ctx, "7")
	require.NoError(t, err)
	assert.True(t, pref.SidebarOpen)

	closed := false
	pref, err = svc.SavePreferences(ctx, "7", domain.PreferencesRequest{SidebarOpen: &closed})
	require.NoError(t, err)
	assert.False(t, pref.SidebarOpen)

	pref, err = svc.GetPreferences(ctx, "7")
	require.NoError(t, err)
	assert.False(t, pref.SidebarOpen)
}

func TestResetPasswordForwards(t *testing.T) {
	svc, _, backend := newTestService(t, "Farmer")
	backend.JSON(http.MethodPost, "/api/auth/reset-password", http.StatusOK, map[string]any{"jwt": "new"})

	err := svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{Code: "c", Password: "secret1", PasswordConfirmation: "secret1"})
	require.NoError(t, err)

	var body map[string]string
	backend.LastBody(t, http.MethodPost, "/api/auth/reset-password", &body)
	assert.Equal(t, "c", body["code"])
	assert.Equal(t, "secret1", body["passwordConfirmation"])
}

func TestSealerRoundTrip(t *testing.T) {
	s, err := newSealer("k")
	require.NoError(t, err)
	box, err := s.Seal([]byte("token"))
	require.NoError(t, err)

	plain, err := s.Open(box)
	require.NoError(t, err)
	assert.Equal(t, "token", string(plain))

	box[len(box)-1] ^= 0xff
	_, err = s.Open(box)
	assert.Error(t, err)

	other, err := newSealer("other")
	require.NoError(t, err)
	_, err = other.Open(box[:10])
	assert.Error(t, err)
}

func TestEmptySealKeyIsRejected(t *testing.T) {
	_, err := newSealer("")
	assert.ErrorIs(t, err, ErrSealKeyMissing)

	svc, err := newUserService(newMemoryRepository(), nil, jwt.NewJWTServiceWithSecret("secret", time.Hour), "")
	assert.ErrorIs(t, err, ErrSealKeyMissing)
	assert.Nil(t, svc)

	t.Setenv("AES_KEY", "")
	_, err = NewUserService(newMemoryRepository(), nil, jwt.NewJWTServiceWithSecret("secret", time.Hour))
	assert.ErrorIs(t, err, ErrSealKeyMissing)
}
