package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"melio/internal/api"
	"melio/internal/logger"
	"melio/internal/model"
	"melio/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService owns the single-slot session: the logged-in student and the
// token pair. It is the api.Client's TokenStore, so a failed silent refresh
// purges the session through the same path as an explicit logout.
type AuthService struct {
	mu     sync.RWMutex
	store  storage.Store
	client *api.Client

	user    *model.User
	access  string
	refresh string
}

func NewAuthService(store storage.Store) *AuthService {
	s := &AuthService{store: store}
	s.load()
	return s
}

// SetClient breaks the construction cycle: the client needs the token store,
// the session needs the client for login and refresh.
func (s *AuthService) SetClient(c *api.Client) { s.client = c }

func (s *AuthService) load() {
	if raw, err := s.store.Get(storage.KeyUser); err == nil {
		var u model.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			s.user = &u
		}
	}
	s.access, _ = s.store.Get(storage.KeyAccessToken)
	s.refresh, _ = s.store.Get(storage.KeyRefreshToken)
}

// Login authenticates the student and persists the session.
func (s *AuthService) Login(ctx context.Context, schoolCode, studentIdentifier string) (model.User, error) {
	resp, err := s.client.StudentLogin(ctx, schoolCode, studentIdentifier)
	if err != nil {
		return model.User{}, fmt.Errorf("student login: %w", err)
	}
	if resp.Student == nil {
		return model.User{}, fmt.Errorf("student login: no student in response")
	}

	user := model.User{
		ID:         resp.Student.ID,
		Name:       strings.TrimSpace(resp.Student.FirstName + " " + resp.Student.LastName),
		Role:       model.RoleStudent,
		SchoolCode: schoolCode,
		SchoolID:   resp.Student.SchoolID,
	}

	s.mu.Lock()
	s.user = &user
	s.access = resp.AccessToken
	s.refresh = resp.RefreshToken
	s.mu.Unlock()

	raw, _ := json.Marshal(user)
	s.store.Set(storage.KeyUser, string(raw))
	s.store.Set(storage.KeyAccessToken, resp.AccessToken)
	s.store.Set(storage.KeyRefreshToken, resp.RefreshToken)

	logger.Info("auth.login", "uid", user.ID, "school", schoolCode)
	return user, nil
}

// Restore revives a persisted session on startup. An expired access token
// is refreshed silently; if that fails the session is purged and the caller
// lands on the unauthenticated entry point.
func (s *AuthService) Restore(ctx context.Context) (*model.User, error) {
	s.mu.RLock()
	user, access, refresh := s.user, s.access, s.refresh
	s.mu.RUnlock()

	if user == nil || access == "" {
		return nil, nil
	}
	if !tokenExpired(access) {
		return user, nil
	}
	if refresh == "" {
		s.Logout()
		return nil, nil
	}

	resp, err := s.client.Refresh(ctx, refresh)
	if err != nil || resp.AccessToken == "" {
		logger.Warn("auth.restore_refresh_failed", "err", err)
		s.Logout()
		return nil, nil
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	logger.Info("auth.restored", "uid", user.ID)
	return user, nil
}

func (s *AuthService) Logout() {
	s.mu.Lock()
	s.user = nil
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()

	s.store.Delete(storage.KeyUser)
	s.store.Delete(storage.KeyAccessToken)
	s.store.Delete(storage.KeyRefreshToken)
	logger.Info("auth.logout")
}

// CurrentUser returns the session user, or nil when logged out.
func (s *AuthService) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SchoolID prefers the session user's school id and falls back to the
// schoolId claim of the access token, which some backends omit from the
// login payload.
func (s *AuthService) SchoolID() string {
	s.mu.RLock()
	user, access := s.user, s.access
	s.mu.RUnlock()

	if user != nil && user.SchoolID != "" {
		return user.SchoolID
	}
	if access == "" {
		return ""
	}
	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return ""
	}
	if id, ok := claims["schoolId"].(string); ok {
		return id
	}
	return ""
}

// --- api.TokenStore ---

func (s *AuthService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *AuthService) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *AuthService) SetTokens(access, refresh string) {
	s.mu.Lock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	s.mu.Unlock()

	s.store.Set(storage.KeyAccessToken, access)
	if refresh != "" {
		s.store.Set(storage.KeyRefreshToken, refresh)
	}
}

func (s *AuthService) Purge() { s.Logout() }

// tokenExpired inspects the exp claim without verifying the signature; the
// client holds no signing key and the backend re-checks every request.
func tokenExpired(token string) bool {
	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) <= 0
}
