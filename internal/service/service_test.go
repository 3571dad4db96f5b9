package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"melio/internal/api"
	"melio/internal/model"
	"melio/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// testEnv wires a memory store, a session and a client against a fake
// backend, mirroring the app wiring order.
type testEnv struct {
	store  *storage.Memory
	auth   *AuthService
	client *api.Client
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := storage.NewMemory()
	auth := NewAuthService(store)
	client := api.NewClient(srv.URL, 5*time.Second, auth)
	auth.SetClient(client)
	return &testEnv{store: store, auth: auth, client: client}
}

// seedSession persists a logged-in student before the session loads, the
// way a previous run would have left the device store.
func seedSession(t *testing.T, store storage.Store, user model.User, access, refresh string) {
	t.Helper()
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyUser, string(raw)))
	require.NoError(t, store.Set(storage.KeyAccessToken, access))
	require.NoError(t, store.Set(storage.KeyRefreshToken, refresh))
}

func testStudent() model.User {
	return model.User{
		ID:         "stu-1",
		Name:       "Emma Martin",
		Role:       model.RoleStudent,
		SchoolCode: "JMO75-01",
		SchoolID:   "school-1",
	}
}

// signedToken mints an HS256 token with the given claims. The client never
// verifies signatures, so the key is irrelevant.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

func freshToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{
		"sub": "stu-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func expiredToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{
		"sub": "stu-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
}
