package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLoginStoresTokenAndSendsBearer(t *testing.T) {
	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   "tok-123",
			"user":    models.PublicUser{ID: 1, Username: "alice", Email: "a@x.com"},
		})
	})
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []models.Transaction{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", "")
	user, err := c.Login(context.Background(), "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "tok-123", c.Token())

	_, err = c.Transactions.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", sawAuth)
}

func TestUnauthorizedResponseForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]interface{}{
			"success": false,
			"message": "invalid or expired token",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", "")
	c.setToken("stale-token")

	_, err := c.Transactions.Fetch(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "invalid or expired token", apiErr.Message)

	// any 401/403 drops the session, whatever endpoint produced it
	assert.Empty(t, c.Token())
	assert.Equal(t, err, c.Transactions.Err())
}

func TestTokenFilePersistence(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"token": "persisted-tok",
			"user":  models.PublicUser{ID: 1, Username: "alice", Email: "a@x.com"},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"success": true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", tokenFile)
	_, err := c.Login(context.Background(), "alice", "p1")
	require.NoError(t, err)

	// a fresh client picks the token back up, like a new browser tab
	c2 := New(srv.URL+"/api", tokenFile)
	assert.Equal(t, "persisted-tok", c2.Token())

	c.Logout(context.Background())
	assert.Empty(t, c.Token())
	_, statErr := os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegisterReturnsPublicUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"user":    models.PublicUser{ID: 9, Username: req.Username, Email: req.Email},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", "")
	user, err := c.Register(context.Background(), "bob", "pw", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, "bob", user.Username)
	// registration alone does not open a session
	assert.Empty(t, c.Token())
}
