package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestSettingsFetchWithoutTokenIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", "")
	settings, err := c.Settings.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, "¥", settings.Currency)
	assert.Equal(t, "light", settings.Theme)
}

func TestSettingsUpdateMergesIntoCache(t *testing.T) {
	id := int64(3)
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/settings", func(w http.ResponseWriter, r *http.Request) {
		var in models.SettingsInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.NotNil(t, in.Theme)
		assert.Nil(t, in.Currency)
		writeJSON(t, w, http.StatusOK, models.Settings{
			ID:       &id,
			UserID:   1,
			Currency: "¥",
			Theme:    *in.Theme,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", "")
	c.setToken("tok")

	require.NoError(t, c.Settings.SetTheme(context.Background(), "dark"))
	assert.Equal(t, "dark", c.Settings.Current().Theme)
	assert.Equal(t, "¥", c.Settings.Current().Currency)

	c.Settings.Reset()
	assert.Equal(t, "light", c.Settings.Current().Theme)
}
