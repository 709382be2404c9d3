package client

import (
	"context"
	"net/http"
	"sync"

	"fintrack-server/src/models"
)

// SettingsStore caches the user's display settings, starting from the
// defaults the server would synthesize.
type SettingsStore struct {
	c *Client

	mu       sync.RWMutex
	settings models.Settings
	err      error
}

func newSettingsStore(c *Client) *SettingsStore {
	return &SettingsStore{
		c: c,
		settings: models.Settings{
			Currency: models.DefaultCurrency,
			Theme:    models.DefaultTheme,
		},
	}
}

func (s *SettingsStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Current returns the cached settings.
func (s *SettingsStore) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Fetch loads settings from the server. Without a token it is a no-op: the
// defaults stand until someone logs in.
func (s *SettingsStore) Fetch(ctx context.Context) (models.Settings, error) {
	if s.c.Token() == "" {
		return s.Current(), nil
	}
	var fetched models.Settings
	if err := s.c.do(ctx, http.MethodGet, "/settings", nil, &fetched); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return s.Current(), err
	}
	s.mu.Lock()
	s.settings = fetched
	s.err = nil
	s.mu.Unlock()
	return fetched, nil
}

func (s *SettingsStore) Update(ctx context.Context, in models.SettingsInput) (models.Settings, error) {
	var updated models.Settings
	if err := s.c.do(ctx, http.MethodPut, "/settings", in, &updated); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return s.Current(), err
	}
	s.mu.Lock()
	s.settings = updated
	s.err = nil
	s.mu.Unlock()
	return updated, nil
}

func (s *SettingsStore) SetCurrency(ctx context.Context, currency string) error {
	_, err := s.Update(ctx, models.SettingsInput{Currency: &currency})
	return err
}

func (s *SettingsStore) SetTheme(ctx context.Context, theme string) error {
	_, err := s.Update(ctx, models.SettingsInput{Theme: &theme})
	return err
}

func (s *SettingsStore) Reset() {
	s.mu.Lock()
	s.settings = models.Settings{
		Currency: models.DefaultCurrency,
		Theme:    models.DefaultTheme,
	}
	s.err = nil
	s.mu.Unlock()
}
