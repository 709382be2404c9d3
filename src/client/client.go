// Package client is a Go client for the finance tracker API. It mirrors the
// server collections in local caches so callers can read synchronously, and
// keeps them in sync on every mutating call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"fintrack-server/src/models"
)

const defaultTimeout = 10 * time.Second

// APIError carries the status and message of a failure envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	// tokenFile persists the session token across processes the way the
	// browser app keeps it in local storage. Empty means in-memory only.
	tokenFile string

	mu    sync.RWMutex
	token string

	Transactions *TransactionStore
	Budgets      *BudgetStore
	Settings     *SettingsStore
}

// New returns a client for the API at baseURL (e.g. "http://localhost:3000/api").
// If tokenFile is non-empty, a previously saved token is picked up from it.
func New(baseURL, tokenFile string) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		tokenFile:  tokenFile,
	}
	if tokenFile != "" {
		if b, err := os.ReadFile(tokenFile); err == nil {
			c.token = strings.TrimSpace(string(b))
		}
	}
	c.Transactions = newTransactionStore(c)
	c.Budgets = newBudgetStore(c)
	c.Settings = newSettingsStore(c)
	return c
}

// Token returns the current session token; its presence is the sole
// client-side session indicator.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.tokenFile != "" {
		if token == "" {
			os.Remove(c.tokenFile)
		} else {
			os.WriteFile(c.tokenFile, []byte(token), 0o600)
		}
	}
}

// do performs one API call with a fixed per-call deadline. Any 401 or 403
// clears the token, a forced logout, no matter which endpoint produced it.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.setToken("")
		}
		var envelope struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password, email string) (*models.PublicUser, error) {
	var resp struct {
		User models.PublicUser `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", models.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the issued token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*models.PublicUser, error) {
	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp.User, nil
}

// Logout drops the token and resets every cached collection. The server call
// is best-effort: the token's expiry is the only server-side session state.
func (c *Client) Logout(ctx context.Context) {
	c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.setToken("")
	c.Transactions.Reset()
	c.Budgets.Reset()
	c.Settings.Reset()
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
