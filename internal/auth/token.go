// Package auth manages bearer tokens for the Hub API.
package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/hubapi/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenRefresh = errors.New("static token cannot be refreshed")
	ErrNoToken            = errors.New("no token available")
	ErrExchangeFailed     = errors.New("token exchange failed")
)

// TokenManager provides bearer tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager returns a fixed bearer token.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a manager around a pre-acquired bearer token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}

// RefreshToken fails; static tokens have nothing to refresh against.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenRefresh
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

// tokenResponse is the body returned by the token exchange endpoint.
type tokenResponse struct {
	BearerToken           string `json:"bearerToken"`
	ExpiresInMilliseconds int64  `json:"expiresInMilliseconds"`
}

// APITokenManager exchanges a Hub API token for bearer tokens and refreshes
// them ahead of expiry.
type APITokenManager struct {
	serverURL  string
	apiToken   string
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// APITokenOption configures an APITokenManager.
type APITokenOption func(*APITokenManager)

// WithSkipTLSVerify disables TLS certificate verification for the exchange.
func WithSkipTLSVerify(skip bool) APITokenOption {
	return func(m *APITokenManager) {
		if !skip {
			return
		}

		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
		m.httpClient.Transport = transport
	}
}

// WithHTTPTimeout sets the exchange request timeout.
func WithHTTPTimeout(timeout time.Duration) APITokenOption {
	return func(m *APITokenManager) {
		m.httpClient.Timeout = timeout
	}
}

// NewAPITokenManager creates a manager that authenticates with the given API
// token against the given server.
func NewAPITokenManager(serverURL, apiToken string, opts ...APITokenOption) *APITokenManager {
	manager := &APITokenManager{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		apiToken:  apiToken,
		httpClient: &http.Client{
			Timeout: constants.ShortHTTPTimeout,
		},
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// GetToken returns a valid bearer token, exchanging the API token when the
// current one is missing or close to expiry.
func (m *APITokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiresAt.Add(-constants.TokenRefreshWindow)) {
		return m.token, nil
	}

	err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	return m.token, nil
}

// RefreshToken forces a new exchange regardless of expiry.
func (m *APITokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.exchange(ctx)
}

// SetToken stores an externally acquired token.
func (m *APITokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	m.token = token
	m.expiresAt = expiresAt
	m.mu.Unlock()
}

// exchange performs the API token exchange. Caller holds the lock.
func (m *APITokenManager) exchange(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.serverURL+"/api/tokens/authenticate", nil)
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Authorization", "token "+m.apiToken)
	req.Header.Set("Accept", constants.MediaTypeJSON)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("exchanging API token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var tokenResp tokenResponse

	err = json.Unmarshal(body, &tokenResp)
	if err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}

	if tokenResp.BearerToken == "" {
		return fmt.Errorf("%w: empty bearer token", ErrExchangeFailed)
	}

	m.token = tokenResp.BearerToken
	m.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresInMilliseconds) * time.Millisecond)

	return nil
}
