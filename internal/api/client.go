// Package api wraps every outbound call to the storefront REST
// backend. It attaches the bearer token, performs the one-shot
// refresh-and-retry on authentication failure, and shape-validates
// responses before they reach client state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shanmukha18/unibuy-client/internal/dto"
	"github.com/Shanmukha18/unibuy-client/internal/store"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Config holds settings for the API client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
	// OnSessionExpired fires after an irrecoverable refresh failure,
	// once the persisted session has been purged. It is the headless
	// analog of the forced redirect to the login page.
	OnSessionExpired func()
}

// Client is the storefront API gateway client
type Client struct {
	baseURL          string
	http             *http.Client
	creds            store.Store
	log              *logger.Logger
	onSessionExpired func()
}

// NewClient creates an API client backed by the given credential store
func NewClient(cfg *Config, creds store.Store) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		http:             hc,
		creds:            creds,
		log:              logger.Get(),
		onSessionExpired: cfg.OnSessionExpired,
	}, nil
}

// do issues one API call: marshal body, attach bearer token, decode
// the response into out (when out is non-nil). A 401 on a request
// that carried a bearer token triggers exactly one refresh-and-retry
// cycle; a 401 on the retried request is surfaced as ErrSessionExpired
// after the persisted session is purged. A 401 on a request that
// never carried a token (a failed login, say) is an ordinary API
// error, not a stale session.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	status, data, authed, err := c.send(ctx, method, path, query, body, true)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		status, data, _, err = c.send(ctx, method, path, query, body, true)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// The refreshed token is still rejected; do not loop.
			c.expireSession(ctx)
			return ErrSessionExpired
		}
	}

	if status < 200 || status > 299 {
		return c.apiError(status, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// send performs a single HTTP round trip. The returned bool reports
// whether a bearer token was actually attached; only then is a 401 a
// sign of a stale session.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}, withAuth bool) (int, []byte, bool, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, false, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	authed := false
	if withAuth {
		if token, err := c.creds.Get(ctx, store.KeyAccessToken); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authed = true
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, authed, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, authed, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, authed, nil
}

// refresh exchanges the stored refresh token for a new access token.
// Any failure purges the persisted session and fires the
// session-expired hook.
func (c *Client) refresh(ctx context.Context) error {
	refreshToken, err := c.creds.Get(ctx, store.KeyRefreshToken)
	if err != nil || refreshToken == "" {
		c.expireSession(ctx)
		return ErrSessionExpired
	}

	status, data, _, err := c.send(ctx, http.MethodPost, "/auth/refresh", nil,
		&dto.RefreshRequest{RefreshToken: refreshToken}, false)
	if err != nil {
		c.expireSession(ctx)
		return ErrSessionExpired
	}
	if status < 200 || status > 299 {
		c.expireSession(ctx)
		return ErrSessionExpired
	}

	var resp dto.RefreshResponse
	if err := json.Unmarshal(data, &resp); err != nil || resp.Token == "" {
		c.expireSession(ctx)
		return ErrSessionExpired
	}

	if err := c.creds.Set(ctx, store.KeyAccessToken, resp.Token); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	c.log.Debug("access token refreshed")
	return nil
}

func (c *Client) expireSession(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error("failed to purge session credentials", zap.Error(err))
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) apiError(status int, data []byte) error {
	apiErr := &Error{StatusCode: status}
	var body dto.ErrorResponse
	if len(data) > 0 && json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
