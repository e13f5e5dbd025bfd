// Package client is a typed HTTP client for the matchmaking API. It unwraps the
// standard response envelope and turns error envelopes into *APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsAPIErrorCode reports whether err is an *APIError carrying code.
func IsAPIErrorCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// envelope mirrors utils.Response with a raw payload.
type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data,omitempty"`
	Error   *utils.ErrorInfo `json:"error,omitempty"`
	Meta    *utils.MetaInfo  `json:"meta,omitempty"`
}

// Client talks to one API server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithToken starts the client with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultAPIBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: constants.DefaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, constants.AuthRegisterPath, reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	creds := models.UserCredentials{Email: email, Password: password}
	var result models.LoginResult
	if err := c.do(ctx, http.MethodPost, constants.AuthLoginPath, creds, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.AccessToken)
	return &result, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, constants.AuthMePath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchProfiles runs a filtered search. An empty excludeUserID lets the server
// exclude the token's user, if any.
func (c *Client) SearchProfiles(ctx context.Context, filters models.FilterCriteria, excludeUserID string) ([]*models.Profile, error) {
	req := models.SearchRequest{Filters: filters, ExcludeUserID: excludeUserID}
	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodPost, constants.ProfileSearchPath, req, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Profiles), nil
}

// Featured returns randomly ordered verified profiles. A limit of 0 uses the
// server default.
func (c *Client) Featured(ctx context.Context, limit int) ([]*models.Profile, error) {
	path := constants.ProfileFeaturedPath
	if limit > 0 {
		path = fmt.Sprintf("%s/%d", constants.ProfileFeaturedPath, limit)
	}
	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Profiles), nil
}

// GetProfile fetches a single profile by id.
func (c *Client) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(constants.ProfileDetailPathFormat, id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Catalog returns the server's option lists keyed by list name.
func (c *Client) Catalog(ctx context.Context) (map[string][]string, error) {
	lists := make(map[string][]string)
	if err := c.do(ctx, http.MethodGet, constants.CatalogPath, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// do sends one request and decodes the envelope payload into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func nonNil(profiles []*models.Profile) []*models.Profile {
	if profiles == nil {
		return []*models.Profile{}
	}
	return profiles
}
