// Package rocketchat is a client over the Rocket.Chat REST admin API,
// restricted to the user lookups the flow-start pipeline needs.
package rocketchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 1 << 20

var ErrUserNotFound = errors.New("rocketchat: user not found")

// APIError reports a non-2xx response other than the not-found reply.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rocketchat: status=%d body=%s", e.StatusCode, e.Body)
}

type Config struct {
	URL       string        `split_words:"true" required:"true"`
	AuthToken string        `split_words:"true" required:"true"`
	UserID    string        `split_words:"true" required:"true"`
	Timeout   time.Duration `split_words:"true" default:"10s"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

type Client struct {
	baseURL    string
	authToken  string
	userID     string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("rocketchat url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid rocketchat url: %w", err)
	}
	if strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("rocketchat auth token is required")
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, errors.New("rocketchat user id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:   baseURL,
		authToken: strings.TrimSpace(cfg.AuthToken),
		userID:    strings.TrimSpace(cfg.UserID),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// User is the subset of the Rocket.Chat user record the pipeline reads.
type User struct {
	ID       string   `json:"_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type userInfoResponse struct {
	User    *User  `json:"user"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) UserByUsername(ctx context.Context, username string) (*User, error) {
	return c.userInfo(ctx, "username", username)
}

func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	return c.userInfo(ctx, "userId", id)
}

func (c *Client) userInfo(ctx context.Context, key, value string) (*User, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrUserNotFound
	}

	endpoint := fmt.Sprintf("%s/api/v1/users.info?%s=%s", c.baseURL, key, url.QueryEscape(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build rocketchat request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.authToken)
	req.Header.Set("X-User-Id", c.userID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute rocketchat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read rocketchat response: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed userInfoResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode rocketchat response: %w", err)
	}
	if !parsed.Success || parsed.User == nil {
		return nil, ErrUserNotFound
	}

	return parsed.User, nil
}
