// Package rapidpro is a thin client over the RapidPro v2 API, covering the
// two calls the flow-start pipeline needs: contact lookup and flow start.
package rapidpro

import (
	"bytes"
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

const maxResponseSizeBytes = 2 << 20

// ErrNoResults reports a well-formed lookup reply with zero matching
// contacts, as opposed to a failed request.
var ErrNoResults = errors.New("rapidpro: no matching contacts")

// APIError reports a non-2xx response from the RapidPro API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rapidpro: status=%d body=%s", e.StatusCode, e.Body)
}

type Config struct {
	URL     string        `split_words:"true" required:"true"`
	Token   string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"15s"`
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
	token      string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("rapidpro url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid rapidpro url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("rapidpro token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL: baseURL,
		token:   token,
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

// Contact is the subset of the RapidPro contact record the pipeline reads.
type Contact struct {
	UUID string   `json:"uuid"`
	Name string   `json:"name"`
	URNs []string `json:"urns"`
}

type contactsPage struct {
	Results []Contact `json:"results"`
}

// LookupContact fetches the contact matching the given URN. Zero results
// yield ErrNoResults; a non-2xx status yields *APIError.
func (c *Client) LookupContact(ctx context.Context, urn string) (*Contact, error) {
	endpoint := fmt.Sprintf("%s/api/v2/contacts.json?urn=%s", c.baseURL, url.QueryEscape(urn))

	status, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	var page contactsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode contacts response: %w", err)
	}
	if len(page.Results) == 0 {
		return nil, ErrNoResults
	}

	return &page.Results[0], nil
}

// StartFlowParams mirror the flow_starts request body.
type StartFlowParams struct {
	FlowID string            `json:"flow"`
	URNs   []string          `json:"urns"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// FlowStartResponse carries the raw status and body of the flow-start call.
// The caller interprets the status: RapidPro answers 201 on acceptance.
type FlowStartResponse struct {
	StatusCode int
	Body       string
}

// StartFlow issues the flow-start call. Any status the remote returns is
// handed back in the response; only transport failures surface as errors.
func (c *Client) StartFlow(ctx context.Context, params StartFlowParams) (*FlowStartResponse, error) {
	endpoint := c.baseURL + "/api/v2/flow_starts.json"

	status, body, err := c.do(ctx, http.MethodPost, endpoint, params)
	if err != nil {
		return nil, err
	}

	return &FlowStartResponse{StatusCode: status, Body: string(body)}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build rapidpro request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute rapidpro request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read rapidpro response: %w", err)
	}

	return resp.StatusCode, raw, nil
}
