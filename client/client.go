// Package client calls a remote Inglify gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inglify/inglify"
)

// DefaultTranslatePath is the gateway endpoint for translations.
const DefaultTranslatePath = "/api/gemini"

const defaultTimeout = 90 * time.Second

var _ inglify.Translator = (*Client)(nil)

// Error is a non-2xx reply from the gateway.
type Error struct {
	StatusCode int
	Message    string // the gateway's "error" field, may be empty
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

// PublicMessage returns the gateway's message so it can be shown as is.
func (e *Error) PublicMessage() string { return e.Message }

// Client talks to a gateway at a base URL.
type Client struct {
	baseURL       string
	translatePath string
	httpClient    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTranslatePath overrides the translation endpoint path.
func WithTranslatePath(path string) Option {
	return func(c *Client) {
		c.translatePath = path
	}
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		translatePath: DefaultTranslatePath,
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate posts req to the gateway and decodes the response.
func (c *Client) Translate(ctx context.Context, req inglify.TranslationRequest) (*inglify.TranslationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var resp inglify.TranslationResponse
	if err := c.do(ctx, http.MethodPost, c.translatePath, bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Languages fetches the gateway's language catalog.
func (c *Client) Languages(ctx context.Context) ([]inglify.LanguageEntry, error) {
	var langs []inglify.LanguageEntry
	if err := c.do(ctx, http.MethodGet, "/api/languages", nil, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// Health reports whether the gateway answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", inglify.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &Error{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
