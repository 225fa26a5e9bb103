package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/lurknmore/lurk/pkg/errors"
	"github.com/lurknmore/lurk/pkg/types"
)

// TokenProvider supplies a valid bearer token for outbound requests.
// The Authenticator implements this interface.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Client manages communication with the data API. Every request carries a
// fresh bearer token, the identifying user agent, and raw_json=1 to disable
// HTML entity escaping in response bodies.
type Client struct {
	client    *http.Client
	auth      TokenProvider
	pacer     *Pacer
	BaseURL   *url.URL
	UserAgent string
	logger    *slog.Logger
}

// NewClient returns a new data API client. If a nil httpClient is provided,
// http.DefaultClient will be used.
func NewClient(httpClient *http.Client, auth TokenProvider, pacer *Pacer, baseURL, userAgent string, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	return &Client{
		client:    httpClient,
		auth:      auth,
		pacer:     pacer,
		BaseURL:   parsedURL,
		UserAgent: userAgent,
		logger:    logger,
	}, nil
}

// Get issues an authenticated GET for the path (relative to BaseURL) with
// the given query parameters and returns the raw response body. Pacing runs
// after the response is received, so consecutive calls are always separated
// by the minimum interval even when the caller stops after this one.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.auth.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	u, err := c.BaseURL.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("raw_json", "1")
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("api response", "path", u.Path, "status", resp.StatusCode, "bytes", len(body))
	}

	if err := c.pacer.Pace(ctx); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &pkgerrs.APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			URL:        u.String(),
		}
	}

	return body, nil
}

// GetThing issues a GET and decodes the body into a Thing envelope.
func (c *Client) GetThing(ctx context.Context, path string, query url.Values) (*types.Thing, error) {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var thing types.Thing
	if err := json.Unmarshal(body, &thing); err != nil {
		return nil, &pkgerrs.ParseError{Message: "response is not a Thing envelope", Err: err}
	}
	return &thing, nil
}

// GetThings issues a GET against an endpoint that returns an ordered array
// of Thing envelopes, such as the thread endpoint's [post, comments] pair.
func (c *Client) GetThings(ctx context.Context, path string, query url.Values) ([]*types.Thing, error) {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var things []*types.Thing
	if err := json.Unmarshal(body, &things); err != nil {
		return nil, &pkgerrs.ParseError{Message: "response is not an array of Thing envelopes", Err: err}
	}
	return things, nil
}
