// Package vaultclient issues secure-search calls and folds every response
// into a single domain.Outcome.
package vaultclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/core/domain"
)

// DefaultEndpoint is the lookup service address used when none is configured.
const DefaultEndpoint = "http://localhost:5000/secure-search"

// Client posts search requests to a fixed endpoint. It sends no credentials
// and applies no timeout or retry of its own.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New constructs a Client for the given endpoint URL.
func New(endpoint string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid vault endpoint: %w", err)
	}
	cli := &Client{
		endpoint:   trimmed,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// Endpoint returns the URL searches are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Lookup performs one search call.
//
//	404           → not found (body ignored)
//	2xx + JSON    → success holding the decoded body
//	other status  → failure with the status code
//	anything else → connection failure
func (c *Client) Lookup(ctx context.Context, req domain.SearchRequest) domain.Outcome {
	payload, err := json.Marshal(req)
	if err != nil {
		c.log.Error().Err(err).Msg("encode search request")
		return domain.ConnectionFailure()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		c.log.Error().Err(err).Msg("create search request")
		return domain.ConnectionFailure()
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Str("endpoint", c.endpoint).Msg("search request failed")
		return domain.ConnectionFailure()
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Str("field", string(req.Field)).Msg("search response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound()
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := decodeBody(resp.Body)
		if err != nil {
			c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("search response is not JSON")
			return domain.ConnectionFailure()
		}
		return domain.Success(body)
	default:
		return domain.StatusFailure(resp.StatusCode)
	}
}

// decodeBody reads a JSON response. Objects keep the key order the server
// wrote; any other JSON value is decoded as is.
func decodeBody(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	obj := orderedmap.New()
	if err := json.Unmarshal(raw, obj); err == nil {
		return obj, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
