// Package kvapi provides a client for the tariff dataset API backed by a
// Cloudflare Worker KV store.
package kvapi

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

// Client defines the dataset store operations.
type Client interface {
	// Update replaces the stored dataset with payload.
	Update(ctx context.Context, payload any) error
	// Health reports whether the store is reachable and how many records it holds.
	Health(ctx context.Context) (*HealthResponse, error)
}

// HealthResponse is the parsed /api/health payload.
type HealthResponse struct {
	Status    string `json:"status"`
	DataCount int    `json:"dataCount"`
}

type updateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Option configures the client.
type Option func(*restyClient)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *restyClient) {
		c.rc.SetTimeout(d)
	}
}

type restyClient struct {
	rc     *resty.Client
	apiKey string
}

// New creates a Client for the given worker base URL.
func New(baseURL, apiKey string, opts ...Option) Client {
	c := &restyClient{
		rc:     resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		apiKey: apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update posts the full dataset to /api/update. A non-2xx response is an
// error; the caller decides whether to retry a whole run, not this client.
func (c *restyClient) Update(ctx context.Context, payload any) error {
	var parsed updateResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("X-API-Key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&parsed).
		Post("/api/update")
	if err != nil {
		return eris.Wrap(err, "kvapi: update request")
	}
	if resp.IsError() {
		return eris.Errorf("kvapi: update returned %d: %s", resp.StatusCode(), resp.String())
	}
	if !parsed.Success {
		return eris.Errorf("kvapi: update rejected: %s", parsed.Message)
	}
	return nil
}

// Health checks /api/health.
func (c *restyClient) Health(ctx context.Context) (*HealthResponse, error) {
	var parsed HealthResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&parsed).
		Get("/api/health")
	if err != nil {
		return nil, eris.Wrap(err, "kvapi: health request")
	}
	if resp.IsError() {
		return nil, eris.Errorf("kvapi: health returned %d", resp.StatusCode())
	}
	return &parsed, nil
}
