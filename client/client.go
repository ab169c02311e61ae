// Package client talks to the deal feed HTTP API.
package client

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API base is configured
const DefaultBaseURL = "http://localhost:8000"

// Client is a thin HTTP client for the deal feed API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}
