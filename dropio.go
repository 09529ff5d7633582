// Package dropio is a client for the Drop.io file-sharing API. A Client is
// constructed once from a Config and is safe for concurrent use; every call
// builds its own parameter set, signs it when an API secret is configured,
// and maps the XML (or JSON, for jobs) response into typed values.
package dropio

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIVersion is the protocol version sent with every request.
const APIVersion = "3.0"

// Default service endpoints.
const (
	DefaultBaseURL   = "http://drop.io/"
	DefaultAPIURL    = "http://api.drop.io/"
	DefaultUploadURL = "http://assets.drop.io/upload"
)

// Config carries the process-wide client configuration. APIKey is required
// for any call to succeed server-side; with an empty APISecret requests go
// out unsigned, which only works against deployments that allow it.
type Config struct {
	APIKey    string
	APISecret string

	// BaseURL is the web front used for shareable authenticated URLs.
	BaseURL string
	// APIURL is the REST API base.
	APIURL string
	// UploadURL is the multipart upload endpoint.
	UploadURL string

	// HTTPClient overrides the transport. Timeouts are the caller's
	// responsibility; a timeout surfaces as a transport error, never as a
	// service error.
	HTTPClient *http.Client
}

// Client issues typed operations against one Drop.io deployment.
type Client struct {
	cfg Config
	hc  *http.Client
	now func() time.Time
}

// New creates a Client from cfg, filling in default endpoints and a default
// HTTP client where cfg leaves them empty.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.UploadURL == "" {
		cfg.UploadURL = DefaultUploadURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{cfg: cfg, hc: hc, now: time.Now}
}

// apiURL joins path onto the API base.
func (c *Client) apiURL(path string) string {
	return strings.TrimRight(c.cfg.APIURL, "/") + "/" + path
}

// baseURL joins path onto the web front base.
func (c *Client) baseURL(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
}

// seg percent-encodes one URL path segment.
func seg(s string) string {
	return url.PathEscape(s)
}
