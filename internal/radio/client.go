package radio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Catalog defines the read-only operations tuner needs from the catalog API.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	Search(ctx context.Context, text string) ([]Station, error)
	ListAll(ctx context.Context) ([]Station, error)
	SearchWithStationName(ctx context.Context, text string) ([]Broadcast, error)
	ListAllWithStationName(ctx context.Context) ([]Broadcast, error)
	FetchHealth(ctx context.Context) (*HealthResponse, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the free-radio catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	secret    []byte
}

const (
	defaultAPIBind   = "127.0.0.1:8420"
	defaultUserAgent = "tuner/0.1"
	requestTimeout   = 5 * time.Second
	tokenLifetime    = 5 * time.Minute
)

// Option customises a Client.
type Option func(*Client)

// WithSecret signs every request with a short-lived HS256 bearer token.
func WithSecret(secret string) Option {
	return func(c *Client) {
		if s := strings.TrimSpace(secret); s != "" {
			c.secret = []byte(s)
		}
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search retrieves stations matching text. The text is sent verbatim.
func (c *Client) Search(ctx context.Context, text string) ([]Station, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("search", text)
	var payload StationListResponse
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/stations", RawQuery: values.Encode()}, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ListAll retrieves the unfiltered station list in catalog order.
func (c *Client) ListAll(ctx context.Context) ([]Station, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StationListResponse
	if err := c.do(ctx, http.MethodGet, "/api/stations", &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// SearchWithStationName retrieves broadcasts matching text, joined with the
// owning station's display name.
func (c *Client) SearchWithStationName(ctx context.Context, text string) ([]Broadcast, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("with", "station_name")
	values.Set("search", text)
	var payload BroadcastListResponse
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/broadcasts", RawQuery: values.Encode()}, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ListAllWithStationName retrieves every broadcast with station names.
func (c *Client) ListAllWithStationName(ctx context.Context) ([]Broadcast, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("with", "station_name")
	var payload BroadcastListResponse
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/broadcasts", RawQuery: values.Encode()}, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// FetchHealth retrieves the catalog health summary.
func (c *Client) FetchHealth(ctx context.Context) (*HealthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id, err := uuid.NewV7(); err == nil {
		req.Header.Set("X-Request-ID", id.String())
	}
	if len(c.secret) > 0 {
		token, err := c.signToken(time.Now())
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) signToken(now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   c.userAgent,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenLifetime).Unix(),
	})
	return token.SignedString(c.secret)
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
