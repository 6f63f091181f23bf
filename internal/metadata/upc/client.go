package upc

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

// Source is the provenance tag recorded on items populated from a product
// lookup.
const Source = "upc"

// Product is the normalized result of one code lookup. When Unresolved is
// set, the payload parsed but yielded neither a title nor a film id; Raw
// carries the body for manual inspection.
type Product struct {
	Title      string
	Year       int
	IMDbID     string
	Unresolved bool
	Raw        json.RawMessage
}

// Client queries a product-lookup provider across candidate endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	endpoints  []string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a product-lookup client. endpoints is the ordered candidate
// path list; it must not be empty.
func New(apiKey, baseURL string, endpoints []string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("upc api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("upc base url required")
	}
	if len(endpoints) == 0 {
		return nil, errors.New("upc endpoint candidates required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		endpoints:  append([]string{}, endpoints...),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup resolves a scanned code. Candidate paths are tried in order; for
// each, bearer auth is attempted first and query-parameter auth retried on
// an auth rejection. When every candidate fails, the last error is
// returned alongside the nil product.
func (c *Client) Lookup(ctx context.Context, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("code must not be empty")
	}

	var lastErr error
	for _, endpoint := range c.endpoints {
		body, err := c.tryEndpoint(ctx, endpoint, code)
		if err != nil {
			lastErr = err
			continue
		}
		return decodeProduct(body), nil
	}
	if lastErr == nil {
		lastErr = errors.New("no lookup endpoints configured")
	}
	return nil, fmt.Errorf("lookup code %s: %w", code, lastErr)
}

func (c *Client) tryEndpoint(ctx context.Context, endpoint, code string) ([]byte, error) {
	body, status, err := c.get(ctx, endpoint, code, true)
	if err == nil && status == http.StatusOK {
		return body, nil
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// Some deployments only accept the key as a query parameter.
		body, status, err = c.get(ctx, endpoint, code, false)
		if err == nil && status == http.StatusOK {
			return body, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("endpoint %s returned %d", endpoint, status)
}

func (c *Client) get(ctx context.Context, endpoint, code string, bearer bool) ([]byte, int, error) {
	target, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("parse lookup url: %w", err)
	}
	params := url.Values{}
	params.Set("upc", code)
	if !bearer {
		params.Set("apikey", c.apiKey)
	}
	target.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		if !json.Valid(body) {
			return nil, resp.StatusCode, fmt.Errorf("endpoint %s returned unparseable body", endpoint)
		}
	}
	return body, resp.StatusCode, nil
}
