package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source is the provenance tag recorded on items populated from OMDb.
const Source = "omdb"

// SearchResult is a single search match. Year is the provider's display
// text and may span a range ("2019–2021"); it is passed through untouched.
type SearchResult struct {
	Title  string
	Year   string
	IMDbID string
}

// Record is the normalized detail payload for one film.
type Record struct {
	Title     string
	Year      int // 0 when unparseable
	Plot      string
	PosterURL string
	IMDbID    string
}

type searchResponse struct {
	Response string `json:"Response"`
	Search   []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		IMDbID string `json:"imdbID"`
	} `json:"Search"`
}

type detailResponse struct {
	Response string `json:"Response"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	IMDbID   string `json:"imdbID"`
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
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

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries OMDb for titles matching query. A provider "no match"
// answer yields an empty slice, not an error. Result order is the
// provider's.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)

	var payload searchResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if payload.Response != "True" {
		return nil, nil
	}

	results := make([]SearchResult, 0, len(payload.Search))
	for _, entry := range payload.Search {
		results = append(results, SearchResult{
			Title:  entry.Title,
			Year:   entry.Year,
			IMDbID: entry.IMDbID,
		})
	}
	return results, nil
}

// GetByID fetches the detail record for an IMDb id. Returns nil when the
// provider reports no match.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Record, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "short")

	var payload detailResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if payload.Response != "True" {
		return nil, nil
	}

	return &Record{
		Title:     payload.Title,
		Year:      ParseYear(payload.Year),
		Plot:      payload.Plot,
		PosterURL: payload.Poster,
		IMDbID:    payload.IMDbID,
	}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return fmt.Errorf("parse omdb url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}
	return nil
}

// ParseYear extracts the leading 4-digit year from provider year text such
// as "2019", "2019–2021", or "2019-". Returns 0 when unparseable.
func ParseYear(text string) int {
	text = strings.TrimSpace(text)
	if len(text) < 4 {
		return 0
	}
	digits := text[:4]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return year
}
