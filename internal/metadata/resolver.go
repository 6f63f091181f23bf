package metadata

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"shelf/internal/config"
	"shelf/internal/metadata/omdb"
	"shelf/internal/metadata/upc"
)

// Resolver queries the configured lookup providers and normalizes their
// answers. Unconfigured providers resolve to empty results.
type Resolver struct {
	omdb *omdb.Client
	upc  *upc.Client
	log  *slog.Logger
}

// NewResolver builds a resolver from configuration. Providers without an
// API key are left nil and their operations report no results.
func NewResolver(cfg *config.Config, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	resolver := &Resolver{log: logger.With("component", "metadata")}

	if cfg.OMDB.APIKey != "" {
		client, err := omdb.New(
			cfg.OMDB.APIKey,
			cfg.OMDB.BaseURL,
			omdb.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.OMDB.TimeoutSeconds) * time.Second}),
		)
		if err != nil {
			return nil, err
		}
		resolver.omdb = client
	}

	if cfg.UPC.APIKey != "" {
		client, err := upc.New(
			cfg.UPC.APIKey,
			cfg.UPC.BaseURL,
			cfg.UPC.Endpoints,
			upc.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.UPC.TimeoutSeconds) * time.Second}),
		)
		if err != nil {
			return nil, err
		}
		resolver.upc = client
	}

	return resolver, nil
}

// NewResolverWithClients wires explicit provider clients; used by tests and
// the enrichment pipeline.
func NewResolverWithClients(omdbClient *omdb.Client, upcClient *upc.Client, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{omdb: omdbClient, upc: upcClient, log: logger.With("component", "metadata")}
}

// SearchConfigured reports whether title search is available.
func (r *Resolver) SearchConfigured() bool {
	return r.omdb != nil
}

// ScanConfigured reports whether code lookup is available.
func (r *Resolver) ScanConfigured() bool {
	return r.upc != nil
}

// SearchByTitle returns provider-ordered search matches, or an empty slice
// when no provider is configured or nothing matches.
func (r *Resolver) SearchByTitle(ctx context.Context, query string) ([]omdb.SearchResult, error) {
	if r.omdb == nil {
		return nil, nil
	}
	results, err := r.omdb.Search(ctx, query)
	if err != nil {
		r.log.Warn("title search failed", "query", query, "error", err)
		return nil, err
	}
	return results, nil
}

// FetchByID returns the normalized metadata record for an external film
// id, or nil when the provider is unconfigured or reports no match.
func (r *Resolver) FetchByID(ctx context.Context, imdbID string) (*omdb.Record, error) {
	if r.omdb == nil {
		return nil, nil
	}
	record, err := r.omdb.GetByID(ctx, imdbID)
	if err != nil {
		r.log.Warn("id lookup failed", "imdb_id", imdbID, "error", err)
		return nil, err
	}
	return record, nil
}

// FetchByCode resolves a scanned product code, or nil when the provider is
// unconfigured.
func (r *Resolver) FetchByCode(ctx context.Context, code string) (*upc.Product, error) {
	if r.upc == nil {
		return nil, nil
	}
	product, err := r.upc.Lookup(ctx, code)
	if err != nil {
		r.log.Warn("code lookup failed", "code", code, "error", err)
		return nil, err
	}
	return product, nil
}
