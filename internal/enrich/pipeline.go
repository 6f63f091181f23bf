package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"shelf/internal/library"
	"shelf/internal/metadata"
	"shelf/internal/metadata/omdb"
	"shelf/internal/metadata/upc"
	"shelf/internal/posters"
)

// ErrUnavailable is returned when the required lookup provider is not
// configured.
var ErrUnavailable = errors.New("lookup provider not configured")

// UnresolvedError carries the raw provider payload when a scan lookup
// parsed but named no film; the caller decides how to surface it.
type UnresolvedError struct {
	Code string
	Raw  json.RawMessage
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("code %s did not resolve to a film", e.Code)
}

// ItemForm carries the user-supplied fields merged into an enriched item.
type ItemForm struct {
	Format   library.Format
	Watched  bool
	Location string
	Notes    string
}

// Pipeline adds enriched items to the catalog.
type Pipeline struct {
	store    *library.Store
	resolver *metadata.Resolver
	cache    *posters.Cache
	log      *slog.Logger
}

// New builds an enrichment pipeline.
func New(store *library.Store, resolver *metadata.Resolver, cache *posters.Cache, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:    store,
		resolver: resolver,
		cache:    cache,
		log:      logger.With("component", "enrich"),
	}
}

// AddFromSearchResult fetches the full record for an external film id and
// creates an item from it merged with the user's form fields.
func (p *Pipeline) AddFromSearchResult(ctx context.Context, imdbID string, form ItemForm) (*library.Item, error) {
	if !p.resolver.SearchConfigured() {
		return nil, ErrUnavailable
	}

	record, err := p.resolver.FetchByID(ctx, imdbID)
	if err != nil {
		return nil, fmt.Errorf("fetch details: %w", err)
	}
	if record == nil || strings.TrimSpace(record.Title) == "" {
		return nil, fmt.Errorf("no details found for %s", imdbID)
	}

	draft := library.ItemDraft{
		Title:     record.Title,
		Year:      record.Year,
		Plot:      record.Plot,
		PosterURL: record.PosterURL,
		Format:    form.Format,
		Watched:   form.Watched,
		Location:  form.Location,
		Notes:     form.Notes,
		Source:    omdb.Source,
		SourceID:  record.IMDbID,
	}
	draft.PosterPath = p.cache.EnsureCached(ctx, record.PosterURL)

	item, err := p.store.AddItem(ctx, draft)
	if err != nil {
		return nil, err
	}
	p.log.Info("added from search", "id", item.ID, "title", item.Title, "imdb_id", record.IMDbID)
	return item, nil
}

// AddFromScan looks up a scanned code and creates an item from the best
// available record. The originating code is recorded in the item's notes.
func (p *Pipeline) AddFromScan(ctx context.Context, code string, form ItemForm) (*library.Item, error) {
	if !p.resolver.ScanConfigured() {
		return nil, ErrUnavailable
	}

	product, err := p.resolver.FetchByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup code: %w", err)
	}
	if product == nil {
		return nil, ErrUnavailable
	}

	form.Notes = appendScanNote(form.Notes, code)

	if product.IMDbID != "" && p.resolver.SearchConfigured() {
		if record, err := p.resolver.FetchByID(ctx, product.IMDbID); err == nil && record != nil && strings.TrimSpace(record.Title) != "" {
			return p.addFilmRecord(ctx, record, form)
		}
		// Film-database miss falls through to the product record.
	}

	if product.Unresolved || strings.TrimSpace(product.Title) == "" {
		return nil, &UnresolvedError{Code: code, Raw: product.Raw}
	}

	draft := library.ItemDraft{
		Title:    product.Title,
		Year:     product.Year,
		Format:   form.Format,
		Watched:  form.Watched,
		Location: form.Location,
		Notes:    form.Notes,
		Source:   upc.Source,
		SourceID: code,
	}
	item, err := p.store.AddItem(ctx, draft)
	if err != nil {
		return nil, err
	}
	p.log.Info("added from scan", "id", item.ID, "title", item.Title, "code", code)
	return item, nil
}

func (p *Pipeline) addFilmRecord(ctx context.Context, record *omdb.Record, form ItemForm) (*library.Item, error) {
	draft := library.ItemDraft{
		Title:     record.Title,
		Year:      record.Year,
		Plot:      record.Plot,
		PosterURL: record.PosterURL,
		Format:    form.Format,
		Watched:   form.Watched,
		Location:  form.Location,
		Notes:     form.Notes,
		Source:    omdb.Source,
		SourceID:  record.IMDbID,
	}
	draft.PosterPath = p.cache.EnsureCached(ctx, record.PosterURL)

	item, err := p.store.AddItem(ctx, draft)
	if err != nil {
		return nil, err
	}
	p.log.Info("added from scan", "id", item.ID, "title", item.Title, "imdb_id", record.IMDbID)
	return item, nil
}

func appendScanNote(notes, code string) string {
	note := "Scanned code: " + code
	if strings.TrimSpace(notes) == "" {
		return note
	}
	return strings.TrimSpace(notes) + "\n" + note
}
