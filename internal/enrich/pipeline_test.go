package enrich_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shelf/internal/enrich"
	"shelf/internal/library"
	"shelf/internal/metadata"
	"shelf/internal/metadata/omdb"
	"shelf/internal/metadata/upc"
	"shelf/internal/posters"
	"shelf/internal/testsupport"
)

func newOMDBClient(t *testing.T, handler http.HandlerFunc) *omdb.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := omdb.New("key", server.URL)
	if err != nil {
		t.Fatalf("omdb.New: %v", err)
	}
	return client
}

func newUPCClient(t *testing.T, handler http.HandlerFunc) *upc.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := upc.New("key", server.URL, []string{"/lookup"})
	if err != nil {
		t.Fatalf("upc.New: %v", err)
	}
	return client
}

func newPipeline(t *testing.T, store *library.Store, omdbClient *omdb.Client, upcClient *upc.Client) *enrich.Pipeline {
	t.Helper()

	cache, err := posters.New(t.TempDir(), 300, 70, time.Second)
	if err != nil {
		t.Fatalf("posters.New: %v", err)
	}
	resolver := metadata.NewResolverWithClients(omdbClient, upcClient, nil)
	return enrich.New(store, resolver, cache, nil)
}

func TestAddFromSearchResultCreatesItem(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	omdbClient := newOMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Response": "True",
			"Title": "Heat",
			"Year": "1995",
			"Plot": "A crew of thieves against a relentless detective.",
			"Poster": "N/A",
			"imdbID": "tt0113277"
		}`))
	})
	pipeline := newPipeline(t, store, omdbClient, nil)

	item, err := pipeline.AddFromSearchResult(context.Background(), "tt0113277", enrich.ItemForm{
		Format:   library.Format4K,
		Location: "Shelf A",
	})
	if err != nil {
		t.Fatalf("AddFromSearchResult failed: %v", err)
	}
	if item.Title != "Heat" || item.Year != 1995 {
		t.Fatalf("unexpected item: %#v", item)
	}
	if item.Format != library.Format4K || item.Location != "Shelf A" {
		t.Fatalf("expected form fields merged, got %#v", item)
	}
	if item.Source != omdb.Source || item.SourceID != "tt0113277" {
		t.Fatalf("expected provenance recorded, got %q/%q", item.Source, item.SourceID)
	}
	if item.PosterPath != "" {
		t.Fatalf("expected no poster for placeholder url, got %q", item.PosterPath)
	}
}

func TestAddFromSearchResultWithoutProvider(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	pipeline := newPipeline(t, store, nil, nil)

	_, err := pipeline.AddFromSearchResult(context.Background(), "tt0113277", enrich.ItemForm{})
	if !errors.Is(err, enrich.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAddFromScanPrefersFilmRecord(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	omdbClient := newOMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Response": "True",
			"Title": "Alien",
			"Year": "1979",
			"Plot": "The crew of a commercial starship encounter a deadly lifeform.",
			"Poster": "N/A",
			"imdbID": "tt0078748"
		}`))
	})
	upcClient := newUPCClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Alien [Blu-ray]", "imdb_id": "tt0078748"}`))
	})
	pipeline := newPipeline(t, store, omdbClient, upcClient)

	item, err := pipeline.AddFromScan(context.Background(), "024543672houd", enrich.ItemForm{})
	if err != nil {
		t.Fatalf("AddFromScan failed: %v", err)
	}
	if item.Title != "Alien" {
		t.Fatalf("expected film-database title, got %q", item.Title)
	}
	if item.Source != omdb.Source {
		t.Fatalf("expected omdb provenance, got %q", item.Source)
	}
	if !strings.Contains(item.Notes, "Scanned code: 024543672houd") {
		t.Fatalf("expected scan note, got %q", item.Notes)
	}
}

func TestAddFromScanFallsBackToProductTitle(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	upcClient := newUPCClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Some Obscure Disc", "year": 2008}`))
	})
	pipeline := newPipeline(t, store, nil, upcClient)

	item, err := pipeline.AddFromScan(context.Background(), "123456789012", enrich.ItemForm{Notes: "from the attic"})
	if err != nil {
		t.Fatalf("AddFromScan failed: %v", err)
	}
	if item.Title != "Some Obscure Disc" || item.Year != 2008 {
		t.Fatalf("unexpected item: %#v", item)
	}
	if item.Source != upc.Source || item.SourceID != "123456789012" {
		t.Fatalf("expected upc provenance, got %q/%q", item.Source, item.SourceID)
	}
	if !strings.Contains(item.Notes, "from the attic") || !strings.Contains(item.Notes, "Scanned code: 123456789012") {
		t.Fatalf("expected user notes plus scan note, got %q", item.Notes)
	}
}

func TestAddFromScanUnresolved(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	upcClient := newUPCClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})
	pipeline := newPipeline(t, store, nil, upcClient)

	_, err := pipeline.AddFromScan(context.Background(), "000000000000", enrich.ItemForm{})
	var unresolved *enrich.UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedError, got %v", err)
	}
	if unresolved.Code != "000000000000" {
		t.Fatalf("unexpected code: %q", unresolved.Code)
	}
	if len(unresolved.Raw) == 0 {
		t.Fatal("expected raw payload carried")
	}

	items, err := store.Items(context.Background(), "", library.SortTitleAsc)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no item created, got %#v", items)
	}
}

func TestAddFromScanWithoutProvider(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	pipeline := newPipeline(t, store, nil, nil)

	_, err := pipeline.AddFromScan(context.Background(), "123456789012", enrich.ItemForm{})
	if !errors.Is(err, enrich.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
