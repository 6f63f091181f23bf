package omdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelf/internal/metadata/omdb"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *omdb.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := omdb.New("test-key", server.URL)
	if err != nil {
		t.Fatalf("omdb.New: %v", err)
	}
	return client
}

func TestSearchReturnsMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("expected apikey param, got %q", got)
		}
		if got := r.URL.Query().Get("s"); got != "blade runner" {
			t.Errorf("expected s param, got %q", got)
		}
		w.Write([]byte(`{
			"Response": "True",
			"Search": [
				{"Title": "Blade Runner", "Year": "1982", "imdbID": "tt0083658"},
				{"Title": "Blade Runner 2049", "Year": "2017", "imdbID": "tt1856101"}
			]
		}`))
	})

	results, err := client.Search(context.Background(), "blade runner")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Blade Runner" || results[0].IMDbID != "tt0083658" {
		t.Fatalf("unexpected first result: %#v", results[0])
	}
	if results[1].Year != "2017" {
		t.Fatalf("expected provider year text passed through, got %q", results[1].Year)
	}
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	results, err := client.Search(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results, got %#v", results)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent for empty query")
	})

	if _, err := client.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchHTTPErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error on HTTP failure")
	}
}

func TestGetByIDReturnsRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0083658" {
			t.Errorf("expected i param, got %q", got)
		}
		if got := r.URL.Query().Get("plot"); got != "short" {
			t.Errorf("expected short plot, got %q", got)
		}
		w.Write([]byte(`{
			"Response": "True",
			"Title": "Blade Runner",
			"Year": "1982",
			"Plot": "A blade runner must pursue replicants.",
			"Poster": "https://img.example/poster.jpg",
			"imdbID": "tt0083658"
		}`))
	})

	record, err := client.GetByID(context.Background(), "tt0083658")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected record")
	}
	if record.Title != "Blade Runner" || record.Year != 1982 {
		t.Fatalf("unexpected record: %#v", record)
	}
	if record.PosterURL != "https://img.example/poster.jpg" {
		t.Fatalf("unexpected poster url: %q", record.PosterURL)
	}
}

func TestGetByIDNoMatchReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Incorrect IMDb ID."}`))
	})

	record, err := client.GetByID(context.Background(), "tt0000000")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %#v", record)
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"1982", 1982},
		{"2019–2021", 2019},
		{"2019-", 2019},
		{" 2001 ", 2001},
		{"N/A", 0},
		{"", 0},
		{"84", 0},
	}
	for _, tc := range cases {
		if got := omdb.ParseYear(tc.input); got != tc.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
