package posters_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"shelf/internal/posters"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newCache(t *testing.T, targetWidth int) *posters.Cache {
	t.Helper()

	cache, err := posters.New(t.TempDir(), targetWidth, 70, time.Second)
	if err != nil {
		t.Fatalf("posters.New: %v", err)
	}
	return cache
}

func TestEnsureCachedDownloadsOnce(t *testing.T) {
	var requests atomic.Int64
	payload := encodePNG(t, 100, 150)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(payload)
	}))
	defer server.Close()

	cache := newCache(t, 300)
	ctx := context.Background()

	first := cache.EnsureCached(ctx, server.URL+"/poster.png")
	if first == "" {
		t.Fatal("expected cached path")
	}
	if filepath.Base(first) != posters.Filename(server.URL+"/poster.png") {
		t.Fatalf("unexpected filename %q", filepath.Base(first))
	}

	second := cache.EnsureCached(ctx, server.URL+"/poster.png")
	if second != first {
		t.Fatalf("expected stable path, got %q then %q", first, second)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected a single download, got %d", got)
	}
}

func TestEnsureCachedSkipsPlaceholders(t *testing.T) {
	cache := newCache(t, 300)
	ctx := context.Background()

	for _, url := range []string{"", "   ", "N/A", "n/a", "None"} {
		if path := cache.EnsureCached(ctx, url); path != "" {
			t.Fatalf("expected empty path for %q, got %q", url, path)
		}
	}
}

func TestEnsureCachedDownscalesWideImages(t *testing.T) {
	payload := encodePNG(t, 600, 900)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	cache := newCache(t, 300)
	path := cache.EnsureCached(context.Background(), server.URL+"/big.png")
	if path == "" {
		t.Fatal("expected cached path")
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open cached poster: %v", err)
	}
	defer file.Close()

	cfg, err := jpeg.DecodeConfig(file)
	if err != nil {
		t.Fatalf("decode cached poster: %v", err)
	}
	if cfg.Width != 300 {
		t.Fatalf("expected width 300, got %d", cfg.Width)
	}
	if cfg.Height != 450 {
		t.Fatalf("expected aspect ratio preserved (height 450), got %d", cfg.Height)
	}
}

func TestEnsureCachedKeepsSmallImages(t *testing.T) {
	payload := encodePNG(t, 120, 180)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	cache := newCache(t, 300)
	path := cache.EnsureCached(context.Background(), server.URL+"/small.png")
	if path == "" {
		t.Fatal("expected cached path")
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open cached poster: %v", err)
	}
	defer file.Close()

	cfg, err := jpeg.DecodeConfig(file)
	if err != nil {
		t.Fatalf("decode cached poster: %v", err)
	}
	if cfg.Width != 120 {
		t.Fatalf("expected original width kept, got %d", cfg.Width)
	}
}

func TestEnsureCachedFetchFailureReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	cache := newCache(t, 300)
	if path := cache.EnsureCached(context.Background(), server.URL+"/missing.png"); path != "" {
		t.Fatalf("expected empty path on fetch failure, got %q", path)
	}
}

func TestFilenameIsStable(t *testing.T) {
	a := posters.Filename("https://example.com/poster.jpg")
	b := posters.Filename("https://example.com/poster.jpg")
	if a != b {
		t.Fatalf("expected stable filename, got %q and %q", a, b)
	}
	if filepath.Ext(a) != ".jpg" {
		t.Fatalf("expected .jpg extension, got %q", a)
	}
	if len(a) != 24+len(".jpg") {
		t.Fatalf("unexpected filename length: %q", a)
	}
}
