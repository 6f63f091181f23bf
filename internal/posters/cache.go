package posters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"
)

// digestLength is the number of hex digits used for cache filenames.
const digestLength = 24

// placeholders are source values that mean "no poster available".
var placeholders = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"none": {},
}

// Cache stores downsized poster images keyed by source URL digest.
type Cache struct {
	dir         string
	targetWidth int
	quality     int
	httpClient  *http.Client
	log         *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.log = logger.With("component", "posters")
		}
	}
}

// New creates a poster cache rooted at dir.
func New(dir string, targetWidth, quality int, timeout time.Duration, opts ...Option) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("poster cache dir required")
	}
	if targetWidth <= 0 {
		targetWidth = 300
	}
	if quality <= 0 || quality > 100 {
		quality = 70
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cache := &Cache{
		dir:         dir,
		targetWidth: targetWidth,
		quality:     quality,
		httpClient:  &http.Client{Timeout: timeout},
		log:         slog.Default().With("component", "posters"),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Filename computes the stable cache filename for a source URL.
func Filename(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:digestLength] + ".jpg"
}

// EnsureCached returns the local path of the cached poster for sourceURL,
// fetching and converting it when absent. It returns "" (and no error) for
// empty or placeholder URLs and for any fetch or decode failure.
func (c *Cache) EnsureCached(ctx context.Context, sourceURL string) string {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return ""
	}
	if _, ok := placeholders[strings.ToLower(sourceURL)]; ok {
		return ""
	}

	path := filepath.Join(c.dir, Filename(sourceURL))
	if _, err := os.Stat(path); err == nil {
		return path
	}

	img, err := c.fetch(ctx, sourceURL)
	if err != nil {
		c.log.Warn("poster fetch failed", "url", sourceURL, "error", err)
		return ""
	}

	img = c.downscale(img)

	if err := c.write(path, img); err != nil {
		c.log.Warn("poster write failed", "path", path, "error", err)
		return ""
	}
	return path
}

func (c *Cache) fetch(ctx context.Context, sourceURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poster fetch returned %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (c *Cache) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= c.targetWidth {
		return img
	}

	height := bounds.Dy() * c.targetWidth / width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.targetWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func (c *Cache) write(path string, img image.Image) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// Temp file plus rename keeps a concurrent duplicate download from
	// exposing a half-written file.
	tmp, err := os.CreateTemp(c.dir, ".poster-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: c.quality}); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("encode jpeg: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("place cached poster: %w", err)
	}
	return nil
}
