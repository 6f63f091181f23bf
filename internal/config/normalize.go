package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOMDB()
	c.normalizeUPC()
	c.normalizePosters()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOMDB() {
	c.OMDB.APIKey = strings.TrimSpace(c.OMDB.APIKey)
	if c.OMDB.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDB.BaseURL = strings.TrimSpace(c.OMDB.BaseURL)
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = defaultOMDBBaseURL
	}
	if c.OMDB.TimeoutSeconds <= 0 {
		c.OMDB.TimeoutSeconds = defaultOMDBTimeoutSeconds
	}
}

func (c *Config) normalizeUPC() {
	c.UPC.APIKey = strings.TrimSpace(c.UPC.APIKey)
	if c.UPC.APIKey == "" {
		if value, ok := os.LookupEnv("UPC_API_KEY"); ok {
			c.UPC.APIKey = strings.TrimSpace(value)
		}
	}
	c.UPC.BaseURL = strings.TrimRight(strings.TrimSpace(c.UPC.BaseURL), "/")
	if c.UPC.BaseURL == "" {
		c.UPC.BaseURL = defaultUPCBaseURL
	}
	endpoints := make([]string, 0, len(c.UPC.Endpoints))
	for _, endpoint := range c.UPC.Endpoints {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed == "" {
			continue
		}
		endpoints = append(endpoints, trimmed)
	}
	if len(endpoints) == 0 {
		endpoints = defaultUPCEndpoints()
	}
	c.UPC.Endpoints = endpoints
	if c.UPC.TimeoutSeconds <= 0 {
		c.UPC.TimeoutSeconds = defaultUPCTimeoutSeconds
	}
}

func (c *Config) normalizePosters() {
	if c.Posters.TargetWidth <= 0 {
		c.Posters.TargetWidth = defaultPosterTargetWidth
	}
	if c.Posters.JPEGQuality <= 0 {
		c.Posters.JPEGQuality = defaultPosterJPEGQuality
	}
	if c.Posters.TimeoutSeconds <= 0 {
		c.Posters.TimeoutSeconds = defaultPosterTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
