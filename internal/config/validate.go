package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateUPC(); err != nil {
		return err
	}
	if err := c.validatePosters(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateUPC() error {
	for _, endpoint := range c.UPC.Endpoints {
		if !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("upc.endpoints entry %q must start with '/'", endpoint)
		}
	}
	return nil
}

func (c *Config) validatePosters() error {
	if c.Posters.JPEGQuality < 1 || c.Posters.JPEGQuality > 100 {
		return errors.New("posters.jpeg_quality must be between 1 and 100")
	}
	if c.Posters.TargetWidth < 1 {
		return errors.New("posters.target_width must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
