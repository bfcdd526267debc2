package main

import (
	"os"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/search"
	"github.com/pelletier/go-toml/v2"
)

// Config holds defaults loaded from an optional TOML file. Command-line
// flags take precedence over config values.
type Config struct {
	DB     string       `toml:"db"`
	Crawl  CrawlConfig  `toml:"crawl"`
	Search SearchConfig `toml:"search"`
}

// CrawlConfig holds crawl defaults.
type CrawlConfig struct {
	Depth       int    `toml:"depth"`
	Timeout     string `toml:"timeout"`
	Delay       string `toml:"delay"`
	Concurrency int    `toml:"concurrency"`
	UserAgent   string `toml:"user_agent"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Model string `toml:"model"`
	Limit int    `toml:"limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Crawl: CrawlConfig{
			Depth:       sitesearch.DefaultMaxDepth,
			Timeout:     sitesearch.DefaultTimeout.String(),
			Delay:       sitesearch.DefaultDelay.String(),
			Concurrency: sitesearch.DefaultConcurrency,
		},
		Search: SearchConfig{
			Limit: search.DefaultLimit,
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the built-in
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate checks that duration strings parse.
func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Crawl.Timeout); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Crawl.Delay); err != nil {
		return err
	}
	return nil
}
