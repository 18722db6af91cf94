// Package config loads econwatch's YAML configuration file. Every field has
// a default, so running without a file works out of the box. Credentials
// never live in the file; the extraction API key comes from the
// ECONWATCH_API_KEY environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StreamConfig describes the monitored stream and how to read its top item.
type StreamConfig struct {
	// URL is the stream page handed to the extraction service.
	URL string `yaml:"url"`
	// SourceType selects the top-item detector: "website" or "rss".
	SourceType string `yaml:"source_type"`
	// Selector is the CSS selector for website sources.
	Selector string `yaml:"selector"`
	// FeedURL is the feed address for rss sources.
	FeedURL string `yaml:"feed_url"`
}

// ExtractConfig describes the extraction API endpoint.
type ExtractConfig struct {
	BaseURL string `yaml:"base_url"`
}

// StateConfig selects the last-seen store backend.
type StateConfig struct {
	// Type is "file" or "sqlite".
	Type string `yaml:"type"`
	// Path is the state file or database path.
	Path string `yaml:"path"`
}

// ReportsConfig describes where conversion output lands.
type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

// WatchConfig describes the watch subcommand's schedule.
type WatchConfig struct {
	// Schedule is a cron expression ("*/10 * * * *") or a descriptor like
	// "@every 10m".
	Schedule string `yaml:"schedule"`
}

// ServeConfig describes the report API listener.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the root of the YAML configuration file.
type Config struct {
	Stream  StreamConfig  `yaml:"stream"`
	Extract ExtractConfig `yaml:"extract"`
	State   StateConfig   `yaml:"state"`
	Reports ReportsConfig `yaml:"reports"`
	Watch   WatchConfig   `yaml:"watch"`
	Serve   ServeConfig   `yaml:"serve"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			URL:        "https://tradingeconomics.com/stream?c=united+states",
			SourceType: "website",
		},
		State: StateConfig{
			Type: "file",
			Path: "last_news.json",
		},
		Reports: ReportsConfig{
			Dir: "reports",
		},
		Watch: WatchConfig{
			Schedule: "@every 10m",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns ~/.econwatch/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".econwatch", "config.yaml"), nil
}

// Load reads the configuration at path, layered over Default. A missing
// file is not an error; a file that exists but cannot be parsed is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
