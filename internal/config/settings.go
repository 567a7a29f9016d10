package config

import (
	"fmt"
	"time"
)

// CurrentVersion is the settings schema version written by Save.
const CurrentVersion = 1

// Defaults for a fresh settings file.
const (
	DefaultBaseURL      = "https://dummyjson.com"
	DefaultPageSize     = 10
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxRetries   = 2
	DefaultRetryDelay   = 500 * time.Millisecond
	DefaultLogFile      = "applywizard.log"
)

// Settings represents the entire configuration file.
type Settings struct {
	Version int             `yaml:"version"`
	API     APISettings     `yaml:"api"`
	Logging LoggingSettings `yaml:"logging"`
	UI      UISettings      `yaml:"ui"`
}

// APISettings configures the remote catalog and directory collections.
type APISettings struct {
	BaseURL      string        `yaml:"base_url"`
	PageSize     int           `yaml:"page_size"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
}

// LoggingSettings configures the zap logger. An empty level keeps logging silent.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"` // Relative paths resolve against the config directory
}

// UISettings toggles wizard behavior.
type UISettings struct {
	ShowFetchErrors      bool `yaml:"show_fetch_errors"`       // Render a hint when a page fails to load
	ResetDropdownOnClose bool `yaml:"reset_dropdown_on_close"` // Refetch from page 0 every time a dropdown opens
	Mouse                bool `yaml:"mouse"`                   // Enable pointer events (outside-click, item click)
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: CurrentVersion,
		API: APISettings{
			BaseURL:      DefaultBaseURL,
			PageSize:     DefaultPageSize,
			FetchTimeout: DefaultFetchTimeout,
			MaxRetries:   DefaultMaxRetries,
			RetryDelay:   DefaultRetryDelay,
		},
		Logging: LoggingSettings{
			File: DefaultLogFile,
		},
		UI: UISettings{
			Mouse: true,
		},
	}
}

// applyDefaults fills zero values left by a partial file.
func (s *Settings) applyDefaults() {
	defaults := NewSettings()

	if s.API.BaseURL == "" {
		s.API.BaseURL = defaults.API.BaseURL
	}
	if s.API.PageSize == 0 {
		s.API.PageSize = defaults.API.PageSize
	}
	if s.API.FetchTimeout == 0 {
		s.API.FetchTimeout = defaults.API.FetchTimeout
	}
	if s.API.RetryDelay == 0 {
		s.API.RetryDelay = defaults.API.RetryDelay
	}
	if s.Logging.File == "" {
		s.Logging.File = defaults.Logging.File
	}
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.API.PageSize <= 0 {
		return fmt.Errorf("api.page_size must be positive, got %d", s.API.PageSize)
	}
	if s.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be at most 100, got %d", s.API.PageSize)
	}
	if s.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries cannot be negative, got %d", s.API.MaxRetries)
	}
	if s.API.FetchTimeout < 0 {
		return fmt.Errorf("api.fetch_timeout cannot be negative, got %s", s.API.FetchTimeout)
	}
	switch s.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", s.Logging.Level)
	}
	return nil
}
