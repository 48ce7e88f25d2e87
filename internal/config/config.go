package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Viewer  ViewerConfig  `yaml:"viewer" json:"viewer"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServiceConfig points at the remote analysis service
type ServiceConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`     // base URL
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // per-request timeout
	UserAgent string        `yaml:"user_agent" json:"user_agent"` // sent with every request
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Theme         string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`
}

// ViewerConfig configures the diagram viewer
type ViewerConfig struct {
	DownloadDir string `yaml:"download_dir" json:"download_dir"`
	Mouse       bool   `yaml:"mouse" json:"mouse"` // enable wheel zoom and drag
}

// WatchConfig configures the watch command
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
}

// LoggingConfig configures where logs go while the TUI owns the terminal
type LoggingConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint:  "http://localhost:8000",
			Timeout:   60 * time.Second,
			UserAgent: "lrview",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Theme:         "default",
		},
		Viewer: ViewerConfig{
			DownloadDir: ".",
			Mouse:       true,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Dir: "~/.cache/lrview",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must be non-negative")
	}
	return nil
}

func (c *Config) validateServiceConfig() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("service endpoint must not be empty")
	}
	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service endpoint: %s (must be an absolute http(s) URL)", c.Service.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid service endpoint scheme: %s (must be http or https)", u.Scheme)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("service timeout must be greater than 0")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

// DownloadDir returns the viewer download directory with ~ expanded
func (c *Config) DownloadDir() string {
	return expandPath(c.Viewer.DownloadDir)
}

// LogDir returns the log directory with ~ expanded
func (c *Config) LogDir() string {
	return expandPath(c.Logging.Dir)
}
