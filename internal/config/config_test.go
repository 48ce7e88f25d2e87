package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Service.Endpoint != "http://localhost:8000" {
		t.Errorf("Expected default endpoint http://localhost:8000, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 60*time.Second {
		t.Errorf("Expected service timeout 60s, got %v", cfg.Service.Timeout)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Viewer.Mouse {
		t.Error("Expected mouse support enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "empty endpoint",
			config:  valid(func(c *Config) { c.Service.Endpoint = "" }),
			wantErr: true,
			errMsg:  "service endpoint must not be empty",
		},
		{
			name:    "relative endpoint",
			config:  valid(func(c *Config) { c.Service.Endpoint = "localhost:8000/api" }),
			wantErr: true,
			errMsg:  "invalid service endpoint",
		},
		{
			name:    "unsupported scheme",
			config:  valid(func(c *Config) { c.Service.Endpoint = "ftp://example.com" }),
			wantErr: true,
			errMsg:  "invalid service endpoint scheme: ftp (must be http or https)",
		},
		{
			name:    "zero timeout",
			config:  valid(func(c *Config) { c.Service.Timeout = 0 }),
			wantErr: true,
			errMsg:  "service timeout must be greater than 0",
		},
		{
			name:    "invalid output format",
			config:  valid(func(c *Config) { c.Output.DefaultFormat = "invalid" }),
			wantErr: true,
			errMsg:  "invalid output format: invalid (must be one of: json, text, markdown, csv)",
		},
		{
			name:    "invalid color mode",
			config:  valid(func(c *Config) { c.Output.ColorMode = "invalid" }),
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			config:  valid(func(c *Config) { c.Output.Theme = "neon" }),
			wantErr: true,
			errMsg:  "invalid theme: neon (must be one of: default, high-contrast, minimal)",
		},
		{
			name:    "negative debounce",
			config:  valid(func(c *Config) { c.Watch.Debounce = -time.Second }),
			wantErr: true,
			errMsg:  "watch debounce must be non-negative",
		},
		{
			name:    "https endpoint",
			config:  valid(func(c *Config) { c.Service.Endpoint = "https://lr.example.com/base" }),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
