package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoaderWithPaths(nil)

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Service.Endpoint != DefaultConfig().Service.Endpoint {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
service:
  endpoint: "http://lr.internal:9000"
  timeout: 15s
output:
  default_format: "json"
  verbose: true
viewer:
  download_dir: "/tmp/diagrams"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.Endpoint != "http://lr.internal:9000" {
		t.Errorf("Expected endpoint http://lr.internal:9000, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", cfg.Service.Timeout)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Viewer.DownloadDir != "/tmp/diagrams" {
		t.Errorf("Expected download dir /tmp/diagrams, got %s", cfg.Viewer.DownloadDir)
	}
	// keys absent from the file keep their defaults
	if cfg.Service.UserAgent != "lrview" {
		t.Errorf("Expected default user agent to survive, got %q", cfg.Service.UserAgent)
	}
	if !cfg.Viewer.Mouse {
		t.Error("Expected mouse default to survive a partial viewer section")
	}
}

func TestLoadConfigPriority(t *testing.T) {
	tempDir := t.TempDir()
	project := filepath.Join(tempDir, "project.yaml")
	system := filepath.Join(tempDir, "system.yaml")

	if err := os.WriteFile(system, []byte("service:\n  endpoint: http://system:1\n  timeout: 5s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(project, []byte("service:\n  endpoint: http://project:2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoaderWithPaths([]string{project, filepath.Join(tempDir, "missing.yaml"), system}).LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Service.Endpoint != "http://project:2" {
		t.Errorf("Expected project config to win, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 5*time.Second {
		t.Errorf("Expected system timeout to be kept, got %v", cfg.Service.Timeout)
	}
}

func TestLoadConfigBrokenFileWarns(t *testing.T) {
	tempDir := t.TempDir()
	broken := filepath.Join(tempDir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("service: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	var warnings []string
	loader := NewLoaderWithPaths([]string{broken})
	loader.warn = func(format string, args ...interface{}) { warnings = append(warnings, format) }

	if _, err := loader.LoadConfig(""); err != nil {
		t.Fatalf("Broken search-path file should not fail loading: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected one warning, got %d", len(warnings))
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"LRVIEW_SERVICE_ENDPOINT":      "https://env.example.com",
		"LRVIEW_SERVICE_TIMEOUT":       "2m",
		"LRVIEW_OUTPUT_VERBOSE":        "true",
		"LRVIEW_OUTPUT_DEFAULT_FORMAT": "csv",
		"LRVIEW_VIEWER_MOUSE":          "false",
		"LRVIEW_WATCH_DEBOUNCE":        "1s",
	}
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.Service.Endpoint != "https://env.example.com" {
		t.Errorf("Expected env endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 2*time.Minute {
		t.Errorf("Expected 2m timeout, got %v", cfg.Service.Timeout)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose from env")
	}
	if cfg.Output.DefaultFormat != "csv" {
		t.Errorf("Expected csv format, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Viewer.Mouse {
		t.Error("Expected mouse disabled from env")
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected 1s debounce, got %v", cfg.Watch.Debounce)
	}
}

func TestEnvOverridesInvalid(t *testing.T) {
	tests := map[string]string{
		"LRVIEW_SERVICE_TIMEOUT": "soon",
		"LRVIEW_OUTPUT_VERBOSE":  "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			err := applyEnvOverrides(DefaultConfig(), func(k string) string {
				if k == key {
					return value
				}
				return ""
			})
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Errorf("Expected error naming %s, got %v", key, err)
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"config.yaml", false},
		{"/home/user/lrview.yml", false},
		{"config.json", true},
		{"../secrets.yaml", true},
		{"/proc/self/environ.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/lrview"); got != filepath.Join(home, "lrview") {
		t.Errorf("expandPath() = %s", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath() should leave absolute paths alone, got %s", got)
	}
}

func TestSampleConfigsLoad(t *testing.T) {
	for name, content := range map[string]string{"full": SampleConfig(), "minimal": MinimalSampleConfig()} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.yaml")
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := NewLoaderWithPaths(nil).LoadConfig(path); err != nil {
				t.Errorf("sample config should load: %v", err)
			}
		})
	}
}
