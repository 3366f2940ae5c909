package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESUMATCH_HOME", dir)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if AppConfig.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, expected %q", AppConfig.APIURL, DefaultAPIURL)
	}
	if AppConfig.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %v, expected no timeout", AppConfig.RequestTimeout)
	}
	if AppConfig.BrowserTimeout != 30*time.Second {
		t.Errorf("BrowserTimeout = %v, expected 30s", AppConfig.BrowserTimeout)
	}
	if AppConfig.JobFetchMode != FetchModeBrowser {
		t.Errorf("JobFetchMode = %q, expected %q", AppConfig.JobFetchMode, FetchModeBrowser)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("RESUMATCH_HOME", t.TempDir())
	t.Setenv("RESUMATCH_API_URL", "https://resumatch.example.com")

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	if AppConfig.APIURL != "https://resumatch.example.com" {
		t.Errorf("APIURL = %q, expected env override", AppConfig.APIURL)
	}
}

func TestSetPersists(t *testing.T) {
	t.Setenv("RESUMATCH_HOME", t.TempDir())
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if err := Set("request_timeout", "45s"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Initialize(); err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if AppConfig.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v, expected 45s", AppConfig.RequestTimeout)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	t.Setenv("RESUMATCH_HOME", t.TempDir())
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "theme", "dark"},
		{"url without scheme", "api_url", "localhost:5000"},
		{"bad fetch mode", "job_fetch_mode", "curl"},
		{"bad duration", "request_timeout", "soon"},
		{"negative duration", "browser_timeout", "-1s"},
		{"bad log level", "log_level", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) should have failed", tt.key, tt.value)
			}
		})
	}
}
