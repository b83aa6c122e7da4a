package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
app_name: demo
api:
  base_url: https://api.example.com/v2
  org_code: acme
  client_key: key-1
paging:
  default_page_size: 25
logger:
  level: debug
  format: json
breaker:
  max_failures: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "demo" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.API.BaseURL != "https://api.example.com/v2" || cfg.API.OrgCode != "acme" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.API.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.API.Timeout, defaultTimeout)
	}
	if cfg.Paging.DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %d", cfg.Paging.DefaultPageSize)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Format != "json" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Breaker.MaxFailures != 2 {
		t.Errorf("MaxFailures = %d", cfg.Breaker.MaxFailures)
	}
	if cfg.Breaker.Interval != time.Minute {
		t.Errorf("Interval = %v, want default", cfg.Breaker.Interval)
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	path := writeConfigFile(t, `
paging:
  default_page_size: 500
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted page size above 100")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Paging.DefaultPageSize != defaultPageSize {
		t.Errorf("DefaultPageSize = %d", cfg.Paging.DefaultPageSize)
	}
	if cfg.Breaker == nil || !cfg.Breaker.Enabled {
		t.Errorf("Breaker = %+v", cfg.Breaker)
	}
}
