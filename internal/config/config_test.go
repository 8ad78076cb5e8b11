package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Search.DefaultRadiusKm != 50 || cfg.Search.MinRadiusKm != 0.1 || cfg.Search.MaxRadiusKm != 200 {
		t.Errorf("radius defaults = %+v, want 50 in [0.1, 200]", cfg.Search)
	}
	if cfg.Search.DefaultLimit != 100 || cfg.Search.MaxLimit != 200 {
		t.Errorf("limit defaults = %+v, want 100 with max 200", cfg.Search)
	}
	if cfg.Directory.MaxRetries != 3 {
		t.Errorf("Directory.MaxRetries = %d, want 3", cfg.Directory.MaxRetries)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://parks@localhost/parks")
	t.Setenv("NPS_API_KEY", "secret")
	t.Setenv("NPS_MAX_RETRIES", "5")
	t.Setenv("NPS_INITIAL_BACKOFF", "50ms")
	t.Setenv("SEARCH_MAX_RADIUS_KM", "150")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Driver != "postgres" || cfg.Database.DSN() != "postgres://parks@localhost/parks" {
		t.Errorf("database = %+v, want postgres URL", cfg.Database)
	}
	if cfg.Directory.APIKey != "secret" {
		t.Errorf("Directory.APIKey = %q, want secret", cfg.Directory.APIKey)
	}
	if cfg.Directory.MaxRetries != 5 {
		t.Errorf("Directory.MaxRetries = %d, want 5", cfg.Directory.MaxRetries)
	}
	if cfg.Directory.InitialBackoff != 50*time.Millisecond {
		t.Errorf("Directory.InitialBackoff = %v, want 50ms", cfg.Directory.InitialBackoff)
	}
	if cfg.Search.MaxRadiusKm != 150 {
		t.Errorf("Search.MaxRadiusKm = %v, want 150", cfg.Search.MaxRadiusKm)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "data/trailblazer.db" {
		t.Errorf("untouched default changed: Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "parks.yaml")
	content := "database:\n  path: /tmp/parks.db\nsearch:\n  default_limit: 25\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SEARCH_DEFAULT_LIMIT", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/parks.db" {
		t.Errorf("Database.Path = %q, want value from file", cfg.Database.Path)
	}
	if cfg.Search.DefaultLimit != 30 {
		t.Errorf("Search.DefaultLimit = %d, want env to win over file", cfg.Search.DefaultLimit)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres without url", func(c *Config) { c.Database.Driver = "postgres" }, "DATABASE_URL"},
		{"zero page size", func(c *Config) { c.Directory.PageSize = 0 }, "page_size"},
		{"default radius out of bounds", func(c *Config) { c.Search.DefaultRadiusKm = 500 }, "default_radius_km"},
		{"default limit above max", func(c *Config) { c.Search.DefaultLimit = 300 }, "limits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("TRAILBLAZER_TEST_KEY", "value")
	if got := Get("TRAILBLAZER_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
	if got := Get("TRAILBLAZER_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}
}
