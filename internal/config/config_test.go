package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATA_SOURCE", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != SourceMock {
		t.Errorf("Source: got %q, want mock", cfg.Source)
	}
	if cfg.TopN != 5 || cfg.BottomN != 5 {
		t.Errorf("TopN/BottomN: got %d/%d, want 5/5", cfg.TopN, cfg.BottomN)
	}
	if cfg.Tiers.ExcellentRate != 5 {
		t.Errorf("Tiers.ExcellentRate: got %v, want 5", cfg.Tiers.ExcellentRate)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
source: api
api_base_url: http://upstream.local
rate_policy: derive
top_n: 3
tiers:
  excellent_rate: 6
  excellent_growth: 20
`)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TOP_N", "7")
	t.Setenv("DATA_SOURCE", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != SourceAPI {
		t.Errorf("Source: got %q, want api", cfg.Source)
	}
	if cfg.TopN != 7 {
		t.Errorf("TopN: got %d, want env override 7", cfg.TopN)
	}
	if cfg.RatePolicy != "derive" {
		t.Errorf("RatePolicy: got %q, want derive", cfg.RatePolicy)
	}
	if cfg.Tiers.ExcellentRate != 6 || cfg.Tiers.ExcellentGrowth != 20 {
		t.Errorf("Tiers: got %+v", cfg.Tiers)
	}
	if cfg.Tiers.GoodRate != 3 {
		t.Errorf("unset tier kept default: got %v, want 3", cfg.Tiers.GoodRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"api without url", func(c *Config) { c.Source = SourceAPI }, true},
		{"postgres without dsn", func(c *Config) { c.Source = SourcePostgres }, true},
		{"postgres with dsn", func(c *Config) { c.Source = SourcePostgres; c.DatabaseURL = "postgres://x" }, false},
		{"unknown source", func(c *Config) { c.Source = "redis" }, true},
		{"bad rate policy", func(c *Config) { c.RatePolicy = "guess" }, true},
		{"negative top", func(c *Config) { c.TopN = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
