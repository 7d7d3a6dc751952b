package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_SaneValues(t *testing.T) {
	cfg := Default()
	if cfg.Analysis.RadiusMiles != 2.0 {
		t.Errorf("RadiusMiles = %g, want 2.0", cfg.Analysis.RadiusMiles)
	}
	if cfg.Analysis.MonthsBack != 6 {
		t.Errorf("MonthsBack = %d, want 6", cfg.Analysis.MonthsBack)
	}
	if cfg.Analysis.MinComps != 3 {
		t.Errorf("MinComps = %d, want 3", cfg.Analysis.MinComps)
	}
	if cfg.Renovation.ContingencyRate != 0.15 {
		t.Errorf("ContingencyRate = %g, want 0.15", cfg.Renovation.ContingencyRate)
	}
	if got := cfg.Risk.PriceRatio + cfg.Risk.Confidence + cfg.Risk.SampleSize; got != 100 {
		t.Errorf("risk weights sum to %g, want 100", got)
	}
	if cfg.Cache.TTL() != 24*time.Hour {
		t.Errorf("cache TTL = %v, want 24h", cfg.Cache.TTL())
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
analysis:
  radius_miles: 1.5
  min_comps: 5
renovation:
  contingency_rate: 0.2
cache:
  addr: "localhost:6379"
  ttl_hours: 48
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.RadiusMiles != 1.5 {
		t.Errorf("RadiusMiles = %g, want 1.5 from file", cfg.Analysis.RadiusMiles)
	}
	if cfg.Analysis.MinComps != 5 {
		t.Errorf("MinComps = %d, want 5 from file", cfg.Analysis.MinComps)
	}
	// Untouched keys keep their defaults.
	if cfg.Analysis.MonthsBack != 6 {
		t.Errorf("MonthsBack = %d, want default 6", cfg.Analysis.MonthsBack)
	}
	if cfg.Cache.TTL() != 48*time.Hour {
		t.Errorf("cache TTL = %v, want 48h from file", cfg.Cache.TTL())
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Analysis.RadiusMiles != Default().Analysis.RadiusMiles {
		t.Error("empty path did not return defaults")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file did not error")
	}
}

func TestApplyEnv_CredentialsFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_USERNAME", "arv_reader")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("REDIS_ADDR", "cache.example.com:6379")

	cfg := Default()
	cfg.applyEnv()
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Host = %q, want env value", cfg.Database.Host)
	}
	if cfg.Database.Username != "arv_reader" || cfg.Database.Password != "hunter2" {
		t.Error("credentials not taken from environment")
	}
	if cfg.Cache.Addr != "cache.example.com:6379" {
		t.Errorf("Cache.Addr = %q, want env value", cfg.Cache.Addr)
	}
	// Defaults survive where no env var is set.
	if cfg.Database.Port != "1521" {
		t.Errorf("Port = %q, want default 1521", cfg.Database.Port)
	}
}

func TestLoadEnvFile_ParsesAndSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := `
# comment
DB_SERVICE=XEPDB1
DB_WALLET_LOCATION="/opt/wallet"

MALFORMED LINE
`
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DB_SERVICE", "ALREADY_SET")
	t.Setenv("DB_WALLET_LOCATION", "")

	if err := loadEnvFile(envPath); err != nil {
		t.Fatalf("loadEnvFile failed: %v", err)
	}
	if got := os.Getenv("DB_SERVICE"); got != "ALREADY_SET" {
		t.Errorf("existing env var overwritten: %q", got)
	}
	if got := os.Getenv("DB_WALLET_LOCATION"); got != "/opt/wallet" {
		t.Errorf("quoted value = %q, want unquoted /opt/wallet", got)
	}
}
