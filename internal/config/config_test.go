package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected DataDir: %q", cfg.DataDir)
	}
	if cfg.MaxEntriesPerEmail != 4 {
		t.Fatalf("unexpected MaxEntriesPerEmail: %d", cfg.MaxEntriesPerEmail)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
}

func TestLoad_AdminTokenRequiredInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ADMIN_TOKEN is empty in prod")
	}
}

func TestLoad_EntryCapValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENTRY_CAP", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for ENTRY_CAP=0")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_EntryCapOverride(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENTRY_CAP", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MaxEntriesPerEmail != 2 {
		t.Fatalf("unexpected MaxEntriesPerEmail: %d", cfg.MaxEntriesPerEmail)
	}
}
