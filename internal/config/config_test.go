package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SATCOVER_CONFIG", "")
	t.Setenv("PORT", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.WindowEnd != 24 || cfg.AuthMode != "dev" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "satcover.yaml")
	body := "port: \"9090\"\nwindowEnd: 48\nrateRps: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SATCOVER_CONFIG", path)
	t.Setenv("PORT", "7070")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should override file, got %q", cfg.Port)
	}
	if cfg.WindowEnd != 48 || cfg.RateRPS != 5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n :"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SATCOVER_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
