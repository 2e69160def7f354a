package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Storage.Dir == "" {
		t.Fatalf("default storage dir empty")
	}
	if cfg.Auth.SessionTTL.Std() != 7*24*time.Hour {
		t.Fatalf("default session ttl = %v", cfg.Auth.SessionTTL.Std())
	}
	if cfg.Auth.MaxFails <= 0 {
		t.Fatalf("default max_fails = %d", cfg.Auth.MaxFails)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "localbase.toml")
	content := `
[storage]
dir = "/tmp/lb"
secret = "s"

[auth]
signing_key = "k"
session_ttl = "24h"
fail_window = "10m"
max_fails = 3
block_for = "5m"

[admin]
email = "root@x.y"
password = "pw"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Dir != "/tmp/lb" || cfg.Storage.Secret != "s" {
		t.Fatalf("storage config: %+v", cfg.Storage)
	}
	if cfg.Auth.SessionTTL.Std() != 24*time.Hour || cfg.Auth.BlockFor.Std() != 5*time.Minute {
		t.Fatalf("auth durations: %+v", cfg.Auth)
	}
	if cfg.Admin.Email != "root@x.y" {
		t.Fatalf("admin config: %+v", cfg.Admin)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("want error for missing file")
	}
}

func TestWriteExample(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "localbase.toml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if err := WriteExample(path); err == nil {
		t.Fatalf("overwrite should be refused")
	}
}
