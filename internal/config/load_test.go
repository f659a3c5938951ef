package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BELLS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.State.Backend != "file" {
		t.Fatalf("unexpected backend: %s", cfg.State.Backend)
	}
	if cfg.DayType.URL != DefaultDayTypeURL {
		t.Fatalf("unexpected day type url: %s", cfg.DayType.URL)
	}
	if cfg.DayType.Timeout != 0 {
		t.Fatalf("expected no day type timeout, got %s", cfg.DayType.Timeout)
	}
	if cfg.Global.OperationTimeout != 30*time.Second {
		t.Fatalf("unexpected operation timeout: %s", cfg.Global.OperationTimeout)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bells.yaml")
	body := []byte("state:\n  backend: SQLite\n  sqlite:\n    path: /tmp/bells.db\ndaytype:\n  timeout: 5s\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BELLS_GLOBAL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.State.Backend != "sqlite" || cfg.State.SQLite.Path != "/tmp/bells.db" {
		t.Fatalf("unexpected state config: %+v", cfg.State)
	}
	if cfg.DayType.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.DayType.Timeout)
	}
	if cfg.Global.LogLevel != "debug" {
		t.Fatalf("env override not applied: %s", cfg.Global.LogLevel)
	}
}

func TestLoadEncrypted(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "bells.yaml")
	if err := os.WriteFile(plain, []byte("state:\n  backend: memory\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	enc := filepath.Join(dir, "bells.yaml.enc")
	if err := EncryptConfigFile(plain, enc, key); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	t.Setenv("BELLS_CONFIG_KEY", key)
	cfg, err := Load(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.State.Backend != "memory" {
		t.Fatalf("unexpected backend: %s", cfg.State.Backend)
	}
}

func TestEncryptConfigFileGuards(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "bells.yaml")
	if err := os.WriteFile(plain, []byte("global:\n  log_level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))

	if err := EncryptConfigFile(plain, plain, key); err == nil {
		t.Fatalf("expected refusal to overwrite input")
	}
	if err := EncryptConfigFile(plain, filepath.Join(dir, "out.yaml"), key); err == nil {
		t.Fatalf("expected error for output without .enc")
	}
	if err := EncryptConfigFile(plain, "", key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(plain + ".enc"); err != nil {
		t.Fatalf("default output missing: %v", err)
	}
}
