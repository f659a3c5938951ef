package main

import (
	"testing"

	"github.com/rowjay/bell-schedule/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{State: config.StateConfig{Backend: "file"}}
	applyOverrides(cfg, &rootFlags{LogLevel: "debug"}, &overrideFlags{State: "SQLite", StatePath: "/tmp/bells.db", DayTypeURL: "http://localhost/day"})

	if cfg.Global.LogLevel != "debug" {
		t.Fatalf("log level not applied: %q", cfg.Global.LogLevel)
	}
	if cfg.State.Backend != "sqlite" {
		t.Fatalf("backend should be lowered, got %q", cfg.State.Backend)
	}
	if cfg.State.SQLite.Path != "/tmp/bells.db" || cfg.State.File.Path != "" {
		t.Fatalf("state path routed to wrong backend: %+v", cfg.State)
	}
	if cfg.DayType.URL != "http://localhost/day" {
		t.Fatalf("day type url not applied: %q", cfg.DayType.URL)
	}
}

func TestApplyOverridesFilePath(t *testing.T) {
	cfg := &config.Config{State: config.StateConfig{Backend: "file"}}
	applyOverrides(cfg, &rootFlags{}, &overrideFlags{StatePath: "/tmp/state.json"})
	if cfg.State.File.Path != "/tmp/state.json" {
		t.Fatalf("file path not applied: %+v", cfg.State)
	}
}

func TestCompressionFromPath(t *testing.T) {
	cases := map[string]string{
		"state.json":         "none",
		"state.json.gz":      "gzip",
		"state.json.zst.enc": "zstd",
	}
	for path, want := range cases {
		if got := compressionFromPath(path); got != want {
			t.Fatalf("%s: got %q, want %q", path, got, want)
		}
	}
}
