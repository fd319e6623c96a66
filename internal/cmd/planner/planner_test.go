package planner

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DBPath != "planner.db" {
		t.Fatalf("expected default db path planner.db, got %q", cfg.DBPath)
	}
	if cfg.Locale != "en" {
		t.Fatalf("expected default locale en, got %q", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("RALLYPOINT_PLANNER_PORT", "9090")
	t.Setenv("RALLYPOINT_PLANNER_QUORUM", "2")

	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9091", "-db", "/tmp/planner.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9091 {
		t.Fatalf("expected port override 9091, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/planner.db" {
		t.Fatalf("expected db path override, got %q", cfg.DBPath)
	}
	if cfg.Quorum != 2 {
		t.Fatalf("expected quorum from env, got %d", cfg.Quorum)
	}
}
