package site

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.DBPath != "data/site.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/site.db")
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.ProfilePath != "" {
		t.Fatalf("ProfilePath = %q, want empty", cfg.ProfilePath)
	}
}

func TestParseConfigOverrideHTTPAddr(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002"}, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"LOUISBRANCH_DEV_HTTP_ADDR":    "0.0.0.0:3000",
		"LOUISBRANCH_DEV_DATABASE_URL": "postgres://localhost/site",
		"LOUISBRANCH_DEV_DB_PATH":      "/var/lib/site/site.db",
		"LOUISBRANCH_DEV_PROFILE_PATH": "/etc/site/site.yaml",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:3000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/site" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DBPath != "/var/lib/site/site.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ProfilePath != "/etc/site/site.yaml" {
		t.Fatalf("ProfilePath = %q", cfg.ProfilePath)
	}
}

func TestParseConfigFlagBeatsEnv(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "LOUISBRANCH_DEV_HTTP_ADDR" {
			return "0.0.0.0:3000", true
		}
		return "", false
	}

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "localhost:4000"}, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:4000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:4000")
	}
}

func TestParseConfigIgnoresBlankEnv(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "LOUISBRANCH_DEV_DB_PATH" {
			return "   ", true
		}
		return "", false
	}

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "data/site.db" {
		t.Fatalf("DBPath = %q, want default", cfg.DBPath)
	}
}
