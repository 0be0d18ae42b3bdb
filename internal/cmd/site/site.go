// Package site parses configuration and runs the site server.
package site

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/platform/otel"
	"github.com/louisbranch/louisbranch.dev/internal/site/app"
)

const (
	defaultHTTPAddr = "localhost:8080"
	defaultDBPath   = "data/site.db"

	otelShutdownTimeout = 5 * time.Second
)

// Config holds the site command configuration.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	DBPath      string
	ProfilePath string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr:    envOrDefault(lookup, "LOUISBRANCH_DEV_HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL: envOrDefault(lookup, "LOUISBRANCH_DEV_DATABASE_URL", ""),
		DBPath:      envOrDefault(lookup, "LOUISBRANCH_DEV_DB_PATH", defaultDBPath),
		ProfilePath: envOrDefault(lookup, "LOUISBRANCH_DEV_PROFILE_PATH", ""),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection URL (overrides -db-path)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file path")
	fs.StringVar(&cfg.ProfilePath, "profile", cfg.ProfilePath, "Site profile YAML path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the site server.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "site")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	server, err := app.NewServer(ctx, app.Config{
		HTTPAddr:    cfg.HTTPAddr,
		DatabaseURL: cfg.DatabaseURL,
		DBPath:      cfg.DBPath,
		ProfilePath: cfg.ProfilePath,
	})
	if err != nil {
		return fmt.Errorf("init site server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve site: %w", err)
	}
	return nil
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
