// Package app assembles the site's HTTP server from its storage, profile,
// and handler pieces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/platform/config"
	"github.com/louisbranch/louisbranch.dev/internal/platform/web/httpx"
	"github.com/louisbranch/louisbranch.dev/internal/site/api"
	"github.com/louisbranch/louisbranch.dev/internal/site/profile"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage/postgres"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage/sqlite"
	"github.com/louisbranch/louisbranch.dev/internal/site/web"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config defines the inputs for the site server.
type Config struct {
	// HTTPAddr is the listen address, e.g. "localhost:8080".
	HTTPAddr string
	// DatabaseURL selects the Postgres backend when set.
	DatabaseURL string
	// DBPath is the SQLite database file used when DatabaseURL is empty.
	DBPath string
	// ProfilePath points to an optional site profile YAML file.
	ProfilePath string
}

type serverEnv struct {
	DatabaseURL string `env:"LOUISBRANCH_DEV_DATABASE_URL"`
	DBPath      string `env:"LOUISBRANCH_DEV_DB_PATH"`
	ProfilePath string `env:"LOUISBRANCH_DEV_PROFILE_PATH"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "site.db")
	}
	return cfg
}

// Server hosts the site HTTP server and owns its storage handle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.PostStore
}

// NewServer opens storage, loads the site profile, and wires the handlers.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	env := loadServerEnv()
	store, err := openStore(ctx, cfg, env)
	if err != nil {
		return nil, err
	}

	profilePath := cfg.ProfilePath
	if strings.TrimSpace(profilePath) == "" {
		profilePath = env.ProfilePath
	}
	siteProfile, err := profile.LoadOrDefault(profilePath)
	if err != nil {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close store: %v", closeErr)
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           NewHandler(store, siteProfile),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// NewHandler mounts the JSON API and HTML routes behind the shared
// middleware chain. It is the test-oriented entrypoint.
func NewHandler(store storage.PostStore, siteProfile profile.Profile) http.Handler {
	mux := http.NewServeMux()
	apiHandler := api.NewHandler(store)
	mux.Handle("/api/posts", apiHandler)
	mux.Handle("/api/posts/", apiHandler)
	mux.Handle("/", web.NewHandler(store, siteProfile))
	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())
}

func openStore(ctx context.Context, cfg Config, env serverEnv) (storage.PostStore, error) {
	url := strings.TrimSpace(cfg.DatabaseURL)
	if url == "" {
		url = strings.TrimSpace(env.DatabaseURL)
	}
	if url != "" {
		store, err := postgres.Open(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	}

	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		path = env.DBPath
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("site listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
