// Package sitectl implements the site's content administration CLI.
package sitectl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage/postgres"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage/sqlite"
)

var (
	databaseURL string
	dbPath      string
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Manage blog posts for the site",
	Long: `Sitectl manages blog content directly against the site's database.

Posts created here appear immediately on the site and its JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sitectl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (overrides --db-path)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite database file path (default data/site.db)")

	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// SetVersion overrides the reported version, usually from build metadata.
func SetVersion(v string) {
	version = v
}

// Execute runs the CLI entrypoint.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root command, primarily for tests.
func Root() *cobra.Command {
	return rootCmd
}

func openStore(ctx context.Context) (storage.PostStore, error) {
	if url := envOr(databaseURL, "LOUISBRANCH_DEV_DATABASE_URL", ""); url != "" {
		store, err := postgres.Open(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	}

	path := envOr(dbPath, "LOUISBRANCH_DEV_DB_PATH", "data/site.db")
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

// envOr resolves flag, then environment, then fallback.
func envOr(flagValue, key, fallback string) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
