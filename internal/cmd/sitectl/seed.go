package sitectl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/louisbranch/louisbranch.dev/internal/site/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo posts for local development",
	Long:  `Insert the demo post fixtures. Slugs that already exist are skipped, so running seed twice is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		created, err := seed.Apply(cmd.Context(), store)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d post(s)\n", created)
		return nil
	},
}
