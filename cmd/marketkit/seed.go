package main

import (
	"github.com/spf13/cobra"

	"marketkit/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo marketplace in an empty database",
	Long: `Applies pending migrations, then provisions a demo marketplace unless one
exists already. Translation caching is skipped; a fresh marketplace has no
cached translations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connectDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := newServices(db, cfg, nil)
		if err != nil {
			return err
		}
		return database.Seed(cmd.Context(), db, svc.marketplaces)
	},
}
