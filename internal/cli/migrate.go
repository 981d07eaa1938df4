package cli

import (
	"github.com/spf13/cobra"

	"docmanager-backend/internal/config"
	"docmanager-backend/internal/infrastructure/database"
)

// NewMigrateCommand applies the schema to the configured PostgreSQL database
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Create the authors, documents, references and document_authors tables",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db := database.NewPostgresDB(cfg.Database.Pool())
			if err := db.Connect(cmd.Context()); err != nil {
				return err
			}
			defer db.Close()

			return database.Migrate(cmd.Context(), db.Pool)
		},
	}
}
