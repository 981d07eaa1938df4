package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmanager-backend/internal/config"
	"docmanager-backend/internal/seed"
	"docmanager-backend/pkg/container"
)

// NewSeedCommand loads the sample authors and documents into an empty store
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "seed",
		Short:        "Load sample authors and documents (no-op if authors exist)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container.NewContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Cleanup()

			if c.Config.Database.Driver == config.DriverMemory {
				return fmt.Errorf("seeding the memory store from the CLI has no effect, use APP_SEED=true on the API")
			}

			return seed.Run(cmd.Context(), c.AuthorService, c.DocumentService)
		},
	}
}
