package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the operator CLI: token minting, schema migration
// and sample data loading against the configured store.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docmanager",
		Short: "Document management operator tools",
		Long:  "Operator commands for the document management backend. Configuration is read from the environment (.env is loaded if present).",
	}

	cmd.AddCommand(NewTokenCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}
