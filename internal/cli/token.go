package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docmanager-backend/internal/config"
	"docmanager-backend/internal/shared"
	"docmanager-backend/pkg/jwt"
)

type tokenOptions struct {
	subject string
	role    string
	expiry  time.Duration
}

// NewTokenCommand mints an access token signed with JWT_SECRET, for calling
// the queue-backed delete routes.
func NewTokenCommand() *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Mint an access token for the queue delete routes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET is not set, auth is disabled")
			}

			expiry := opts.expiry
			if expiry <= 0 {
				expiry = time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
			}

			token, err := jwt.NewManager(cfg.JWT.Secret, expiry).GenerateAccessToken(opts.subject, opts.role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.subject, "subject", "s", "operator", "token subject")
	cmd.Flags().StringVarP(&opts.role, "role", "r", shared.RoleAdmin, "role claim")
	cmd.Flags().DurationVar(&opts.expiry, "expiry", 0, "token lifetime (default JWT_ACCESS_EXPIRY minutes)")

	return cmd
}
