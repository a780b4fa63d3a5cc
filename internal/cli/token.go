package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pet-clinic-visits/internal/adapters/auth/jwtauth"
	"pet-clinic-visits/internal/ports/capabilities"
)

func newTokenCmd() *cobra.Command {
	var (
		user  string
		email string
		roles string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed JWT for local testing",
		Long:  "Firma un token HS256 con AUTH_JWT_SECRET para probar la API (Authorization: Bearer <token>).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET is required to issue tokens")
			}

			caps := capabilities.ParseList(roles)
			if len(caps) == 0 {
				return fmt.Errorf("no known roles in %q", roles)
			}

			iss, err := jwtauth.NewIssuer(jwtauth.Config{
				Secret: cfg.Auth.JWTSecret,
				Issuer: cfg.Auth.JWTIssuer,
				TTL:    cfg.Auth.TokenTTL,
			})
			if err != nil {
				return err
			}

			tok, err := iss.Issue(user, email, caps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "dev-user", "subject (user id) del token")
	cmd.Flags().StringVar(&email, "email", "", "email opcional")
	cmd.Flags().StringVar(&roles, "roles", "OWNER_ADMIN", "roles CSV (OWNER_ADMIN,VET_ADMIN,ADMIN)")

	return cmd
}
