package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pg "pet-clinic-visits/internal/adapters/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Aplica las migraciones embebidas (schema y datos semilla) sobre DB_DSN.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DB.DSN == "" {
				return errors.New("DB_DSN is required for migrate")
			}

			db, err := pg.Open(cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
