// Package cli arma el árbol de comandos cobra del servicio.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pet-clinic-visits/internal/config"
	"pet-clinic-visits/internal/platform/logger"
)

var (
	flagEnvFile string
	flagConfig  string
)

// NewRootCmd: sin subcomando arranca el servidor (igual que `serve`).
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "visits",
		Short:         "Pet clinic visits API",
		Long:          "Servicio REST de visitas de la clínica veterinaria.\n\nVariables de entorno:\n" + config.Usage(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "archivo .env opcional a cargar antes de leer la config")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "archivo YAML de configuración (equivale a CONFIG_PATH)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newTokenCmd(),
	)

	return root
}

// loadEnv carga el .env (si existe; no pisa variables ya seteadas) y --config.
func loadEnv() error {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", flagEnvFile, err)
		}
	}
	if flagConfig != "" {
		if err := os.Setenv("CONFIG_PATH", flagConfig); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}
