package main

import (
	"fmt"

	config "github.com/NordCoder/Remindus/internal/config/reminder"
	pg "github.com/NordCoder/Remindus/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := pg.Migrate(cmd.Context(), cfg.DB.DSN); err != nil {
				return err
			}
			cmd.Println("migrations: up OK")
			return nil
		},
	}
}
