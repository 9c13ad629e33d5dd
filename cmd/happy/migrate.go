package main

import (
	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/database"
	"github.com/deppfellow/happy/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger(cfg.Observability)
		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
