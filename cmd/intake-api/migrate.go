package main

import (
	"github.com/spf13/cobra"
	"github.com/talentwire/intake-api/internal/config"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/pkg/log"
	"github.com/talentwire/intake-api/pkg/migrations"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.Level(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Migrating the db")
		defer zap.S().Info("Db migrated")

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		// goose migrations apply to the postgres deployment. Anything else
		// falls back to the model based migration.
		if cfg.Database.Type == "pgsql" && cfg.Service.MigrationFolder != "" {
			return migrations.MigrateStore(db, cfg.Service.MigrationFolder)
		}

		return s.InitialMigration()
	},
}
