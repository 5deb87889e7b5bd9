package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	apiserver "github.com/talentwire/intake-api/internal/api_server"
	"github.com/talentwire/intake-api/internal/config"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/pkg/log"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the intake api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.Level(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalf("running initial migration: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalf("creating listener: %s", err)
		}

		server := apiserver.New(cfg, s, listener)
		if err := server.Run(ctx); err != nil {
			zap.S().Fatalf("Error running server: %s", err)
		}

		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
