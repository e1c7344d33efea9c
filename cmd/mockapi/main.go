package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/internal/mockapi"
	"github.com/azauting/hospitalcm/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store := mockapi.NewStore()
	if err := mockapi.Seed(store, cfg.Mock.BcryptCost); err != nil {
		logger.Fatal("failed to seed dataset", zap.Error(err))
	}

	sessions := mockapi.NewSessionStore(cfg.Mock, logger)
	server := mockapi.NewServer(cfg.Mock, store, sessions, logger)

	go func() {
		logger.Info("mock backend listening", zap.String("addr", cfg.Mock.Addr()))
		if err := server.Listen(cfg.Mock.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
