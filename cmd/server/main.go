package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/minibank/minibank/infra/repository/memory"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/metrics"
	accountsvc "github.com/minibank/minibank/pkg/service/account"
	authsvc "github.com/minibank/minibank/pkg/service/auth"
	"github.com/minibank/minibank/webapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	accountRepo := memory.NewAccountRepository()
	userRepo := memory.NewUserRepository()
	accountSvc := accountsvc.New(accountRepo, logger)
	authSvc := authsvc.New(userRepo, cfg.Jwt, logger)
	collector := metrics.NewCollector()

	app := webapi.SetupApp(accountSvc, authSvc, collector, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "address", addr)
	return app.Listen(addr)
}
