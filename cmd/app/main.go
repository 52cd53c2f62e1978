package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bagdasarian/vrm-monitor/internal/config"
	"github.com/bagdasarian/vrm-monitor/internal/data"
	"github.com/bagdasarian/vrm-monitor/internal/handler"
	"github.com/bagdasarian/vrm-monitor/internal/handler/server"
	"github.com/bagdasarian/vrm-monitor/internal/identitydb"
	"github.com/bagdasarian/vrm-monitor/internal/logger"
	"github.com/bagdasarian/vrm-monitor/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Setup(cfg.Log, os.Stdout)

	ctx := context.Background()
	appCtx, err := data.Open(ctx, identitydb.OptionsFromConfig(cfg.Database))
	if err != nil {
		slog.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("successfully connected to database")
	defer appCtx.Close()

	opts := service.Options{
		Lockout: service.LockoutOptions{
			MaxFailedAttempts:  cfg.Lockout.MaxFailedAttempts,
			Duration:           cfg.Lockout.Duration,
			AllowedForNewUsers: cfg.Lockout.AllowedForNew,
		},
	}

	stores := service.StoresFromContext(appCtx.Context)
	tx := service.NewContextTransactor(appCtx.Context)

	validate := service.NewValidator()

	userService := service.NewUserService(stores, tx, validate, opts)
	roleService := service.NewRoleService(stores, tx, validate)
	statsService := service.NewStatsService(stores.Stats, opts)

	h := handler.NewHandler(appCtx, userService, roleService, statsService)
	srv := server.NewServer(h, cfg.HTTP.Addr)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
}
