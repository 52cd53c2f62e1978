// Команда migrate управляет схемой identity-хранилища:
//
//	migrate [up]   накатить недостающие миграции
//	migrate down   откатить последнюю миграцию
//	migrate version показать текущую версию схемы
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bagdasarian/vrm-monitor/internal/config"
	"github.com/bagdasarian/vrm-monitor/internal/identitydb"
	"github.com/bagdasarian/vrm-monitor/internal/logger"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := run(context.Background(), command); err != nil {
		slog.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.Log, os.Stderr)

	opts := identitydb.OptionsFromConfig(cfg.Database)
	opts.AutoMigrate = false

	c, err := identitydb.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	switch command {
	case "up":
		applied, err := c.EnsureCreated(ctx)
		if err != nil {
			return err
		}
		slog.Info("migrations applied", slog.Any("versions", applied))
	case "down":
		version, err := c.RollbackSchema(ctx)
		if err != nil {
			return err
		}
		slog.Info("migration rolled back", slog.Int("version", version))
	case "version":
		version, err := c.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
	default:
		return fmt.Errorf("unknown command %q (want up, down or version)", command)
	}
	return nil
}
