package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jrazmi/zentask/app/zentask/api"
	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/infrastructure/web"
	"github.com/jrazmi/zentask/sdk/environment"
	"github.com/jrazmi/zentask/sdk/logger"
)

var build = "develop"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(config.AppName, logger.WithService("zentask"))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	cfg, err := config.Load(config.AppName)
	if err != nil {
		return err
	}

	// :*: START DATABASES :*:
	ds, err := config.OpenDatastore(config.AppName, log, cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		ds.Close()
	}()
	log.InfoContext(ctx, "init", "service", ds.Driver)

	if cfg.AutoMigrate {
		if err := ds.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	site, err := config.NewSite(build, log, cfg, ds)
	if err != nil {
		return err
	}

	var handlerOpts web.HandlerOptions
	if err := environment.ParseEnvTags(config.AppName, &handlerOpts); err != nil {
		return fmt.Errorf("parsing webhandler config: %w", err)
	}

	server, err := web.NewServerFromEnv(config.AppName,
		web.WithHandler(api.NewWebHandler(site, handlerOpts)),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr, "api_route", cfg.APIRoute)
	if err := server.Run(ctx); err != nil {
		return err
	}
	log.InfoContext(ctx, "shutdown", "status", "shutdown complete")
	return nil
}
