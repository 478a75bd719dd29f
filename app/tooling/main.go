package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/zentask/app/tooling/commands"
	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/sdk/environment"
	"github.com/jrazmi/zentask/sdk/logger"
)

var build = "develop"

func run(ctx context.Context, log *logger.Logger) error {
	log.DebugContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	root := commands.NewRootCommand(commands.Env{
		Build:  build,
		Prefix: config.AppName,
		Log:    log,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- root.ExecuteContext(ctx)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		cancel()

		// Give a short time for commands to complete
		timer := time.NewTimer(5 * time.Second)
		defer timer.Stop()

		select {
		case err := <-done:
			return err
		case <-timer.C:
			return fmt.Errorf("shutdown timeout: command did not stop")
		}
	}
}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(config.AppName, logger.WithService("tooling"))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "tooling", "err", err)
		os.Exit(1)
	}
}
