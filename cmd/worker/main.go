// Command worker runs the outbox relay and the event consumers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/corebank/infra/initializer"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(deps, cfg)
	slog.Default().Info("Starting worker",
		"env", cfg.Env,
		"eventbus_driver", cfg.EventBus.Driver,
		"relay_interval", cfg.Outbox.RelayInterval,
	)
	return a.Relay.Run(ctx)
}
