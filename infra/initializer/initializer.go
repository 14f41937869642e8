// Package initializer builds the infrastructure an App runs on from config.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/amirasaad/corebank/infra"
	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	infra_repository "github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

const connectTimeout = 10 * time.Second

// closableBus is what every bus driver provides.
type closableBus interface {
	eventbus.Bus
	io.Closer
}

// InitializeDependencies sets up logging, the database and the event bus. The
// returned cleanup closes them in reverse order.
func InitializeDependencies(cfg *config.App) (deps *app.Deps, cleanup func(), err error) {
	logger := newLogger(os.Stdout, cfg.Log, cfg.Env)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access database pool: %w", err)
	}

	bus, err := initEventBus(cfg, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	deps = &app.Deps{
		Uow:      infra_repository.NewUoW(db),
		EventBus: bus,
		Logger:   logger,
	}
	cleanup = func() {
		if err := bus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
	return deps, cleanup, nil
}

// errMissingBrokerConfig is returned when a broker driver is selected without
// an address to reach it.
var errMissingBrokerConfig = errors.New("event bus driver selected without connection settings")

// initEventBus picks the bus named by EVENTBUS_DRIVER. An unreachable broker
// falls back to the in-memory bus; the outbox keeps the events for later.
func initEventBus(cfg *config.App, logger *slog.Logger) (closableBus, error) {
	driver := config.DriverMemory
	if cfg.EventBus != nil && cfg.EventBus.Driver != "" {
		driver = cfg.EventBus.Driver
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch driver {
	case config.DriverRedis:
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("%w: REDIS_URL is required for the redis driver", errMissingBrokerConfig)
		}
		bus, err := infra_eventbus.NewWithRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using Redis event bus", "stream", cfg.Redis.Stream)
		return bus, nil
	case config.DriverKafka:
		if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
			return nil, fmt.Errorf("%w: KAFKA_BROKERS is required for the kafka driver", errMissingBrokerConfig)
		}
		bus, err := infra_eventbus.NewWithKafka(ctx, cfg.Kafka, logger)
		if err != nil {
			logger.Warn("Kafka event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using Kafka event bus", "brokers", cfg.Kafka.Brokers)
		return bus, nil
	case config.DriverMemory:
		logger.Info("Using in-memory event bus")
		return infra_eventbus.NewWithMemory(logger), nil
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", driver)
	}
}
