package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads the first env file found among envFilePath (searching parent
// directories), falls back to ./.env, then processes the environment.
// Variables already set in the process environment win over file values.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.URL),
		"eventbus_driver", cfg.EventBus.Driver,
		"redis_url", maskValue(cfg.Redis.URL),
		"kafka_brokers", cfg.Kafka.Brokers,
		"kafka_sasl_password", maskValue(cfg.Kafka.SASLPassword),
		"allocation_attempts", cfg.Account.AllocationAttempts,
		"save_retries", cfg.Account.SaveRetries,
		"outbox_interval", cfg.Outbox.RelayInterval,
	)
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the rules that span sections.
func (a *App) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if a.IsProduction() && a.DB.IsSQLite() {
		return fmt.Errorf("%w: production requires a postgres DATABASE_URL", ErrInvalidConfig)
	}
	if a.Account.RetryMaxInterval < a.Account.RetryInitialInterval {
		return fmt.Errorf("%w: ACCOUNT_RETRY_MAX_INTERVAL below ACCOUNT_RETRY_INITIAL_INTERVAL", ErrInvalidConfig)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
