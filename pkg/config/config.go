package config

import (
	"strings"
	"time"
)

// Event bus drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverKafka  = "kafka"
)

type DB struct {
	// URL selects the driver: postgres://... or sqlite://path. Empty means an
	// in-memory sqlite database, allowed outside production only.
	URL             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25" validate:"gte=1"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	Migrate         bool          `envconfig:"MIGRATE" default:"true"`
}

// IsSQLite reports whether URL points at a sqlite database.
func (d *DB) IsSQLite() bool {
	return d.URL == "" || strings.HasPrefix(d.URL, "sqlite://")
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[corebank]"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory" validate:"oneof=memory redis kafka"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	Stream       string        `envconfig:"STREAM" default:"corebank:events" validate:"required"`
	Group        string        `envconfig:"GROUP" default:"corebank" validate:"required"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Kafka struct {
	Brokers      string `envconfig:"BROKERS" default:"localhost:9092"`
	GroupID      string `envconfig:"GROUP_ID" default:"corebank" validate:"required"`
	TopicPrefix  string `envconfig:"TOPIC_PREFIX" default:"corebank.events" validate:"required"`
	SASLUsername string `envconfig:"SASL_USERNAME"`
	SASLPassword string `envconfig:"SASL_PASSWORD"`
}

// Account tunes the application service around the aggregate.
type Account struct {
	AllocationAttempts   int           `envconfig:"ALLOCATION_ATTEMPTS" default:"10" validate:"gte=1"`
	SaveRetries          int           `envconfig:"SAVE_RETRIES" default:"5" validate:"gte=0"`
	RetryInitialInterval time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"20ms"`
	RetryMaxInterval     time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"500ms"`
}

type Outbox struct {
	RelayInterval time.Duration `envconfig:"RELAY_INTERVAL" default:"5s"`
	BatchSize     int           `envconfig:"BATCH_SIZE" default:"100" validate:"gte=1"`
	Workers       int           `envconfig:"WORKERS" default:"4" validate:"gte=1"`
}

type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development" validate:"oneof=development test staging production"`
	Log      *Log      `envconfig:"LOG"`
	DB       *DB       `envconfig:"DATABASE"`
	EventBus *EventBus `envconfig:"EVENTBUS"`
	Redis    *Redis    `envconfig:"REDIS"`
	Kafka    *Kafka    `envconfig:"KAFKA"`
	Account  *Account  `envconfig:"ACCOUNT"`
	Outbox   *Outbox   `envconfig:"OUTBOX"`
}

// IsProduction reports whether the app runs in production.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}
