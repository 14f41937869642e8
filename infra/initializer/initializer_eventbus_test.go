package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestInitEventBus_DefaultsToMemoryWhenNoExplicitDriver(t *testing.T) {
	cfg := &config.App{
		Redis:    &config.Redis{URL: "redis://localhost:6379/0"},
		EventBus: &config.EventBus{Driver: ""},
	}

	bus, err := initEventBus(cfg, discard)
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_ExplicitRedisRequiresURL(t *testing.T) {
	cfg := &config.App{
		Redis:    &config.Redis{URL: ""},
		EventBus: &config.EventBus{Driver: config.DriverRedis},
	}

	_, err := initEventBus(cfg, discard)
	require.ErrorIs(t, err, errMissingBrokerConfig)
}

func TestInitEventBus_RedisConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		Redis:    &config.Redis{URL: "redis://127.0.0.1:1/0", Stream: "test", Group: "test"},
		EventBus: &config.EventBus{Driver: config.DriverRedis},
	}

	bus, err := initEventBus(cfg, discard)
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_ExplicitKafkaRequiresBrokers(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: config.DriverKafka},
	}

	_, err := initEventBus(cfg, discard)
	require.ErrorIs(t, err, errMissingBrokerConfig)
}

func TestInitEventBus_KafkaConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		EventBus: &config.EventBus{Driver: config.DriverKafka},
		Kafka:    &config.Kafka{Brokers: "127.0.0.1:1", GroupID: "test", TopicPrefix: "test"},
	}

	bus, err := initEventBus(cfg, discard)
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_UnknownDriver(t *testing.T) {
	_, err := initEventBus(&config.App{EventBus: &config.EventBus{Driver: "nats"}}, discard)
	require.Error(t, err)
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Prefix: "[test]"}, "test")
	t.Cleanup(func() { slog.SetDefault(discard) })

	logger.Info("hello", "account_id", "abc")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"account_id":"abc"`)
}
