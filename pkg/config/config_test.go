package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAfter removes keys a godotenv load put into the process environment.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k) //nolint:errcheck
		}
	})
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.EventBus.Driver)
	assert.True(t, cfg.DB.IsSQLite())
	assert.Equal(t, 10, cfg.Account.AllocationAttempts)
	assert.Equal(t, 5, cfg.Account.SaveRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.Account.RetryInitialInterval)
	assert.Equal(t, 5*time.Second, cfg.Outbox.RelayInterval)
	assert.Equal(t, "corebank.events", cfg.Kafka.TopicPrefix)
	assert.Equal(t, "[corebank]", cfg.Log.Prefix)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeEnvFile(t, "EVENTBUS_DRIVER=kafka\nKAFKA_BROKERS=a:9092,b:9092\nACCOUNT_SAVE_RETRIES=2\n")
	unsetAfter(t, "EVENTBUS_DRIVER", "KAFKA_BROKERS", "ACCOUNT_SAVE_RETRIES")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverKafka, cfg.EventBus.Driver)
	assert.Equal(t, "a:9092,b:9092", cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Account.SaveRetries)
}

func TestLoad_ProcessEnvironmentWins(t *testing.T) {
	path := writeEnvFile(t, "ACCOUNT_SAVE_RETRIES=2\n")
	t.Setenv("ACCOUNT_SAVE_RETRIES", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Account.SaveRetries)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"EVENTBUS_DRIVER": "nats"}},
		{"unknown environment", map[string]string{"APP_ENV": "qa"}},
		{"no allocation attempts", map[string]string{"ACCOUNT_ALLOCATION_ATTEMPTS": "0"}},
		{"production on sqlite", map[string]string{"APP_ENV": "production"}},
		{"backoff bounds inverted", map[string]string{
			"ACCOUNT_RETRY_INITIAL_INTERVAL": "1s",
			"ACCOUNT_RETRY_MAX_INTERVAL":     "10ms",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDB_IsSQLite(t *testing.T) {
	assert.True(t, (&DB{}).IsSQLite())
	assert.True(t, (&DB{URL: "sqlite://corebank.db"}).IsSQLite())
	assert.False(t, (&DB{URL: "postgres://u:p@localhost:5432/corebank"}).IsSQLite())
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue(""))
	assert.Equal(t, "****", maskValue("secret"))
	assert.Equal(t, "po****bank", maskValue("postgres://u:p@h/corebank"))
}

func TestFindEnvFile(t *testing.T) {
	path := writeEnvFile(t, "X=1\n")
	found, err := FindEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = FindEnvFile("definitely-not-here.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
