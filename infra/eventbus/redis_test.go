//go:build integration

package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/testutils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisBus starts a Redis container and returns a bus connected to it.
func setupRedisBus(tb testing.TB) (*RedisEventBus, *config.Redis) {
	tb.Helper()
	ctx := context.Background()
	cfg := &config.Redis{
		URL:    testutils.SetupRedis(tb),
		Stream: "corebank:test",
		Group:  "corebank-test",
	}
	bus, err := NewWithRedis(ctx, cfg, discardLogger())
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = bus.Close() })
	return bus, cfg
}

func TestRedisBus_HandlerReceivesEvent(t *testing.T) {
	bus, _ := setupRedisBus(t)
	received := make(chan events.Event, 1)
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		received <- e
		return nil
	})

	evt := depositedEvent()
	require.NoError(t, bus.Emit(context.Background(), evt))

	select {
	case got := <-received:
		deposited, ok := got.(events.MoneyDeposited)
		require.True(t, ok)
		assert.Equal(t, evt.EventID(), deposited.EventID())
		assert.Equal(t, "25.00 TRY", deposited.Amount.String())
	case <-time.After(10 * time.Second):
		t.Fatal("handler did not receive event in time")
	}
}

func TestRedisBus_FailedHandlerGoesToDLQ(t *testing.T) {
	bus, cfg := setupRedisBus(t)
	done := make(chan struct{})
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		defer close(done)
		return errors.New("projection down")
	})
	require.NoError(t, bus.Emit(context.Background(), depositedEvent()))

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("handler did not run")
	}

	opt, err := redis.ParseURL(cfg.URL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close() //nolint:errcheck

	dlq := dlqStreamName(cfg.Stream, events.EventTypeMoneyDeposited)
	assert.Eventually(t, func() bool {
		n, err := client.XLen(context.Background(), dlq).Result()
		return err == nil && n == 1
	}, 5*time.Second, 100*time.Millisecond)
}
