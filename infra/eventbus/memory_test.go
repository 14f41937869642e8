package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func depositedEvent() events.MoneyDeposited {
	amount := money.Must("25", money.TRY)
	return events.MoneyDeposited{BalanceChanged: events.BalanceChanged{
		Meta:          events.NewMeta(uuid.New(), time.Now()),
		TransactionID: uuid.New(),
		Amount:        amount,
		Balance:       amount,
	}}
}

func TestMemoryEventBus_EmitRunsHandlersInOrder(t *testing.T) {
	bus := NewWithMemory(discardLogger(), WithPublishedLog(10))
	var calls []string
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "second")
		return nil
	})
	bus.Register(events.EventTypeAccountFrozen, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "frozen")
		return nil
	})

	evt := depositedEvent()
	require.NoError(t, bus.Emit(context.Background(), evt))
	assert.Equal(t, []string{"first", "second"}, calls)
	require.Len(t, bus.Published(), 1)
	assert.Equal(t, evt.EventID(), bus.Published()[0].EventID())

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_EmitWithoutHandlers(t *testing.T) {
	bus := NewWithMemory(nil, WithPublishedLog(10))
	assert.NoError(t, bus.Emit(context.Background(), depositedEvent()))
	assert.Len(t, bus.Published(), 1)
	assert.NoError(t, bus.Close())
}

func TestMemoryEventBus_PublishedLogIsOffByDefault(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	for range 5 {
		require.NoError(t, bus.Emit(context.Background(), depositedEvent()))
	}
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_PublishedLogKeepsNewest(t *testing.T) {
	bus := NewWithMemory(discardLogger(), WithPublishedLog(3))
	var emitted []events.Event
	for range 5 {
		e := depositedEvent()
		emitted = append(emitted, e)
		require.NoError(t, bus.Emit(context.Background(), e))
	}
	published := bus.Published()
	require.Len(t, published, 3)
	for i, e := range published {
		assert.Equal(t, emitted[i+2].EventID(), e.EventID())
	}
}

func TestMemoryEventBus_HandlerErrorsAreJoined(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	errA := errors.New("projection down")
	ran := false
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		return errA
	})
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		panic("bad handler")
	})
	bus.Register(events.EventTypeMoneyDeposited, func(ctx context.Context, e events.Event) error {
		ran = true
		return nil
	})

	err := bus.Emit(context.Background(), depositedEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.Contains(t, err.Error(), "handler panic")
	assert.True(t, ran, "later handlers still run")
}

func TestExecuteHandlers(t *testing.T) {
	evt := depositedEvent()
	okHandler := func(ctx context.Context, e events.Event) error { return nil }
	assert.NoError(t, executeHandlers(context.Background(), discardLogger(), evt, nil, "1"))
	assert.NoError(t, executeHandlers(context.Background(), discardLogger(), evt,
		[]eventbus.HandlerFunc{okHandler}, "1"))

	boom := errors.New("boom")
	err := executeHandlers(context.Background(), discardLogger(), evt,
		[]eventbus.HandlerFunc{okHandler, func(ctx context.Context, e events.Event) error { return boom }}, "2")
	assert.ErrorIs(t, err, boom)
}

func TestNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"stream", streamNameFor("corebank:events", events.EventTypeMoneyDeposited), "corebank:events:money:deposited"},
		{"dlq stream", dlqStreamName("corebank:events", events.EventTypeAccountFrozen), "corebank:events:dlq:account:frozen"},
		{"group", groupNameFor("corebank", events.EventTypeFeeCharged), "corebank:fee:charged"},
		{"topic", topicNameFor("corebank.events", events.EventTypeMoneyTransferred), "corebank.events.money.transferred"},
		{"dlq topic", dlqTopicNameFor("corebank.events", events.EventTypeMoneyWithdrawn), "corebank.events.dlq.money.withdrawn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Equal(t, []string{"a:9092", "b:9092"}, parseBrokers(" a:9092, ,b:9092 "))
}
