package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

const redisEventField = "event"

// RedisEventBus publishes events to one Redis stream per event type and
// consumes them through consumer groups. Messages whose handlers fail are
// copied to a DLQ stream and acknowledged.
type RedisEventBus struct {
	client   *redis.Client
	prefix   string
	group    string
	consumer string
	handlers *handlerSet
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis creates a new Redis-backed event bus and checks connectivity.
func NewWithRedis(ctx context.Context, cfg *config.Redis, logger *slog.Logger) (*RedisEventBus, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis event bus: url is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	host, _ := os.Hostname()
	busCtx, cancel := context.WithCancel(context.Background())
	bus := &RedisEventBus{
		client:   client,
		prefix:   cfg.Stream,
		group:    cfg.Group,
		consumer: fmt.Sprintf("%s-%d", host, os.Getpid()),
		handlers: newHandlerSet(),
		logger:   logger.With("bus", "redis"),
		ctx:      busCtx,
		cancel:   cancel,
	}
	bus.logger.Info("Redis event bus initialized", "stream_prefix", cfg.Stream, "group", cfg.Group)
	return bus, nil
}

// Emit appends the event envelope to the stream of its type.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := eventbus.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	stream := streamNameFor(b.prefix, events.EventType(event.Type()))
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{redisEventField: string(data)},
	}).Err(); err != nil {
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "event_type", event.Type(), "stream", stream)
	return nil
}

// Register adds handler for eventType. The first handler for a type starts
// the consumer loop for its stream.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	if !b.handlers.add(eventType, handler) {
		return
	}
	stream := streamNameFor(b.prefix, eventType)
	group := groupNameFor(b.group, eventType)
	err := b.client.XGroupCreateMkStream(b.ctx, stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		b.logger.Error("failed to create consumer group", "stream", stream, "group", group, "error", err)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(eventType, stream, group)
	}()
	b.logger.Info("handler registered", "event_type", eventType, "stream", stream, "group", group)
}

func (b *RedisEventBus) consume(eventType events.EventType, stream, group string) {
	for {
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: b.consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()
		if b.ctx.Err() != nil {
			return
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "stream", stream)
				time.Sleep(time.Second)
			}
			continue
		}
		for _, s := range res {
			for _, msg := range s.Messages {
				b.handle(eventType, stream, group, msg)
			}
		}
	}
}

func (b *RedisEventBus) handle(eventType events.EventType, stream, group string, msg redis.XMessage) {
	defer func() {
		if err := b.client.XAck(b.ctx, stream, group, msg.ID).Err(); err != nil {
			b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()

	raw, ok := msg.Values[redisEventField].(string)
	if !ok {
		b.logger.Error("message without event field", "msg_id", msg.ID, "stream", stream)
		return
	}
	evt, err := eventbus.Unmarshal([]byte(raw))
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}
	if err := executeHandlers(b.ctx, b.logger, evt, b.handlers.get(eventType), msg.ID); err != nil {
		b.pushToDLQ(eventType, msg.Values)
	}
}

// pushToDLQ copies the raw message to the DLQ stream for inspection or
// reprocessing.
func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any) {
	dlq := dlqStreamName(b.prefix, eventType)
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// Close stops the consumer loops and closes the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
