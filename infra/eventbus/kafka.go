package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// KafkaEventBus implements a Kafka-backed event bus with one topic per event
// type. Events are keyed by account id so each account's events stay ordered
// within a partition.
type KafkaEventBus struct {
	brokers []string
	groupID string
	prefix  string
	writer  *kafka.Writer
	dialer  *kafka.Dialer

	handlers   *handlerSet
	readers    map[events.EventType]*kafka.Reader
	readersMtx sync.Mutex
	topics     sync.Map

	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithKafka creates a new Kafka-backed event bus and checks connectivity.
func NewWithKafka(ctx context.Context, cfg *config.Kafka, logger *slog.Logger) (*KafkaEventBus, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kafka event bus: config is required")
	}
	brokers := parseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mechanism, err := saslMechanism(cfg.SASLUsername, cfg.SASLPassword)
	if err != nil {
		return nil, err
	}
	dialer := &kafka.Dialer{Timeout: 5 * time.Second, SASLMechanism: mechanism}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
	}
	if mechanism != nil {
		writer.Transport = &kafka.Transport{SASL: mechanism}
	}

	busCtx, cancel := context.WithCancel(context.Background())
	bus := &KafkaEventBus{
		brokers:  brokers,
		groupID:  cfg.GroupID,
		prefix:   cfg.TopicPrefix,
		writer:   writer,
		dialer:   dialer,
		handlers: newHandlerSet(),
		readers:  make(map[events.EventType]*kafka.Reader),
		logger:   logger.With("bus", "kafka"),
		ctx:      busCtx,
		cancel:   cancel,
	}

	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("kafka event bus: connection failed: %w", err)
	}
	_ = conn.Close()

	bus.logger.Info("Kafka event bus initialized",
		"brokers", brokers, "group_id", cfg.GroupID, "sasl_enabled", mechanism != nil)
	return bus, nil
}

func saslMechanism(username, password string) (sasl.Mechanism, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" && password == "" {
		return nil, nil
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("kafka event bus: sasl username and password are required")
	}
	return plain.Mechanism{Username: username, Password: password}, nil
}

// Emit publishes the event envelope to the topic of its type.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := eventbus.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: %w", err)
	}
	topic := topicNameFor(b.prefix, events.EventType(event.Type()))
	if err := b.ensureTopic(ctx, topic); err != nil {
		return err
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(event.AggregateID().String()),
		Value: data,
		Time:  event.OccurredOn(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	return nil
}

// Register registers an event handler for a specific event type and starts a
// reader for its topic on the first registration.
func (b *KafkaEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	if !b.handlers.add(eventType, handler) {
		return
	}
	topic := topicNameFor(b.prefix, eventType)
	if err := b.ensureTopic(b.ctx, topic); err != nil {
		b.logger.Error("kafka ensure topic error", "error", err, "event_type", eventType)
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		Dialer:      b.dialer,
	})
	b.readersMtx.Lock()
	b.readers[eventType] = reader
	b.readersMtx.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consumeLoop(eventType, reader)
	}()
}

func (b *KafkaEventBus) consumeLoop(eventType events.EventType, reader *kafka.Reader) {
	for {
		msg, err := reader.FetchMessage(b.ctx)
		if err != nil {
			if b.ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			b.logger.Error("kafka consume error", "error", err, "event_type", eventType)
			time.Sleep(500 * time.Millisecond)
			continue
		}
		for {
			err := b.process(eventType, msg)
			if err == nil {
				break
			}
			// the offset stays uncommitted until the message is handled or parked
			b.logger.Error("kafka message processing failed; will retry",
				"error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			select {
			case <-b.ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
		}
		if err := reader.CommitMessages(b.ctx, msg); err != nil {
			b.logger.Error("kafka commit error", "error", err, "topic", msg.Topic, "offset", msg.Offset)
		}
	}
}

// process returns an error only when the message must not be committed.
func (b *KafkaEventBus) process(eventType events.EventType, msg kafka.Message) error {
	evt, err := eventbus.Unmarshal(msg.Value)
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "topic", msg.Topic, "offset", msg.Offset)
		return b.publishToDLQ(eventType, msg)
	}
	msgID := strconv.FormatInt(msg.Offset, 10)
	if err := executeHandlers(b.ctx, b.logger, evt, b.handlers.get(eventType), msgID); err != nil {
		return b.publishToDLQ(eventType, msg)
	}
	return nil
}

func (b *KafkaEventBus) publishToDLQ(eventType events.EventType, msg kafka.Message) error {
	topic := dlqTopicNameFor(b.prefix, eventType)
	if err := b.ensureTopic(b.ctx, topic); err != nil {
		return err
	}
	if err := b.writer.WriteMessages(b.ctx, kafka.Message{
		Topic: topic,
		Key:   msg.Key,
		Value: msg.Value,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("kafka event bus: dlq publish failed: %w", err)
	}
	b.logger.Warn("message sent to DLQ", "event_type", eventType, "dlq_topic", topic)
	return nil
}

func (b *KafkaEventBus) ensureTopic(ctx context.Context, topic string) error {
	if _, ok := b.topics.Load(topic); ok {
		return nil
	}
	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka event bus: dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	err = conn.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("kafka event bus: create topic failed: %w", err)
	}
	b.topics.Store(topic, struct{}{})
	return nil
}

// Close stops background consumers and closes network resources.
func (b *KafkaEventBus) Close() error {
	b.cancel()
	b.readersMtx.Lock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	b.readersMtx.Unlock()
	b.wg.Wait()
	return b.writer.Close()
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
