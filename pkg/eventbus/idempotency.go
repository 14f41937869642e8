package eventbus

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Defaults for NewIdempotencyTracker.
const (
	DefaultIdempotencyCapacity = 100_000
	DefaultIdempotencyTTL      = 24 * time.Hour
)

// KeyExtractor extracts an idempotency key from an event. An empty key skips
// the check.
type KeyExtractor func(events.Event) string

// ByEventID keys on the event id, which survives redelivery.
func ByEventID(e events.Event) string {
	return e.EventID().String()
}

// IdempotencyTracker remembers which keys a handler already processed. It
// keeps at most capacity keys, each for at most ttl; the least recently seen
// key is dropped first.
type IdempotencyTracker struct {
	processed *expirable.LRU[string, struct{}]
	inflight  singleflight.Group
}

// NewIdempotencyTracker creates a tracker with the default capacity and TTL.
func NewIdempotencyTracker() *IdempotencyTracker {
	return NewBoundedIdempotencyTracker(DefaultIdempotencyCapacity, DefaultIdempotencyTTL)
}

// NewBoundedIdempotencyTracker creates a tracker holding at most capacity keys
// for at most ttl each.
func NewBoundedIdempotencyTracker(capacity int, ttl time.Duration) *IdempotencyTracker {
	if capacity <= 0 {
		capacity = DefaultIdempotencyCapacity
	}
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyTracker{
		processed: expirable.NewLRU[string, struct{}](capacity, nil, ttl),
	}
}

// Seen reports whether key was processed successfully.
func (t *IdempotencyTracker) Seen(key string) bool {
	_, ok := t.processed.Peek(key)
	return ok
}

// Forget drops key so the next delivery is processed again.
func (t *IdempotencyTracker) Forget(key string) {
	t.processed.Remove(key)
}

// Len returns the number of remembered keys.
func (t *IdempotencyTracker) Len() int {
	return t.processed.Len()
}

// WithIdempotency wraps handler so each key is processed at most once
// successfully. Concurrent deliveries of the same key share one attempt and
// observe its result; a failed attempt is not remembered.
func WithIdempotency(
	handler HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	if keyExtractor == nil {
		keyExtractor = ByEventID
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}
		log := logger.With("handler", handlerName, "event_type", e.Type(), "idempotency_key", key)

		if tracker.Seen(key) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil
		}

		_, err, _ := tracker.inflight.Do(key, func() (any, error) {
			if tracker.Seen(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			tracker.processed.Add(key, struct{}{})
			return nil, nil
		})
		return err
	}
}
