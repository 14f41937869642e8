package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

// handlerSet is a concurrency safe registry of handlers per event type.
type handlerSet struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]eventbus.HandlerFunc
}

func newHandlerSet() *handlerSet {
	return &handlerSet{handlers: make(map[events.EventType][]eventbus.HandlerFunc)}
}

// add registers handler and reports whether it is the first for eventType.
func (s *handlerSet) add(eventType events.EventType, handler eventbus.HandlerFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = append(s.handlers[eventType], handler)
	return len(s.handlers[eventType]) == 1
}

func (s *handlerSet) get(eventType events.EventType) []eventbus.HandlerFunc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]eventbus.HandlerFunc(nil), s.handlers[eventType]...)
}

// executeHandlers runs handlers concurrently for one consumed message and
// joins their errors. Panics count as failures.
func executeHandlers(
	ctx context.Context,
	logger *slog.Logger,
	evt events.Event,
	handlers []eventbus.HandlerFunc,
	msgID string,
) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, handler := range handlers {
		wg.Add(1)
		go func(h eventbus.HandlerFunc) {
			defer wg.Done()
			var err error
			func() {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("handler panic: %v", r)
					}
				}()
				err = h(ctx, evt)
			}()
			if err != nil {
				logger.Error("handler error", "error", err, "event_type", evt.Type(), "msg_id", msgID)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(handler)
	}
	wg.Wait()
	return errors.Join(errs...)
}
