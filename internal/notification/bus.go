package notification

import (
	"context"
	"log/slog"
	"sync"

	"eventsexpress/internal/domain"
)

// Bus is an in-process publish/subscribe dispatcher for domain notifications.
// Handlers are routed by message type and run on their own goroutine, so one
// handler's failure or latency can never affect the publisher or another
// handler. Delivery is at-most-once: a failed handler is logged and dropped.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]domain.Handler
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewBus returns an empty Bus. Subscribe handlers before serving traffic;
// Subscribe is safe for concurrent use but ordering within a type is the
// subscription order.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]domain.Handler),
		logger:   logger,
	}
}

// Subscribe registers h for the given message type.
func (b *Bus) Subscribe(messageType string, h domain.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[messageType] = append(b.handlers[messageType], h)
}

// Publish dispatches msg to every handler subscribed to its type and returns
// once all handler goroutines are started. Zero subscribed handlers is a valid
// silent no-op. The caller's context values are carried over but cancellation
// is not: a handler must not be torn down because the originating request
// already returned.
func (b *Bus) Publish(ctx context.Context, msg domain.Message) {
	b.mu.RLock()
	hs := b.handlers[msg.MessageType()]
	b.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, h := range hs {
		b.wg.Add(1)
		go b.dispatch(detached, msg, h)
	}
}

func (b *Bus) dispatch(ctx context.Context, msg domain.Message, h domain.Handler) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("notification handler panicked",
				"message_type", msg.MessageType(), "panic", r)
		}
	}()
	if err := h.Handle(ctx, msg); err != nil {
		b.logger.Error("notification handler failed",
			"message_type", msg.MessageType(), "err", err)
	}
}

// Wait blocks until all in-flight handlers have finished. Used on shutdown to
// drain side effects, and by tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}
