package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
	RefundNumber string `json:"refund_number"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, refund.AggregateTypeRefund, uuid.New(), uuid.New()),
		RefundNumber:    "RF-2026-00001",
	}
}

type recordingHandler struct {
	eventTypes []string
	err        error
	panicWith  any
	delay      time.Duration

	mu      sync.Mutex
	handled []shared.DomainEvent
	ctxErr  error
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
		}
	}
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.ctxErr = ctx.Err()
	h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by event type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		completed := newRecordingHandler(refund.EventTypeRefundCompleted)
		created := newRecordingHandler(refund.EventTypeRefundCreated)
		all := newRecordingHandler()
		bus.Subscribe(completed)
		bus.Subscribe(created)
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx,
			newTestEvent(refund.EventTypeRefundCompleted),
			newTestEvent(refund.EventTypeRefundApproved),
		))

		assert.Equal(t, 1, completed.count())
		assert.Equal(t, 0, created.count())
		assert.Equal(t, 2, all.count())
	})

	t.Run("explicit types override handler types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newRecordingHandler(refund.EventTypeRefundCompleted)
		bus.Subscribe(h, refund.EventTypeRefundRejected)

		_ = bus.Publish(ctx, newTestEvent(refund.EventTypeRefundCompleted), newTestEvent(refund.EventTypeRefundRejected))
		assert.Equal(t, 1, h.count())
	})

	t.Run("handler errors are logged and swallowed", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus := NewInMemoryEventBus(zap.New(core))
		failing := newRecordingHandler(refund.EventTypeRefundCompleted)
		failing.err = errors.New("bucket unavailable")
		next := newRecordingHandler(refund.EventTypeRefundCompleted)
		bus.Subscribe(failing)
		bus.Subscribe(next)

		require.NoError(t, bus.Publish(ctx, newTestEvent(refund.EventTypeRefundCompleted)))
		assert.Equal(t, 1, next.count())
		require.Equal(t, 1, logs.FilterMessage("handler failed to process event").Len())
	})

	t.Run("panics are recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newRecordingHandler(refund.EventTypeRefundCompleted)
		h.panicWith = "boom"
		bus.Subscribe(h)

		assert.NotPanics(t, func() {
			_ = bus.Publish(ctx, newTestEvent(refund.EventTypeRefundCompleted))
		})
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(nil)
		h := newRecordingHandler(refund.EventTypeRefundCompleted)
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		_ = bus.Publish(ctx, newTestEvent(refund.EventTypeRefundCompleted))
		assert.Equal(t, 0, h.count())
	})
}

func TestInMemoryEventBus_HandlerTimeout(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithHandlerTimeout(10*time.Millisecond))
	slow := newRecordingHandler(refund.EventTypeRefundCompleted)
	slow.delay = time.Second
	bus.Subscribe(slow)

	start := time.Now()
	_ = bus.Publish(context.Background(), newTestEvent(refund.EventTypeRefundCompleted))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.ErrorIs(t, slow.ctxErr, context.DeadlineExceeded)
}

func TestInMemoryEventBus_AsyncDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithAsyncDispatch())
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.IsRunning())

	h := newRecordingHandler(refund.EventTypeRefundCompleted)
	h.delay = 20 * time.Millisecond
	bus.Subscribe(h)

	// a cancelled request context must not abort the handler
	reqCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(reqCtx, newTestEvent(refund.EventTypeRefundCompleted)))
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, bus.Stop(stopCtx))

	assert.False(t, bus.IsRunning())
	assert.Equal(t, 1, h.count())
	assert.NoError(t, h.ctxErr)
}

func TestInMemoryEventBus_StopTimesOut(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithAsyncDispatch())
	h := newRecordingHandler(refund.EventTypeRefundCompleted)
	h.delay = 200 * time.Millisecond
	bus.Subscribe(h)
	_ = bus.Publish(context.Background(), newTestEvent(refund.EventTypeRefundCompleted))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Stop(ctx), context.DeadlineExceeded)

	require.NoError(t, bus.Stop(context.Background()))
}
