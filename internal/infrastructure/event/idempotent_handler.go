package event

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Handler outcomes passed to an OutcomeRecorder.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// OutcomeRecorder is told how each delivery to a consumer ended.
type OutcomeRecorder func(ctx context.Context, consumer, eventType, outcome string)

// IdempotentHandler runs the wrapped handler at most once per event and
// consumer. Claims are keyed "event:<consumer>:<event id>" so two consumers of
// the same RefundCompleted never dedupe each other. A failed run releases its
// claim so redelivery can try again.
type IdempotentHandler struct {
	handler  shared.EventHandler
	store    shared.IdempotencyStore
	config   shared.IdempotencyConfig
	consumer string
	record   OutcomeRecorder
	logger   *zap.Logger
}

type IdempotentHandlerOption func(*IdempotentHandler)

func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.config = config }
}

// WithOutcomeRecorder reports every delivery outcome, e.g. to an OTel counter.
func WithOutcomeRecorder(record OutcomeRecorder) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.record = record }
}

// NewIdempotentHandler wraps handler under the consumer name used in claim keys.
func NewIdempotentHandler(consumer string, handler shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger, opts ...IdempotentHandlerOption) *IdempotentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &IdempotentHandler{
		handler:  handler,
		store:    store,
		config:   shared.DefaultIdempotencyConfig(),
		consumer: consumer,
		record:   func(context.Context, string, string, string) {},
		logger:   logger.With(zap.String("consumer", consumer)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.run(ctx, event, "")
	}

	key := h.claimKey(event)
	claimed, err := h.store.MarkProcessed(ctx, key, h.config.TTL)
	switch {
	case err != nil:
		// a store outage must not drop receipts
		h.logger.Warn("event claim failed, handling anyway",
			zap.String("event_id", event.EventID().String()), zap.Error(err))
		key = ""
	case !claimed:
		h.record(ctx, h.consumer, event.EventType(), OutcomeDuplicate)
		h.logger.Debug("duplicate event skipped", zap.String("event_id", event.EventID().String()))
		return nil
	}
	return h.run(ctx, event, key)
}

// run calls the wrapped handler and drops claimKey when it fails.
func (h *IdempotentHandler) run(ctx context.Context, event shared.DomainEvent, claimKey string) error {
	err := h.handler.Handle(ctx, event)
	if err == nil {
		h.record(ctx, h.consumer, event.EventType(), OutcomeProcessed)
		return nil
	}

	h.record(ctx, h.consumer, event.EventType(), OutcomeFailed)
	h.logger.Error("event handler failed",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.Error(err))
	if claimKey != "" {
		if relErr := h.store.Release(context.WithoutCancel(ctx), claimKey); relErr != nil {
			h.logger.Warn("event claim not released", zap.String("key", claimKey), zap.Error(relErr))
		}
	}
	return err
}

func (h *IdempotentHandler) claimKey(event shared.DomainEvent) string {
	return "event:" + h.consumer + ":" + event.EventID().String()
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
