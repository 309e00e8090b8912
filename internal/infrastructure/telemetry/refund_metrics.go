package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// MeterName names the meter for refund workflow instruments
const MeterName = "retailpos/refunds"

// RefundMetrics records refund workflow counters and the refund amount distribution
type RefundMetrics struct {
	created     *Counter
	transitions *Counter
	steps       *Counter
	amount      *Histogram
}

// NewRefundMetrics registers the refund instruments on meter
func NewRefundMetrics(meter metric.Meter) (*RefundMetrics, error) {
	created, err := NewCounter(meter, "refund_created_total", "Refunds created", "{refund}")
	if err != nil {
		return nil, err
	}
	transitions, err := NewCounter(meter, "refund_transitions_total", "Refund state transitions by target state", "{transition}")
	if err != nil {
		return nil, err
	}
	steps, err := NewCounter(meter, "refund_compensation_steps_total", "Compensation steps executed by outcome", "{step}")
	if err != nil {
		return nil, err
	}
	amount, err := NewHistogram(meter, HistogramOpts{
		Name:        "refund_amount",
		Description: "Requested refund amount",
		Unit:        "{currency}",
		Boundaries:  RefundAmountBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("refund metrics: %w", err)
	}
	return &RefundMetrics{created: created, transitions: transitions, steps: steps, amount: amount}, nil
}

func (m *RefundMetrics) RecordRefundCreated(ctx context.Context, tenantID uuid.UUID, autoApproved bool, amount decimal.Decimal) {
	tenant := AttrTenantID.String(tenantID.String())
	m.created.Inc(ctx, tenant, AttrAutoApproved.Bool(autoApproved))
	m.amount.Record(ctx, amount.InexactFloat64(), tenant)
}

func (m *RefundMetrics) RecordRefundTransition(ctx context.Context, tenantID uuid.UUID, state string) {
	m.transitions.Inc(ctx, AttrTenantID.String(tenantID.String()), AttrRefundState.String(state))
}

// RecordCompensationStep counts a step as "ok" or "failed"
func (m *RefundMetrics) RecordCompensationStep(ctx context.Context, tenantID uuid.UUID, step string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.steps.Inc(ctx, AttrTenantID.String(tenantID.String()), AttrStep.String(step), AttrOutcome.String(outcome))
}

// EventOutcomes counts event deliveries per consumer. Record matches
// event.OutcomeRecorder.
type EventOutcomes struct {
	deliveries *Counter
}

func NewEventOutcomes(meter metric.Meter) (*EventOutcomes, error) {
	deliveries, err := NewCounter(meter, "event_deliveries_total", "Domain event deliveries by consumer and outcome", "{delivery}")
	if err != nil {
		return nil, fmt.Errorf("event outcomes: %w", err)
	}
	return &EventOutcomes{deliveries: deliveries}, nil
}

func (o *EventOutcomes) Record(ctx context.Context, consumer, eventType, outcome string) {
	o.deliveries.Inc(ctx, AttrConsumer.String(consumer), AttrEventType.String(eventType), AttrOutcome.String(outcome))
}
