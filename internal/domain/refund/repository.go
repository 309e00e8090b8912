package refund

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RefundRepository persists refund aggregates.
type RefundRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Refund, error)
	FindByRefundNumber(ctx context.Context, tenantID uuid.UUID, refundNumber string) (*Refund, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Refund, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]Refund, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Refund, error)
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
	FindByState(ctx context.Context, tenantID uuid.UUID, state State, filter shared.Filter) ([]Refund, error)
	CountByState(ctx context.Context, tenantID uuid.UUID, state State) (int64, error)
	// SumOpenAmountForSale totals refunds for the sale that are not rejected.
	SumOpenAmountForSale(ctx context.Context, tenantID, saleID uuid.UUID) (decimal.Decimal, error)
	// Statistics aggregates refunds over the filter window.
	Statistics(ctx context.Context, tenantID uuid.UUID, filter StatisticsFilter) (*Statistics, error)
	// Create inserts a new refund with its items.
	Create(ctx context.Context, r *Refund) error
	// SaveWithLock updates the refund if its version is unchanged and bumps the version.
	SaveWithLock(ctx context.Context, r *Refund) error
	// GenerateRefundNumber returns the next unused refund number.
	GenerateRefundNumber(ctx context.Context) (string, error)
}

// PolicyRepository persists per-location refund policies.
type PolicyRepository interface {
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (*Policy, error)
	// Upsert inserts or replaces the policy for its location and reports whether it was inserted.
	Upsert(ctx context.Context, p *Policy) (bool, error)
}

// AuditRepository is the append-only audit trail store.
type AuditRepository interface {
	Append(ctx context.Context, entries ...*AuditEntry) error
	// FindByRefund returns entries newest first.
	FindByRefund(ctx context.Context, tenantID, refundID uuid.UUID) ([]AuditEntry, error)
}

// StatisticsFilter narrows statistics to a branch and date range.
type StatisticsFilter struct {
	BranchID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// StateStatistics is count and amount for one state.
type StateStatistics struct {
	State  State
	Count  int64
	Amount decimal.Decimal
}

// Statistics summarizes refunds for reporting.
type Statistics struct {
	TotalCount        int64
	TotalAmount       decimal.Decimal
	RefundedAmount    decimal.Decimal
	PendingAmount     decimal.Decimal
	AverageAmount     decimal.Decimal
	AutoApprovedCount int64
	ByState           []StateStatistics
}

// Finalize derives averages and pending totals from ByState.
func (s *Statistics) Finalize() {
	s.TotalCount = 0
	s.TotalAmount = decimal.Zero
	s.RefundedAmount = decimal.Zero
	s.PendingAmount = decimal.Zero
	for _, st := range s.ByState {
		s.TotalCount += st.Count
		s.TotalAmount = s.TotalAmount.Add(st.Amount)
		switch st.State {
		case StateCompleted:
			s.RefundedAmount = s.RefundedAmount.Add(st.Amount)
		case StatePendingApproval:
			s.PendingAmount = s.PendingAmount.Add(st.Amount)
		}
	}
	s.AverageAmount = decimal.Zero
	if s.TotalCount > 0 {
		s.AverageAmount = s.TotalAmount.Div(decimal.NewFromInt(s.TotalCount)).Round(2)
	}
}
