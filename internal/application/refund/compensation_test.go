package refund

import (
	"context"
	"errors"
	"testing"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stepStatuses(results []CompensationStepResult) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.Step] = r.Status
	}
	return out
}

func TestCompleteRefund_RunsCompensationInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	publisher := new(MockEventPublisher)
	f.service.SetEventPublisher(publisher)

	sale := f.newSale(2)
	sale.DiscountAmount = decimal.NewFromInt(10)
	sale.TaxAmount = decimal.NewFromInt(8)
	r := f.newProcessedRefund(sale)
	line := r.Items[0]

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatusPartiallyRefunded, nil)
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
	f.stock.On("IncrementProductStock", mock.Anything, f.tenantID, line.ProductID, 2).Return(nil)
	f.stock.On("IncrementLocationStock", mock.Anything, f.tenantID, line.ProductID, sale.BranchID, 2).Return(nil)
	f.movements.On("Create", mock.Anything, mock.MatchedBy(func(m *inventory.StockMovement) bool {
		return m.Type == inventory.MovementIn && m.Quantity == 2 && m.Reference == r.RefundNumber &&
			m.LocationID != nil && *m.LocationID == sale.BranchID
	})).Return(nil)
	f.loyalty.On("SumPointsForSale", mock.Anything, f.tenantID, sale.ID, mock.Anything).Return(int64(120), nil)
	f.loyalty.On("DeductPoints", mock.Anything, f.tenantID, *sale.CustomerID, int64(120)).Return(int64(100), int64(0), nil)
	f.loyalty.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *partner.PointsTransaction) bool {
		return tx.Type == partner.PointsTypeRefund && tx.Points == -120 && tx.BalanceBefore == 100 && tx.BalanceAfter == 0
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{
		ReturnCondition: string(refund.ConditionLikeNew),
		InspectionNotes: "tags attached",
	})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, string(refund.StateCompleted), result.Refund.State)
	assert.Equal(t, "completed", result.Refund.Status)
	assert.True(t, result.Refund.IsReturned)
	assert.Equal(t, string(refund.ConditionLikeNew), result.Refund.ReturnCondition)
	require.NotNil(t, result.Refund.CompletedDate)

	require.Len(t, r.Compensation.Outcomes, 4)
	for i, step := range refund.CompensationSteps() {
		assert.Equal(t, step, r.Compensation.Outcomes[i].Step)
		assert.False(t, r.Compensation.Outcomes[i].Skipped)
	}
	assert.Contains(t, result.Summary, "Reversed 120 loyalty points")
	assert.Contains(t, result.Summary, "Restocked 2 units")

	var actions []refund.AuditAction
	for _, e := range f.audit.appended() {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []refund.AuditAction{
		refund.ActionDiscountReversal,
		refund.ActionTaxReversal,
		refund.ActionCompleted,
	}, actions)

	f.movements.AssertNumberOfCalls(t, "Create", 1)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	events := publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	require.Len(t, events, 1)
	assert.Equal(t, refund.EventTypeRefundCompleted, events[0].EventType())
}

func TestCompleteRefund_SkipsStepsWithNothingToDo(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sale := f.newSale(2)
	sale.CustomerID = nil
	r := f.newProcessedRefund(sale)
	r.RestockRequired = false

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatusPartiallyRefunded, nil)
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.NoError(t, err)
	assert.True(t, result.Completed)

	statuses := stepStatuses(result.Steps)
	assert.Equal(t, "done", statuses[string(refund.StepSaleAdjustment)])
	assert.Equal(t, "skipped", statuses[string(refund.StepInventoryRestock)])
	assert.Equal(t, "skipped", statuses[string(refund.StepLoyaltyReversal)])
	assert.Equal(t, "skipped", statuses[string(refund.StepAdjustmentNotes)])
	f.stock.AssertNotCalled(t, "IncrementProductStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.loyalty.AssertNotCalled(t, "SumPointsForSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteRefund_NoPointsLeftToReverse(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sale := f.newSale(2)
	r := f.newProcessedRefund(sale)
	r.RestockRequired = false

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatusPartiallyRefunded, nil)
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
	f.loyalty.On("SumPointsForSale", mock.Anything, f.tenantID, sale.ID, mock.Anything).Return(int64(0), nil)

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, "skipped", stepStatuses(result.Steps)[string(refund.StepLoyaltyReversal)])
	f.loyalty.AssertNotCalled(t, "DeductPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.loyalty.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestCompleteRefund_StepFailureLeavesPartiallyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	publisher := new(MockEventPublisher)
	f.service.SetEventPublisher(publisher)

	sale := f.newSale(2)
	sale.TaxAmount = decimal.NewFromInt(8)
	r := f.newProcessedRefund(sale)
	line := r.Items[0]

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatusPartiallyRefunded, nil)
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
	f.stock.On("IncrementProductStock", mock.Anything, f.tenantID, line.ProductID, 2).Return(errors.New("connection reset"))
	f.loyalty.On("SumPointsForSale", mock.Anything, f.tenantID, sale.ID, mock.Anything).Return(int64(50), nil)
	f.loyalty.On("DeductPoints", mock.Anything, f.tenantID, *sale.CustomerID, int64(50)).Return(int64(80), int64(30), nil)
	f.loyalty.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, string(refund.StatePartiallyCompleted), result.Refund.State)
	assert.True(t, result.Refund.IsReturned)
	assert.Nil(t, result.Refund.CompletedDate)
	assert.Equal(t, []refund.CompensationStep{refund.StepInventoryRestock}, r.Compensation.FailedSteps())
	assert.Equal(t, "inventory_restock: connection reset", r.Compensation.FailureMessage())
	assert.Equal(t, []refund.CompensationStep{refund.StepInventoryRestock}, r.Compensation.Pending())

	statuses := stepStatuses(result.Steps)
	assert.Equal(t, "done", statuses[string(refund.StepSaleAdjustment)])
	assert.Equal(t, "failed", statuses[string(refund.StepInventoryRestock)])
	assert.Equal(t, "done", statuses[string(refund.StepLoyaltyReversal)])
	assert.Equal(t, "done", statuses[string(refund.StepAdjustmentNotes)])

	f.loyalty.AssertCalled(t, "DeductPoints", mock.Anything, f.tenantID, *sale.CustomerID, int64(50))
	f.loyalty.AssertNumberOfCalls(t, "CreateTransaction", 1)
	f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	var actions []refund.AuditAction
	for _, e := range f.audit.appended() {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []refund.AuditAction{refund.ActionTaxReversal, refund.ActionPartiallyCompleted}, actions)
	last := f.audit.appended()[len(actions)-1]
	assert.Contains(t, last.Note, "inventory_restock: connection reset")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCompleteRefund_RecordsEveryFailedStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sale := f.newSale(2)
	r := f.newProcessedRefund(sale)
	line := r.Items[0]

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatus(""), errors.New("sale locked"))
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
	f.stock.On("IncrementProductStock", mock.Anything, f.tenantID, line.ProductID, 2).Return(nil)
	f.stock.On("IncrementLocationStock", mock.Anything, f.tenantID, line.ProductID, sale.BranchID, 2).Return(nil)
	f.movements.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.loyalty.On("SumPointsForSale", mock.Anything, f.tenantID, sale.ID, mock.Anything).Return(int64(0), errors.New("timeout"))

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, []refund.CompensationStep{refund.StepSaleAdjustment, refund.StepLoyaltyReversal}, r.Compensation.FailedSteps())
	assert.Equal(t, "sale_adjustment: sale locked; loyalty_reversal: timeout", r.Compensation.FailureMessage())
	assert.True(t, r.Compensation.IsDone(refund.StepInventoryRestock))
	assert.True(t, r.Compensation.IsDone(refund.StepAdjustmentNotes))

	statuses := stepStatuses(result.Steps)
	assert.Equal(t, "failed", statuses[string(refund.StepSaleAdjustment)])
	assert.Equal(t, "done", statuses[string(refund.StepInventoryRestock)])
	assert.Equal(t, "failed", statuses[string(refund.StepLoyaltyReversal)])
	assert.Equal(t, "skipped", statuses[string(refund.StepAdjustmentNotes)])
}

func TestCompleteRefund_ResumesWithoutRepeatingDoneSteps(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sale := f.newSale(2)
	r := f.newProcessedRefund(sale)
	r.RestockRequired = false
	r.Compensation.MarkDone(refund.StepSaleAdjustment, "Sale adjusted", false)
	r.Compensation.MarkFailed(refund.StepInventoryRestock, errors.New("connection reset"))
	r.Compensation.MarkFailed(refund.StepLoyaltyReversal, errors.New("timeout"))
	r.State = refund.StatePartiallyCompleted

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sales.On("FindByIDForTenant", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
	f.loyalty.On("SumPointsForSale", mock.Anything, f.tenantID, sale.ID, mock.Anything).Return(int64(0), nil)

	result, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, "already_done", stepStatuses(result.Steps)[string(refund.StepSaleAdjustment)])
	assert.Empty(t, r.Compensation.Failures)
	assert.Equal(t, 1, r.Compensation.Attempts)
	f.sales.AssertNotCalled(t, "ApplyRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	entries := f.audit.appended()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, refund.ActionCompleted, last.Action)
	assert.Equal(t, refund.StatePartiallyCompleted, last.PreviousStatus)
}

func TestCompleteRefund_RequiresProcessed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	r := f.newRefund(f.newSale(2))
	require.NoError(t, r.Approve(f.actorID, ""))
	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)

	_, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	require.Error(t, err)
	assert.Equal(t, "Cannot complete refund with status: approved", err.(*shared.DomainError).Message)
	assert.False(t, r.IsReturned)
	f.sales.AssertNotCalled(t, "ApplyRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteRefund_CursorConflictStopsRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sale := f.newSale(2)
	r := f.newProcessedRefund(sale)

	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil).Once()
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(shared.ErrConcurrencyConflict)
	f.sales.On("ApplyRefund", mock.Anything, f.tenantID, sale.ID, r.RefundAmount).Return(trade.SaleStatusPartiallyRefunded, nil)

	_, err := f.service.CompleteRefund(ctx, f.tenantID, r.ID, f.actorID, CompleteRefundRequest{})
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	assert.False(t, r.Compensation.IsDone(refund.StepSaleAdjustment))
	assert.Equal(t, []refund.CompensationStep{refund.StepSaleAdjustment}, r.Compensation.FailedSteps())
	f.stock.AssertNotCalled(t, "IncrementProductStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
