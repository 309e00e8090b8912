package refund

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func policyFor(f *fixture, locationID uuid.UUID) *refund.Policy {
	p := refund.NewPolicy(f.tenantID, locationID)
	p.AutoApproveBelow = decimal.NewFromInt(60)
	p.RequireManagerApprovalAbove = decimal.NewFromInt(500)
	return p
}

func TestRefundService_CreateRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-approves below threshold and audits both steps", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(3)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(policyFor(f, sale.BranchID), nil)
		f.refunds.On("SumOpenAmountForSale", mock.Anything, f.tenantID, sale.ID).Return(decimal.Zero, nil)
		f.refunds.On("GenerateRefundNumber", mock.Anything).Return("RF-2026-00001", nil)
		f.refunds.On("Create", mock.Anything, mock.AnythingOfType("*refund.Refund")).Return(nil)
		f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		require.NoError(t, err)
		assert.Equal(t, "RF-2026-00001", result.RefundNumber)
		assert.True(t, result.AutoApproved)
		assert.Equal(t, string(refund.StateApproved), result.State)
		assert.Equal(t, "approved", result.ApprovalStatus)

		entries := f.audit.appended()
		require.Len(t, entries, 2)
		assert.Equal(t, refund.ActionCreated, entries[0].Action)
		assert.Equal(t, refund.StatePendingApproval, entries[0].NewStatus)
		assert.Equal(t, refund.ActionApproved, entries[1].Action)
		assert.Equal(t, refund.StateApproved, entries[1].NewStatus)

		created := f.refunds.Calls[len(f.refunds.Calls)-1].Arguments.Get(1).(*refund.Refund)
		require.Len(t, created.Items, 1)
		assert.Equal(t, "Linen Shirt", created.Items[0].ProductName)
		assert.Equal(t, "LS-01", created.Items[0].SKU)
		assert.True(t, created.RestockRequired)
	})

	t.Run("stays pending without a policy", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(3)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Refund policy not found for location"))
		f.refunds.On("SumOpenAmountForSale", mock.Anything, f.tenantID, sale.ID).Return(decimal.Zero, nil)
		f.refunds.On("GenerateRefundNumber", mock.Anything).Return("RF-2026-00002", nil)
		f.refunds.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		require.NoError(t, err)
		assert.False(t, result.AutoApproved)
		assert.Equal(t, string(refund.StatePendingApproval), result.State)
		assert.Len(t, f.audit.appended(), 1)
	})

	t.Run("sale not found", func(t *testing.T) {
		f := newFixture()
		saleID := uuid.New()
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, saleID).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Sale not found"))

		req := f.createRequest(f.newSale(1))
		req.SaleID = saleID
		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		f.refunds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refund window expired", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(45)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(policyFor(f, sale.BranchID), nil)

		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		require.Error(t, err)
		assert.Equal(t, shared.CodePolicyViolation, shared.ErrorCode(err))
		assert.Contains(t, err.Error(), "Refund period expired")
		f.refunds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refunds disabled at location", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		p := policyFor(f, sale.BranchID)
		p.AllowRefunds = false
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(p, nil)

		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		assert.Equal(t, shared.CodePolicyViolation, shared.ErrorCode(err))
	})

	t.Run("reason not in allowed list", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		p := policyFor(f, sale.BranchID)
		p.AllowedReasons = []string{"defective"}
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(p, nil)

		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		assert.Equal(t, shared.CodePolicyViolation, shared.ErrorCode(err))
	})

	t.Run("open refunds exhaust the sale", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(policyFor(f, sale.BranchID), nil)
		f.refunds.On("SumOpenAmountForSale", mock.Anything, f.tenantID, sale.ID).Return(decimal.NewFromInt(80), nil)

		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		assert.Equal(t, shared.CodePolicyViolation, shared.ErrorCode(err))
		assert.Contains(t, err.Error(), "refundable balance")
	})

	t.Run("cancelled sale", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		sale.Status = "cancelled"
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)

		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, f.createRequest(sale))
		assert.Equal(t, shared.CodePolicyViolation, shared.ErrorCode(err))
	})

	t.Run("product not on sale", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(policyFor(f, sale.BranchID), nil)
		f.refunds.On("SumOpenAmountForSale", mock.Anything, f.tenantID, sale.ID).Return(decimal.Zero, nil)

		req := f.createRequest(sale)
		req.Items[0].ProductID = uuid.New()
		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, req)
		assert.Equal(t, shared.CodeInvalidInput, shared.ErrorCode(err))
	})

	t.Run("amount must match items", func(t *testing.T) {
		f := newFixture()
		sale := f.newSale(1)
		f.sales.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(sale, nil)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, sale.BranchID).Return(policyFor(f, sale.BranchID), nil)
		f.refunds.On("SumOpenAmountForSale", mock.Anything, f.tenantID, sale.ID).Return(decimal.Zero, nil)
		f.refunds.On("GenerateRefundNumber", mock.Anything).Return("RF-2026-00003", nil)

		req := f.createRequest(sale)
		req.RefundAmount = decimal.NewFromInt(45)
		_, err := f.service.CreateRefund(ctx, f.tenantID, f.actorID, req)
		assert.Equal(t, shared.CodeInvalidInput, shared.ErrorCode(err))
	})

	t.Run("requires an authenticated actor", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateRefund(ctx, f.tenantID, uuid.Nil, f.createRequest(f.newSale(1)))
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
		f.sales.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRefundService_PublishesAfterCommit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	publisher := new(MockEventPublisher)
	f.service.SetEventPublisher(publisher)

	sale := f.newSale(1)
	r := f.newRefund(sale)
	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
	f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := f.service.ApproveRefund(ctx, f.tenantID, r.ID, f.actorID, ApproveRefundRequest{Notes: "ok"})
	require.NoError(t, err, "publish failures must not fail the committed change")
	assert.Equal(t, string(refund.StateApproved), resp.State)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	assert.Empty(t, r.PendingEvents())
}

func TestRefundService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending refund", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
		f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
		f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.ApproveRefund(ctx, f.tenantID, r.ID, f.actorID, ApproveRefundRequest{Notes: "checked receipt"})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.ApprovalStatus)
		assert.Equal(t, "checked receipt", resp.ApprovalNotes)
		require.NotNil(t, resp.ApprovalDate)

		entries := f.audit.appended()
		require.Len(t, entries, 1)
		assert.Equal(t, refund.StatePendingApproval, entries[0].PreviousStatus)
		assert.Equal(t, refund.StateApproved, entries[0].NewStatus)
		assert.Equal(t, f.actorID, entries[0].ActorID)
	})

	t.Run("approve twice is rejected with current status", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		require.NoError(t, r.Approve(f.actorID, ""))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)

		_, err := f.service.ApproveRefund(ctx, f.tenantID, r.ID, f.actorID, ApproveRefundRequest{})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidStateTransition, shared.ErrorCode(err))
		assert.Equal(t, "Cannot approve refund with status: approved", err.(*shared.DomainError).Message)
		f.refunds.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("reject keeps reason as internal notes", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
		f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
		f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.RejectRefund(ctx, f.tenantID, r.ID, f.actorID, RejectRefundRequest{Reason: "worn outside"})
		require.NoError(t, err)
		assert.Equal(t, string(refund.StateRejected), resp.State)
		assert.Equal(t, "rejected", resp.ApprovalStatus)
		assert.Equal(t, "worn outside", resp.InternalNotes)
		assert.Equal(t, "worn outside", f.audit.appended()[0].Note)
	})

	t.Run("reject completed refund fails", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		r.State = refund.StateCompleted
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)

		_, err := f.service.RejectRefund(ctx, f.tenantID, r.ID, f.actorID, RejectRefundRequest{Reason: "late"})
		assert.Equal(t, shared.CodeInvalidStateTransition, shared.ErrorCode(err))
	})

	t.Run("process requires approval", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)

		_, err := f.service.ProcessRefund(ctx, f.tenantID, r.ID, f.actorID, ProcessRefundRequest{})
		require.Error(t, err)
		assert.Equal(t, "Cannot process refund with status: pending_approval", err.(*shared.DomainError).Message)
	})

	t.Run("process approved refund", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		require.NoError(t, r.Approve(f.actorID, ""))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
		f.refunds.On("SaveWithLock", mock.Anything, r).Return(nil)
		f.audit.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.ProcessRefund(ctx, f.tenantID, r.ID, f.actorID, ProcessRefundRequest{PaymentDetails: "txn 991"})
		require.NoError(t, err)
		assert.Equal(t, "processed", resp.Status)
		assert.Equal(t, "txn 991", resp.PaymentDetails)
	})

	t.Run("concurrent modification surfaces as conflict", func(t *testing.T) {
		f := newFixture()
		r := f.newRefund(f.newSale(1))
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
		f.refunds.On("SaveWithLock", mock.Anything, r).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.ApproveRefund(ctx, f.tenantID, r.ID, f.actorID, ApproveRefundRequest{})
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		f.audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("mutations require an actor", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		_, err := f.service.ApproveRefund(ctx, f.tenantID, id, uuid.Nil, ApproveRefundRequest{})
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
		_, err = f.service.RejectRefund(ctx, f.tenantID, id, uuid.Nil, RejectRefundRequest{Reason: "x"})
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
		_, err = f.service.ProcessRefund(ctx, f.tenantID, id, uuid.Nil, ProcessRefundRequest{})
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
		_, err = f.service.CompleteRefund(ctx, f.tenantID, id, uuid.Nil, CompleteRefundRequest{})
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
		_, err = f.service.UpdatePolicy(ctx, f.tenantID, id, uuid.Nil, UpdatePolicyRequest{})
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated))
	})
}

func TestRefundService_CompleteRefundGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	guard := newMemoryGuard()
	f.service.SetIdempotencyStore(guard)

	refundID := uuid.New()
	_, err := guard.MarkProcessed(ctx, completionKeyPrefix+refundID.String(), defaultCompletionGuardTTL)
	require.NoError(t, err)

	_, err = f.service.CompleteRefund(ctx, f.tenantID, refundID, f.actorID, CompleteRefundRequest{})
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	f.refunds.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)

	// released after a run, even a failed one
	require.NoError(t, guard.Release(ctx, completionKeyPrefix+refundID.String()))
	f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, refundID).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Refund not found"))
	_, err = f.service.CompleteRefund(ctx, f.tenantID, refundID, f.actorID, CompleteRefundRequest{})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	held, err := guard.IsProcessed(ctx, completionKeyPrefix+refundID.String())
	require.NoError(t, err)
	assert.False(t, held)
}

func TestRefundService_UpdatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("creates policy with defaults", func(t *testing.T) {
		f := newFixture()
		locationID := uuid.New()
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, locationID).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Refund policy not found for location"))
		f.policies.On("Upsert", mock.Anything, mock.AnythingOfType("*refund.Policy")).Return(true, nil)

		window := 14
		result, err := f.service.UpdatePolicy(ctx, f.tenantID, locationID, f.actorID, UpdatePolicyRequest{RefundWindowDays: &window})
		require.NoError(t, err)
		assert.True(t, result.IsNew)
		assert.NotEqual(t, uuid.Nil, result.PolicyID)
		assert.Equal(t, 14, result.Policy.RefundWindowDays)
		assert.True(t, result.Policy.AllowRefunds)
		assert.True(t, result.Policy.AutoRestockRefundedItems)
	})

	t.Run("updates existing policy in place", func(t *testing.T) {
		f := newFixture()
		locationID := uuid.New()
		existing := policyFor(f, locationID)
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, locationID).Return(existing, nil)
		f.policies.On("Upsert", mock.Anything, existing).Return(false, nil)

		allow := false
		result, err := f.service.UpdatePolicy(ctx, f.tenantID, locationID, f.actorID, UpdatePolicyRequest{AllowRefunds: &allow})
		require.NoError(t, err)
		assert.False(t, result.IsNew)
		assert.Equal(t, existing.ID, result.PolicyID)
		assert.False(t, result.Policy.AllowRefunds)
		assert.True(t, result.Policy.AutoApproveBelow.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		f := newFixture()
		locationID := uuid.New()
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, locationID).Return(policyFor(f, locationID), nil)

		pct := decimal.NewFromInt(120)
		_, err := f.service.UpdatePolicy(ctx, f.tenantID, locationID, f.actorID, UpdatePolicyRequest{MaxRefundPercentage: &pct})
		assert.Equal(t, shared.CodeInvalidInput, shared.ErrorCode(err))
		f.policies.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestRefundService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("list applies defaults and filters", func(t *testing.T) {
		f := newFixture()
		branchID := uuid.New()
		r := f.newRefund(f.newSale(1))
		f.refunds.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Page == 1 && filter.PageSize == 20 && filter.Filters["state"] == "approved" &&
				filter.Filters["branch_id"] == branchID
		})).Return([]refund.Refund{*r}, nil)
		f.refunds.On("CountForTenant", mock.Anything, f.tenantID, mock.Anything).Return(int64(1), nil)

		page, err := f.service.ListRefunds(ctx, f.tenantID, RefundListFilter{State: "approved", BranchID: &branchID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.TotalPages)
		require.Len(t, page.Items, 1)
		assert.Equal(t, r.RefundNumber, page.Items[0].RefundNumber)
	})

	t.Run("pending approval sorts oldest first", func(t *testing.T) {
		f := newFixture()
		f.refunds.On("FindByState", mock.Anything, f.tenantID, refund.StatePendingApproval, mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.OrderBy == "request_date" && filter.OrderDir == "asc"
		})).Return([]refund.Refund{}, nil)
		f.refunds.On("CountByState", mock.Anything, f.tenantID, refund.StatePendingApproval).Return(int64(0), nil)

		page, err := f.service.GetPendingApproval(ctx, f.tenantID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("statistics", func(t *testing.T) {
		f := newFixture()
		stats := &refund.Statistics{
			AutoApprovedCount: 1,
			ByState: []refund.StateStatistics{
				{State: refund.StatePendingApproval, Count: 2, Amount: decimal.NewFromInt(80)},
				{State: refund.StateCompleted, Count: 2, Amount: decimal.NewFromInt(120)},
			},
		}
		stats.Finalize()
		f.refunds.On("Statistics", mock.Anything, f.tenantID, mock.Anything).Return(stats, nil)

		resp, err := f.service.GetStatistics(ctx, f.tenantID, StatisticsFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.TotalCount)
		assert.Equal(t, int64(2), resp.PendingCount)
		assert.True(t, resp.RefundedAmount.Equal(decimal.NewFromInt(120)))
		assert.True(t, resp.AverageAmount.Equal(decimal.NewFromInt(50)))
		assert.Len(t, resp.ByState, 2)
	})

	t.Run("audit trail of missing refund", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.refunds.On("FindByIDForTenant", mock.Anything, f.tenantID, id).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Refund not found"))

		_, err := f.service.GetAuditTrail(ctx, f.tenantID, id)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("get policy not configured", func(t *testing.T) {
		f := newFixture()
		locationID := uuid.New()
		f.policies.On("FindByLocation", mock.Anything, f.tenantID, locationID).Return(nil, shared.NewDomainError(shared.CodeNotFound, "Refund policy not found for location"))

		_, err := f.service.GetPolicy(ctx, f.tenantID, locationID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestRefundService_Settings(t *testing.T) {
	f := newFixture()

	f.service.SetCompletionGuardTTL(0)
	assert.Equal(t, defaultCompletionGuardTTL, f.service.guardTTL)
	f.service.SetCompletionGuardTTL(time.Minute)
	assert.Equal(t, time.Minute, f.service.guardTTL)

	require.NoError(t, f.service.SetLocale("de"))
	assert.Equal(t, "Refund RF-1 of 1.234,50 completed", f.service.executor.sprintf("Refund %s of %.2f completed", "RF-1", 1234.5))
	assert.Error(t, f.service.SetLocale("not a locale!"))
}
