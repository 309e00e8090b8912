package refund

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchProcessor applies refund operations to many targets. Every item runs
// in its own transaction: one failure is recorded and the rest carry on.
type BatchProcessor struct {
	service *RefundService
	sales   trade.SaleRepository
	logger  *zap.Logger
}

// NewBatchProcessor creates a BatchProcessor
func NewBatchProcessor(service *RefundService, sales trade.SaleRepository, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{service: service, sales: sales, logger: logger}
}

// CreateAndApproveBulk refunds every line of each sale at its item price. With
// AutoApprove set, refunds the policy left pending are approved by the caller.
func (b *BatchProcessor) CreateAndApproveBulk(ctx context.Context, tenantID, actorID uuid.UUID, req BulkCreateRequest) (*BatchResult, error) {
	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	result := newBatchResult(len(req.SaleNumbers))
	for _, number := range req.SaleNumbers {
		item, err := b.createOne(ctx, tenantID, actorID, number, req)
		if err != nil {
			result.fail(number, err)
			continue
		}
		result.succeed(*item)
	}
	b.log("bulk refund create", tenantID, result)
	return result, nil
}

func (b *BatchProcessor) createOne(ctx context.Context, tenantID, actorID uuid.UUID, saleNumber string, req BulkCreateRequest) (*BatchItemResult, error) {
	sale, err := b.sales.FindBySaleNumber(ctx, tenantID, saleNumber)
	if err != nil {
		return nil, err
	}
	if len(sale.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Sale has no items to refund")
	}

	items := make([]CreateRefundItemInput, 0, len(sale.Items))
	total := decimal.Zero
	for _, line := range sale.Items {
		items = append(items, CreateRefundItemInput{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Reason:      req.Reason,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	created, err := b.service.CreateRefund(ctx, tenantID, actorID, CreateRefundRequest{
		SaleID:          sale.ID,
		Items:           items,
		RefundAmount:    total,
		RefundMethod:    req.RefundMethod,
		Reason:          req.Reason,
		RestockRequired: req.RestockRequired,
	})
	if err != nil {
		return nil, err
	}

	state := created.State
	if req.AutoApprove && created.State == string(refund.StatePendingApproval) {
		approved, err := b.service.ApproveRefund(ctx, tenantID, created.RefundID, actorID, ApproveRefundRequest{Notes: "Approved in bulk"})
		if err != nil {
			return nil, err
		}
		state = approved.State
	}

	return &BatchItemResult{
		Identifier:   saleNumber,
		RefundID:     created.RefundID,
		RefundNumber: created.RefundNumber,
		State:        state,
	}, nil
}

// ProcessBulk processes each approved refund
func (b *BatchProcessor) ProcessBulk(ctx context.Context, tenantID, actorID uuid.UUID, req BulkRefundIDsRequest) (*BatchResult, error) {
	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	result := newBatchResult(len(req.RefundIDs))
	for _, id := range req.RefundIDs {
		resp, err := b.service.ProcessRefund(ctx, tenantID, id, actorID, ProcessRefundRequest{PaymentDetails: req.PaymentDetails})
		if err != nil {
			result.fail(id.String(), err)
			continue
		}
		result.succeed(BatchItemResult{
			Identifier:   id.String(),
			RefundID:     resp.ID,
			RefundNumber: resp.RefundNumber,
			State:        resp.State,
		})
	}
	b.log("bulk refund process", tenantID, result)
	return result, nil
}

// CompleteBulk completes each processed refund. A refund left partially
// completed counts as failed.
func (b *BatchProcessor) CompleteBulk(ctx context.Context, tenantID, actorID uuid.UUID, req BulkCompleteRequest) (*BatchResult, error) {
	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	result := newBatchResult(len(req.RefundIDs))
	for _, id := range req.RefundIDs {
		resp, err := b.service.CompleteRefund(ctx, tenantID, id, actorID, CompleteRefundRequest{ReturnCondition: req.ReturnCondition})
		if err != nil {
			result.fail(id.String(), err)
			continue
		}
		if !resp.Completed {
			result.Failed++
			result.Errors = append(result.Errors, BatchItemError{
				Identifier: id.String(),
				Code:       string(refund.StatePartiallyCompleted),
				Message:    resp.Refund.Compensation.FailureMessage(),
			})
			continue
		}
		result.succeed(BatchItemResult{
			Identifier:   id.String(),
			RefundID:     resp.Refund.ID,
			RefundNumber: resp.Refund.RefundNumber,
			State:        resp.Refund.State,
		})
	}
	b.log("bulk refund complete", tenantID, result)
	return result, nil
}

func (b *BatchProcessor) log(msg string, tenantID uuid.UUID, result *BatchResult) {
	b.logger.Info(msg,
		zap.String("tenant_id", tenantID.String()),
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
	)
}

func newBatchResult(size int) *BatchResult {
	return &BatchResult{
		Results: make([]BatchItemResult, 0, size),
		Errors:  make([]BatchItemError, 0),
	}
}

func (r *BatchResult) succeed(item BatchItemResult) {
	r.Processed++
	r.Results = append(r.Results, item)
}

func (r *BatchResult) fail(identifier string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BatchItemError{
		Identifier: identifier,
		Code:       shared.ErrorCode(err),
		Message:    err.Error(),
	})
}
