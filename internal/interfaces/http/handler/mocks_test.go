package handler

import (
	"context"

	"github.com/google/uuid"
	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockRefundService implements RefundService, PolicyService and BatchService for testing
type MockRefundService struct {
	mock.Mock
}

func (m *MockRefundService) CreateRefund(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.CreateRefundRequest) (*apprefund.CreateRefundResult, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.CreateRefundResult), args.Error(1)
}

func (m *MockRefundService) ApproveRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.ApproveRefundRequest) (*apprefund.RefundResponse, error) {
	args := m.Called(ctx, tenantID, refundID, actorID, req)
	return refundResult(args)
}

func (m *MockRefundService) RejectRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.RejectRefundRequest) (*apprefund.RefundResponse, error) {
	args := m.Called(ctx, tenantID, refundID, actorID, req)
	return refundResult(args)
}

func (m *MockRefundService) ProcessRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.ProcessRefundRequest) (*apprefund.RefundResponse, error) {
	args := m.Called(ctx, tenantID, refundID, actorID, req)
	return refundResult(args)
}

func (m *MockRefundService) CompleteRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.CompleteRefundRequest) (*apprefund.CompleteRefundResult, error) {
	args := m.Called(ctx, tenantID, refundID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.CompleteRefundResult), args.Error(1)
}

func (m *MockRefundService) ListRefunds(ctx context.Context, tenantID uuid.UUID, filter apprefund.RefundListFilter) (*shared.Paginated[apprefund.RefundResponse], error) {
	args := m.Called(ctx, tenantID, filter)
	return pageResult(args)
}

func (m *MockRefundService) GetRefund(ctx context.Context, tenantID, refundID uuid.UUID) (*apprefund.RefundResponse, error) {
	args := m.Called(ctx, tenantID, refundID)
	return refundResult(args)
}

func (m *MockRefundService) GetRefundsBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]apprefund.RefundResponse, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apprefund.RefundResponse), args.Error(1)
}

func (m *MockRefundService) GetRefundsByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, page, pageSize int) (*shared.Paginated[apprefund.RefundResponse], error) {
	args := m.Called(ctx, tenantID, customerID, page, pageSize)
	return pageResult(args)
}

func (m *MockRefundService) GetPendingApproval(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[apprefund.RefundResponse], error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return pageResult(args)
}

func (m *MockRefundService) GetStatistics(ctx context.Context, tenantID uuid.UUID, filter apprefund.StatisticsFilter) (*apprefund.StatisticsResponse, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.StatisticsResponse), args.Error(1)
}

func (m *MockRefundService) GetAuditTrail(ctx context.Context, tenantID, refundID uuid.UUID) ([]apprefund.AuditEntryResponse, error) {
	args := m.Called(ctx, tenantID, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apprefund.AuditEntryResponse), args.Error(1)
}

func (m *MockRefundService) GetPolicy(ctx context.Context, tenantID, locationID uuid.UUID) (*apprefund.PolicyResponse, error) {
	args := m.Called(ctx, tenantID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.PolicyResponse), args.Error(1)
}

func (m *MockRefundService) UpdatePolicy(ctx context.Context, tenantID, locationID, actorID uuid.UUID, req apprefund.UpdatePolicyRequest) (*apprefund.UpdatePolicyResult, error) {
	args := m.Called(ctx, tenantID, locationID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.UpdatePolicyResult), args.Error(1)
}

func (m *MockRefundService) CreateAndApproveBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkCreateRequest) (*apprefund.BatchResult, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	return batchResult(args)
}

func (m *MockRefundService) ProcessBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkRefundIDsRequest) (*apprefund.BatchResult, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	return batchResult(args)
}

func (m *MockRefundService) CompleteBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkCompleteRequest) (*apprefund.BatchResult, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	return batchResult(args)
}

func refundResult(args mock.Arguments) (*apprefund.RefundResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.RefundResponse), args.Error(1)
}

func pageResult(args mock.Arguments) (*shared.Paginated[apprefund.RefundResponse], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[apprefund.RefundResponse]), args.Error(1)
}

func batchResult(args mock.Arguments) (*apprefund.BatchResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apprefund.BatchResult), args.Error(1)
}
