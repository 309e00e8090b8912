package refund

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRefundRepository is a mock implementation of refund.RefundRepository
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*refund.Refund, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *refund.Refund); ok {
		return fn(ctx, tenantID, id), args.Error(1)
	}
	return args.Get(0).(*refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindByRefundNumber(ctx context.Context, tenantID uuid.UUID, refundNumber string) (*refund.Refund, error) {
	args := m.Called(ctx, tenantID, refundNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]refund.Refund, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]refund.Refund, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]refund.Refund, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) FindByState(ctx context.Context, tenantID uuid.UUID, state refund.State, filter shared.Filter) ([]refund.Refund, error) {
	args := m.Called(ctx, tenantID, state, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refund.Refund), args.Error(1)
}

func (m *MockRefundRepository) CountByState(ctx context.Context, tenantID uuid.UUID, state refund.State) (int64, error) {
	args := m.Called(ctx, tenantID, state)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) SumOpenAmountForSale(ctx context.Context, tenantID, saleID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRefundRepository) Statistics(ctx context.Context, tenantID uuid.UUID, filter refund.StatisticsFilter) (*refund.Statistics, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refund.Statistics), args.Error(1)
}

func (m *MockRefundRepository) Create(ctx context.Context, r *refund.Refund) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRefundRepository) SaveWithLock(ctx context.Context, r *refund.Refund) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRefundRepository) GenerateRefundNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPolicyRepository is a mock implementation of refund.PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (*refund.Policy, error) {
	args := m.Called(ctx, tenantID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refund.Policy), args.Error(1)
}

func (m *MockPolicyRepository) Upsert(ctx context.Context, p *refund.Policy) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of refund.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entries ...*refund.AuditEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAuditRepository) FindByRefund(ctx context.Context, tenantID, refundID uuid.UUID) ([]refund.AuditEntry, error) {
	args := m.Called(ctx, tenantID, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refund.AuditEntry), args.Error(1)
}

// appended returns every audit entry passed to Append, in call order
func (m *MockAuditRepository) appended() []*refund.AuditEntry {
	var out []*refund.AuditEntry
	for _, call := range m.Calls {
		if call.Method == "Append" {
			out = append(out, call.Arguments.Get(1).([]*refund.AuditEntry)...)
		}
	}
	return out
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*trade.Sale, error) {
	args := m.Called(ctx, tenantID, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) ApplyRefund(ctx context.Context, tenantID, saleID uuid.UUID, amount decimal.Decimal) (trade.SaleStatus, error) {
	args := m.Called(ctx, tenantID, saleID, amount)
	return args.Get(0).(trade.SaleStatus), args.Error(1)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) IncrementProductStock(ctx context.Context, tenantID, productID uuid.UUID, delta int) error {
	args := m.Called(ctx, tenantID, productID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) IncrementLocationStock(ctx context.Context, tenantID, productID, locationID uuid.UUID, delta int) error {
	args := m.Called(ctx, tenantID, productID, locationID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) CurrentStock(ctx context.Context, tenantID, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Int(0), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, mv *inventory.StockMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

// MockLoyaltyRepository is a mock implementation of partner.LoyaltyRepository
type MockLoyaltyRepository struct {
	mock.Mock
}

func (m *MockLoyaltyRepository) SumPointsForSale(ctx context.Context, tenantID, saleID uuid.UUID, types ...partner.PointsTransactionType) (int64, error) {
	args := m.Called(ctx, tenantID, saleID, types)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoyaltyRepository) DeductPoints(ctx context.Context, tenantID, customerID uuid.UUID, points int64) (int64, int64, error) {
	args := m.Called(ctx, tenantID, customerID, points)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLoyaltyRepository) CreateTransaction(ctx context.Context, tx *partner.PointsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) GetBalance(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// memoryGuard is a minimal shared.IdempotencyStore for tests
type memoryGuard struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{keys: make(map[string]bool)}
}

func (g *memoryGuard) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *memoryGuard) IsProcessed(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.keys[key], nil
}

func (g *memoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}

func (g *memoryGuard) Close() error { return nil }

// fixture wires a RefundService to mock repositories
type fixture struct {
	refunds   *MockRefundRepository
	audit     *MockAuditRepository
	policies  *MockPolicyRepository
	sales     *MockSaleRepository
	stock     *MockStockRepository
	movements *MockStockMovementRepository
	loyalty   *MockLoyaltyRepository
	service   *RefundService
	tenantID  uuid.UUID
	actorID   uuid.UUID
	now       time.Time
}

func newFixture() *fixture {
	f := &fixture{
		refunds:   new(MockRefundRepository),
		audit:     new(MockAuditRepository),
		policies:  new(MockPolicyRepository),
		sales:     new(MockSaleRepository),
		stock:     new(MockStockRepository),
		movements: new(MockStockMovementRepository),
		loyalty:   new(MockLoyaltyRepository),
		tenantID:  uuid.New(),
		actorID:   uuid.New(),
		now:       time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	repos := Repositories{
		Refunds:   f.refunds,
		Audit:     f.audit,
		Policies:  f.policies,
		Sales:     f.sales,
		Stock:     f.stock,
		Movements: f.movements,
		Loyalty:   f.loyalty,
	}
	f.service = NewRefundService(repos, NewNoOpTransactionScope(repos), nil)
	f.service.SetClock(func() time.Time { return f.now })
	return f
}

// newSale builds a sale of two items: 2 x 25.00 and 1 x 50.00
func (f *fixture) newSale(soldDaysAgo int) *trade.Sale {
	customerID := uuid.New()
	saleID := uuid.New()
	return &trade.Sale{
		ID:         saleID,
		TenantID:   f.tenantID,
		SaleNumber: "S-2026-00042",
		BranchID:   uuid.New(),
		CustomerID: &customerID,
		Items: []trade.SaleItem{
			{ID: uuid.New(), SaleID: saleID, ProductID: uuid.New(), ProductName: "Linen Shirt", SKU: "LS-01", Quantity: 2,
				UnitPrice: decimal.NewFromInt(25), TotalPrice: decimal.NewFromInt(50)},
			{ID: uuid.New(), SaleID: saleID, ProductID: uuid.New(), ProductName: "Denim Jacket", SKU: "DJ-07", Quantity: 1,
				UnitPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(50)},
		},
		Subtotal:      decimal.NewFromInt(100),
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: "card",
		Status:        trade.SaleStatusCompleted,
		SoldAt:        f.now.AddDate(0, 0, -soldDaysAgo),
	}
}

// newRefund builds a pending refund of the first sale line
func (f *fixture) newRefund(sale *trade.Sale) *refund.Refund {
	line := sale.Items[0]
	item, err := refund.NewItem(line.ProductID, line.ProductName, line.SKU, line.Quantity, line.UnitPrice, "too small", refund.ConditionUnworn, "")
	if err != nil {
		panic(err)
	}
	r, err := refund.NewRefund(f.tenantID, "RF-2026-00001", refund.SaleRef{
		SaleID:                sale.ID,
		SaleNumber:            sale.SaleNumber,
		BranchID:              sale.BranchID,
		CustomerID:            sale.CustomerID,
		OriginalPaymentMethod: sale.PaymentMethod,
	}, []refund.Item{*item}, line.TotalPrice, refund.MethodCard, "too small", true, f.actorID)
	if err != nil {
		panic(err)
	}
	r.PullEvents()
	return r
}

// newProcessedRefund builds a refund that is ready to complete
func (f *fixture) newProcessedRefund(sale *trade.Sale) *refund.Refund {
	r := f.newRefund(sale)
	if err := r.Approve(f.actorID, ""); err != nil {
		panic(err)
	}
	if err := r.Process(f.actorID, "card reversal"); err != nil {
		panic(err)
	}
	r.PullEvents()
	return r
}

func (f *fixture) createRequest(sale *trade.Sale) CreateRefundRequest {
	line := sale.Items[0]
	return CreateRefundRequest{
		SaleID: sale.ID,
		Items: []CreateRefundItemInput{
			{ProductID: line.ProductID, Quantity: 2, UnitPrice: line.UnitPrice, Reason: "too small"},
		},
		RefundAmount: decimal.NewFromInt(50),
		RefundMethod: string(refund.MethodCard),
		Reason:       "too small",
	}
}
