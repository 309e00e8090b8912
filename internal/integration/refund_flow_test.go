// Package integration runs the refund API against PostgreSQL in a container.
package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/event"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
	"github.com/retailpos/backend/internal/testutil"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.TerminateSharedPostgres()
	os.Exit(code)
}

type flowEnv struct {
	db       *gorm.DB
	service  *apprefund.RefundService
	events   *testutil.EventRecorder
	cashier  *testutil.APIClient
	manager  *testutil.APIClient
	tenantID uuid.UUID
	branchID uuid.UUID
}

func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()
	pg := testutil.NewSharedPostgresDB(t)
	pg.TruncateAll()

	log := zap.NewNop()
	service := apprefund.NewRefundService(persistence.NewRepositories(pg.DB), persistence.NewGormTransactionScope(pg.DB), log)
	service.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore())

	bus := event.NewInMemoryEventBus(log)
	recorder := testutil.NewEventRecorder()
	bus.Subscribe(recorder)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })
	service.SetEventPublisher(bus)

	jwtCfg := config.JWTConfig{Secret: "integration-secret-0123456789abcdef", Issuer: "retailpos"}
	tokens := auth.NewJWTService(jwtCfg)
	engine := router.New(router.Dependencies{
		Config: &config.Config{
			App:    config.AppConfig{Name: "retailpos-refunds"},
			HTTP:   config.HTTPConfig{MaxBodySize: 1 << 20},
			Refund: config.RefundConfig{MaxBatchSize: 10},
		},
		Logger:   log,
		Tokens:   tokens,
		Refunds:  service,
		Policies: service,
		Batches:  apprefund.NewBatchProcessor(service, persistence.NewGormSaleRepository(pg.DB), log),
		DB:       &persistence.Database{DB: pg.DB},
		Version:  "test",
	})

	env := &flowEnv{
		db:       pg.DB,
		service:  service,
		events:   recorder,
		tenantID: uuid.New(),
		branchID: uuid.New(),
	}
	issue := func(perms ...string) string {
		token, err := tokens.IssueAccessToken(auth.TokenInput{
			TenantID:    env.tenantID,
			UserID:      uuid.New(),
			Username:    "tester",
			Permissions: perms,
		})
		require.NoError(t, err)
		return token
	}
	env.cashier = &testutil.APIClient{Handler: engine, Token: issue()}
	env.manager = env.cashier.WithToken(issue(middleware.PermRefundApprove, middleware.PermPolicyWrite))
	return env
}

type seededSale struct {
	sale       *trade.Sale
	shirtID    uuid.UUID
	jacketID   uuid.UUID
	customerID uuid.UUID
}

// seedSale stores a 100.00 sale of two shirts at 25 and one jacket at 50,
// with stock, a customer and the points the sale earned.
func (e *flowEnv) seedSale(t *testing.T, number string) seededSale {
	t.Helper()
	s := seededSale{shirtID: uuid.New(), jacketID: uuid.New(), customerID: uuid.New()}
	saleID := uuid.New()

	for id, sku := range map[uuid.UUID]string{s.shirtID: "LS-" + number, s.jacketID: "DJ-" + number} {
		require.NoError(t, e.db.Create(&models.ProductStockModel{
			BaseModel:    models.BaseModel{ID: id},
			TenantID:     e.tenantID,
			Name:         sku,
			SKU:          sku,
			CurrentStock: 3,
		}).Error)
	}
	require.NoError(t, e.db.Create(&models.CustomerLoyaltyModel{
		BaseModel:     models.BaseModel{ID: s.customerID},
		TenantID:      e.tenantID,
		Name:          "Ada",
		LoyaltyPoints: 70,
	}).Error)

	s.sale = &trade.Sale{
		ID:         saleID,
		TenantID:   e.tenantID,
		SaleNumber: number,
		BranchID:   e.branchID,
		CustomerID: &s.customerID,
		Items: []trade.SaleItem{
			{ID: uuid.New(), SaleID: saleID, ProductID: s.shirtID, ProductName: "Linen Shirt", SKU: "LS-" + number,
				Quantity: 2, UnitPrice: decimal.NewFromInt(25), TotalPrice: decimal.NewFromInt(50)},
			{ID: uuid.New(), SaleID: saleID, ProductID: s.jacketID, ProductName: "Denim Jacket", SKU: "DJ-" + number,
				Quantity: 1, UnitPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(50)},
		},
		Subtotal:       decimal.NewFromInt(110),
		DiscountAmount: decimal.NewFromInt(20),
		TaxAmount:      decimal.NewFromInt(10),
		TotalAmount:    decimal.NewFromInt(100),
		PaymentMethod:  "card",
		Status:         trade.SaleStatusCompleted,
		SoldAt:         time.Now().AddDate(0, 0, -3),
	}
	require.NoError(t, e.db.Create(models.SaleModelFromDomain(s.sale)).Error)
	require.NoError(t, e.db.Create(&models.PointsTransactionModel{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		TenantID:     e.tenantID,
		CustomerID:   s.customerID,
		Type:         partner.PointsTypePurchase,
		Points:       100,
		BalanceAfter: 100,
		ReferenceID:  saleID,
		Reference:    number,
	}).Error)
	return s
}

func (e *flowEnv) putPolicy(t *testing.T) {
	t.Helper()
	w := e.manager.Do(t, http.MethodPut, "/api/v1/refund-policies/"+e.branchID.String(), map[string]any{
		"allow_refunds":                  true,
		"refund_window_days":             30,
		"auto_approve_below":             "10",
		"require_manager_approval_above": "500",
		"max_refund_percentage":          "100",
		"auto_restock_refunded_items":    true,
	})
	result := testutil.DecodeData[apprefund.UpdatePolicyResult](t, w, http.StatusOK)
	assert.True(t, result.IsNew)
}

func (e *flowEnv) currentStock(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	var stock int
	require.NoError(t, e.db.Raw("SELECT current_stock FROM products WHERE id = ?", productID).Scan(&stock).Error)
	return stock
}

func TestRefundLifecycle(t *testing.T) {
	env := newFlowEnv(t)
	env.putPolicy(t)
	s := env.seedSale(t, "S-2026-00042")

	w := env.cashier.Do(t, http.MethodPost, "/api/v1/refunds", map[string]any{
		"sale_id":       s.sale.ID,
		"refund_amount": "50",
		"refund_method": "card",
		"reason":        "too small",
		"items": []map[string]any{
			{"product_id": s.shirtID, "quantity": 2, "unit_price": "25", "condition": "unworn"},
		},
	})
	created := testutil.DecodeData[apprefund.CreateRefundResult](t, w, http.StatusCreated)
	assert.Equal(t, string(refund.StatePendingApproval), created.State)
	assert.False(t, created.AutoApproved)
	path := "/api/v1/refunds/" + created.RefundID.String()

	testutil.AssertError(t, env.cashier.Do(t, http.MethodPost, path+"/approve", nil), http.StatusForbidden, "ERR_FORBIDDEN")
	testutil.AssertError(t, env.cashier.Do(t, http.MethodPost, path+"/process", nil), http.StatusConflict, "ERR_INVALID_STATE_TRANSITION")

	approved := testutil.DecodeData[apprefund.RefundResponse](t,
		env.manager.Do(t, http.MethodPost, path+"/approve", map[string]any{"notes": "receipt checked"}), http.StatusOK)
	assert.Equal(t, string(refund.StateApproved), approved.State)

	processed := testutil.DecodeData[apprefund.RefundResponse](t,
		env.cashier.Do(t, http.MethodPost, path+"/process", map[string]any{"payment_details": "card reversal 1234"}), http.StatusOK)
	assert.Equal(t, string(refund.StateProcessed), processed.State)

	completed := testutil.DecodeData[apprefund.CompleteRefundResult](t,
		env.cashier.Do(t, http.MethodPost, path+"/complete", map[string]any{"return_condition": "unworn"}), http.StatusOK)
	assert.True(t, completed.Completed)
	assert.Equal(t, string(refund.StateCompleted), completed.Refund.State)
	require.Len(t, completed.Steps, 4)

	assert.Equal(t, 5, env.currentStock(t, s.shirtID))
	assert.Equal(t, 3, env.currentStock(t, s.jacketID))

	var sale models.SaleModel
	require.NoError(t, env.db.First(&sale, "id = ?", s.sale.ID).Error)
	assert.Equal(t, trade.SaleStatusPartiallyRefunded, sale.Status)
	assert.True(t, sale.RefundedAmount.Equal(decimal.NewFromInt(50)))

	var points int64
	require.NoError(t, env.db.Raw("SELECT loyalty_points FROM customers WHERE id = ?", s.customerID).Scan(&points).Error)
	assert.Equal(t, int64(0), points)

	trail := testutil.DecodeData[[]apprefund.AuditEntryResponse](t, env.cashier.Do(t, http.MethodGet, path+"/audit-trail", nil), http.StatusOK)
	require.NotEmpty(t, trail)
	assert.Equal(t, string(refund.ActionCreated), trail[len(trail)-1].ActionType)
	actions := make([]string, len(trail))
	for i, e := range trail {
		actions[i] = e.ActionType
	}
	assert.Subset(t, actions, []string{"created", "approved", "processed", "discount_reversal", "tax_reversal", "completed"})

	require.True(t, testutil.WaitForEventCount(t, env.events, 4, 2*time.Second))
	assert.Equal(t, []string{
		refund.EventTypeRefundCreated,
		refund.EventTypeRefundApproved,
		refund.EventTypeRefundProcessed,
		refund.EventTypeRefundCompleted,
	}, env.events.Types())

	stats := testutil.DecodeData[apprefund.StatisticsResponse](t,
		env.cashier.Do(t, http.MethodGet, "/api/v1/refunds/statistics?branch_id="+env.branchID.String(), nil), http.StatusOK)
	assert.Equal(t, int64(1), stats.TotalCount)
	assert.True(t, stats.RefundedAmount.Equal(decimal.NewFromInt(50)))

	testutil.AssertError(t, env.cashier.Do(t, http.MethodPost, "/api/v1/refunds", map[string]any{
		"sale_id":       s.sale.ID,
		"refund_amount": "60",
		"refund_method": "cash",
		"items": []map[string]any{
			{"product_id": s.jacketID, "quantity": 1, "unit_price": "60"},
		},
	}), http.StatusUnprocessableEntity, "ERR_POLICY_VIOLATION")

	bySale := testutil.DecodeData[[]apprefund.RefundResponse](t,
		env.cashier.Do(t, http.MethodGet, "/api/v1/refunds/by-sale/"+s.sale.ID.String(), nil), http.StatusOK)
	assert.Len(t, bySale, 1)
}

func TestRefundLifecycle_RejectAndAutoApprove(t *testing.T) {
	env := newFlowEnv(t)
	env.putPolicy(t)
	s := env.seedSale(t, "S-2026-00043")

	create := func(amount string) apprefund.CreateRefundResult {
		w := env.cashier.Do(t, http.MethodPost, "/api/v1/refunds", map[string]any{
			"sale_id":       s.sale.ID,
			"refund_amount": amount,
			"refund_method": "store_credit",
			"items": []map[string]any{
				{"product_id": s.shirtID, "quantity": 1, "unit_price": amount},
			},
		})
		return testutil.DecodeData[apprefund.CreateRefundResult](t, w, http.StatusCreated)
	}

	small := create("5")
	assert.True(t, small.AutoApproved)
	assert.Equal(t, string(refund.StateApproved), small.State)

	pending := create("25")
	assert.Equal(t, string(refund.StatePendingApproval), pending.State)

	list := env.cashier.Do(t, http.MethodGet, "/api/v1/refunds/pending-approval", nil)
	env1 := testutil.DecodeEnvelope(t, list)
	require.NotNil(t, env1.Meta)
	assert.Equal(t, int64(1), env1.Meta.Total)

	rejected := testutil.DecodeData[apprefund.RefundResponse](t,
		env.manager.Do(t, http.MethodPost, "/api/v1/refunds/"+pending.RefundID.String()+"/reject",
			map[string]any{"reason": "worn outside"}), http.StatusOK)
	assert.Equal(t, string(refund.StateRejected), rejected.State)

	testutil.AssertError(t,
		env.manager.Do(t, http.MethodPost, "/api/v1/refunds/"+pending.RefundID.String()+"/approve", nil),
		http.StatusConflict, "ERR_INVALID_STATE_TRANSITION")
}

func TestBulkCreateAndApprove(t *testing.T) {
	env := newFlowEnv(t)
	env.seedSale(t, "S-2026-00100")
	env.seedSale(t, "S-2026-00101")

	body := map[string]any{
		"sale_numbers":  []string{"S-2026-00100", "S-2026-00101", "S-2026-99999"},
		"refund_method": "cash",
		"reason":        "store closure",
		"auto_approve":  true,
	}
	testutil.AssertError(t, env.cashier.Do(t, http.MethodPost, "/api/v1/refunds/bulk/create-approve", body),
		http.StatusForbidden, "ERR_FORBIDDEN")

	result := testutil.DecodeData[apprefund.BatchResult](t,
		env.manager.Do(t, http.MethodPost, "/api/v1/refunds/bulk/create-approve", body), http.StatusOK)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "S-2026-99999", result.Errors[0].Identifier)

	ids := make([]uuid.UUID, 0, len(result.Results))
	for _, r := range result.Results {
		assert.Equal(t, string(refund.StateApproved), r.State)
		ids = append(ids, r.RefundID)
	}

	processed := testutil.DecodeData[apprefund.BatchResult](t,
		env.cashier.Do(t, http.MethodPost, "/api/v1/refunds/bulk/process", map[string]any{"refund_ids": ids}), http.StatusOK)
	assert.Equal(t, 2, processed.Processed)

	completed := testutil.DecodeData[apprefund.BatchResult](t,
		env.cashier.Do(t, http.MethodPost, "/api/v1/refunds/bulk/complete", map[string]any{"refund_ids": ids}), http.StatusOK)
	assert.Equal(t, 2, completed.Processed)
	assert.Zero(t, completed.Failed)

	var statuses []string
	require.NoError(t, env.db.Raw("SELECT status FROM sales WHERE tenant_id = ? ORDER BY sale_number", env.tenantID).Scan(&statuses).Error)
	assert.Equal(t, []string{string(trade.SaleStatusCancelled), string(trade.SaleStatusCancelled)}, statuses)
}

func TestCreateRefund_ConcurrentCreatesCannotOverRefund(t *testing.T) {
	env := newFlowEnv(t)
	env.putPolicy(t)
	s := env.seedSale(t, "S-2026-00200")

	req := apprefund.CreateRefundRequest{
		SaleID:       s.sale.ID,
		RefundAmount: decimal.NewFromInt(100),
		RefundMethod: string(refund.MethodCash),
		Reason:       "duplicate till session",
		Items: []apprefund.CreateRefundItemInput{
			{ProductID: s.shirtID, Quantity: 2, UnitPrice: decimal.NewFromInt(25)},
			{ProductID: s.jacketID, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	const attempts = 4
	errs := make([]error, attempts)
	start := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			<-start
			_, errs[i] = env.service.CreateRefund(context.Background(), env.tenantID, uuid.New(), req)
			return nil
		})
	}
	close(start)
	require.NoError(t, g.Wait())

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodePolicyViolation, domainErr.Code)
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, env.db.Model(&models.RefundModel{}).Where("sale_id = ?", s.sale.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
