package persistence

import (
	"context"

	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Repositories handed to the callback share one transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls the
// transaction back; otherwise it is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apprefund.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// NewRepositories builds the non-transactional repository set used for reads.
func NewRepositories(db *gorm.DB) apprefund.Repositories {
	return apprefund.Repositories{
		Refunds:   NewGormRefundRepository(db),
		Audit:     NewGormRefundAuditRepository(db),
		Policies:  NewGormRefundPolicyRepository(db),
		Sales:     NewGormSaleRepository(db),
		Stock:     NewGormStockRepository(db),
		Movements: NewGormStockMovementRepository(db),
		Loyalty:   NewGormLoyaltyRepository(db),
	}
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) RefundRepo() refund.RefundRepository {
	return NewGormRefundRepository(r.tx)
}

func (r *gormTransactionalRepositories) AuditRepo() refund.AuditRepository {
	return NewGormRefundAuditRepository(r.tx)
}

func (r *gormTransactionalRepositories) PolicyRepo() refund.PolicyRepository {
	return NewGormRefundPolicyRepository(r.tx)
}

func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockRepo() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *gormTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) LoyaltyRepo() partner.LoyaltyRepository {
	return NewGormLoyaltyRepository(r.tx)
}

var (
	_ apprefund.TransactionScope          = (*GormTransactionScope)(nil)
	_ apprefund.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
