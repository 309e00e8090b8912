package refund

import (
	"context"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/trade"
)

// TransactionScope runs a function inside one database transaction. All
// repositories handed to fn share that transaction; an error rolls it back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a refund mutation touches.
type TransactionalRepositories interface {
	RefundRepo() refund.RefundRepository
	AuditRepo() refund.AuditRepository
	PolicyRepo() refund.PolicyRepository
	SaleRepo() trade.SaleRepository
	StockRepo() inventory.StockRepository
	MovementRepo() inventory.StockMovementRepository
	LoyaltyRepo() partner.LoyaltyRepository
}

// Repositories is a plain set of repositories. Used directly it gives a
// transaction scope without a transaction, which unit tests rely on.
type Repositories struct {
	Refunds   refund.RefundRepository
	Audit     refund.AuditRepository
	Policies  refund.PolicyRepository
	Sales     trade.SaleRepository
	Stock     inventory.StockRepository
	Movements inventory.StockMovementRepository
	Loyalty   partner.LoyaltyRepository
}

// NoOpTransactionScope executes fn against Repositories without a transaction.
type NoOpTransactionScope struct {
	Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repositories: repos}
}

// Execute runs fn without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) RefundRepo() refund.RefundRepository             { return s.Refunds }
func (s *NoOpTransactionScope) AuditRepo() refund.AuditRepository               { return s.Audit }
func (s *NoOpTransactionScope) PolicyRepo() refund.PolicyRepository             { return s.Policies }
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository                  { return s.Sales }
func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository            { return s.Stock }
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository { return s.Movements }
func (s *NoOpTransactionScope) LoyaltyRepo() partner.LoyaltyRepository          { return s.Loyalty }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
