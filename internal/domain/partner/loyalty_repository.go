package partner

import (
	"context"

	"github.com/google/uuid"
)

// LoyaltyRepository manages customer point balances and the points ledger.
type LoyaltyRepository interface {
	// SumPointsForSale sums points of the given types referencing the sale.
	SumPointsForSale(ctx context.Context, tenantID, saleID uuid.UUID, types ...PointsTransactionType) (int64, error)
	// DeductPoints lowers the customer's balance by points, clamped at zero,
	// and returns the balance before and after.
	DeductPoints(ctx context.Context, tenantID, customerID uuid.UUID, points int64) (before, after int64, err error)
	CreateTransaction(ctx context.Context, tx *PointsTransaction) error
	GetBalance(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
}
