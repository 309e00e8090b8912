package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository reads sales and applies refund adjustments to them.
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	// FindByIDForUpdate reads the sale and holds a row lock until the surrounding
	// transaction ends. Refund creation serializes on it per sale.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*Sale, error)
	// ApplyRefund adds amount to the refunded total in place and sets the status to
	// cancelled once the sale is fully refunded, partially_refunded otherwise.
	ApplyRefund(ctx context.Context, tenantID, saleID uuid.UUID, amount decimal.Decimal) (SaleStatus, error)
}
