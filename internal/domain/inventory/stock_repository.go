package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockRepository changes stock counters in place.
type StockRepository interface {
	// IncrementProductStock adds delta to products.current_stock.
	IncrementProductStock(ctx context.Context, tenantID, productID uuid.UUID, delta int) error
	// IncrementLocationStock adds delta to the per-location entry when the product tracks one.
	IncrementLocationStock(ctx context.Context, tenantID, productID, locationID uuid.UUID, delta int) error
	// CurrentStock returns products.current_stock.
	CurrentStock(ctx context.Context, tenantID, productID uuid.UUID) (int, error)
}

// StockMovementRepository is the append-only movement log.
type StockMovementRepository interface {
	Create(ctx context.Context, m *StockMovement) error
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]StockMovement, error)
}
