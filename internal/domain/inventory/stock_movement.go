package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement is an append-only record of a stock change.
type StockMovement struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ProductID  uuid.UUID
	LocationID *uuid.UUID
	Type       MovementType
	Quantity   int
	Reason     string
	// Reference is the business document that caused the movement, e.g. a refund number.
	Reference string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// NewStockMovement validates and creates a stock movement.
func NewStockMovement(tenantID, productID uuid.UUID, locationID *uuid.UUID, movementType MovementType, quantity int, reason, reference string, createdBy uuid.UUID) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid stock movement type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Movement quantity must be positive")
	}
	if reference == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Movement reference is required")
	}
	return &StockMovement{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ProductID:  productID,
		LocationID: locationID,
		Type:       movementType,
		Quantity:   quantity,
		Reason:     reason,
		Reference:  reference,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now(),
	}, nil
}

// Delta is the signed stock change of the movement.
func (m *StockMovement) Delta() int {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
