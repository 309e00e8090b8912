package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
)

// ProductStockModel maps the stock columns of the products table.
type ProductStockModel struct {
	BaseModel
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(200);not null"`
	SKU          string    `gorm:"column:sku;type:varchar(64);not null"`
	CurrentStock int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductStockModel) TableName() string {
	return "products"
}

// LocationStockModel is the stock of one product at one location.
type LocationStockModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_stocks_product_location,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_stocks_product_location,priority:2"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_stocks_product_location,priority:3"`
	Quantity   int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LocationStockModel) TableName() string {
	return "location_stocks"
}

// StockMovementModel is an append-only stock movement row.
type StockMovementModel struct {
	ID         uuid.UUID              `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID              `gorm:"type:uuid;not null"`
	ProductID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	LocationID *uuid.UUID             `gorm:"type:uuid"`
	Type       inventory.MovementType `gorm:"column:movement_type;type:varchar(20);not null"`
	Quantity   int                    `gorm:"not null"`
	Reason     string                 `gorm:"type:varchar(200)"`
	Reference  string                 `gorm:"type:varchar(64);not null;index"`
	CreatedBy  uuid.UUID              `gorm:"type:uuid;not null"`
	CreatedAt  time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts to a domain StockMovement
func (m *StockMovementModel) ToDomain() inventory.StockMovement {
	return inventory.StockMovement{
		ID:         m.ID,
		TenantID:   m.TenantID,
		ProductID:  m.ProductID,
		LocationID: m.LocationID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		Reference:  m.Reference,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// StockMovementModelFromDomain creates a persistence model from a domain StockMovement
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:         mv.ID,
		TenantID:   mv.TenantID,
		ProductID:  mv.ProductID,
		LocationID: mv.LocationID,
		Type:       mv.Type,
		Quantity:   mv.Quantity,
		Reason:     mv.Reason,
		Reference:  mv.Reference,
		CreatedBy:  mv.CreatedBy,
		CreatedAt:  mv.CreatedAt,
	}
}
