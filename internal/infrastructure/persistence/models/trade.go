package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for a sale.
type SaleModel struct {
	BaseModel
	TenantID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_sales_tenant_number,priority:1"`
	SaleNumber     string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_tenant_number,priority:2"`
	BranchID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index"`
	Items          []SaleItemModel  `gorm:"foreignKey:SaleID;references:ID"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount      decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	RefundedAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod  string           `gorm:"type:varchar(30)"`
	Status         trade.SaleStatus `gorm:"type:varchar(30);not null;default:'completed'"`
	SoldAt         time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	s := &trade.Sale{
		ID:             m.ID,
		TenantID:       m.TenantID,
		SaleNumber:     m.SaleNumber,
		BranchID:       m.BranchID,
		CustomerID:     m.CustomerID,
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		TaxAmount:      m.TaxAmount,
		TotalAmount:    m.TotalAmount,
		RefundedAmount: m.RefundedAmount,
		PaymentMethod:  m.PaymentMethod,
		Status:         m.Status,
		SoldAt:         m.SoldAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	s.Items = make([]trade.SaleItem, len(m.Items))
	for i, item := range m.Items {
		s.Items[i] = trade.SaleItem{
			ID:          item.ID,
			SaleID:      item.SaleID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	return s
}

// SaleModelFromDomain creates a persistence model from a domain Sale.
// Sales are written by checkout; this is used by seeding and tests.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{
		BaseModel:      BaseModel{ID: s.ID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
		TenantID:       s.TenantID,
		SaleNumber:     s.SaleNumber,
		BranchID:       s.BranchID,
		CustomerID:     s.CustomerID,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		TotalAmount:    s.TotalAmount,
		RefundedAmount: s.RefundedAmount,
		PaymentMethod:  s.PaymentMethod,
		Status:         s.Status,
		SoldAt:         s.SoldAt,
	}
	m.Items = make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i] = SaleItemModel{
			ID:          item.ID,
			SaleID:      s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	return m
}

// SaleItemModel is one sale line.
type SaleItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	SKU         string          `gorm:"column:sku;type:varchar(64)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}
