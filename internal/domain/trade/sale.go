package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus is the status of a point-of-sale transaction.
type SaleStatus string

const (
	SaleStatusCompleted         SaleStatus = "completed"
	SaleStatusPartiallyRefunded SaleStatus = "partially_refunded"
	SaleStatusCancelled         SaleStatus = "cancelled"
)

// SaleItem is one line of a sale.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Sale is a completed checkout at a branch. Sales are written by the checkout
// service; this module reads them and records refunds against them.
type Sale struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	SaleNumber     string
	BranchID       uuid.UUID
	CustomerID     *uuid.UUID
	Items          []SaleItem
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	RefundedAmount decimal.Decimal
	PaymentMethod  string
	Status         SaleStatus
	SoldAt         time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCancelled reports whether the sale has been fully undone.
func (s *Sale) IsCancelled() bool {
	return s.Status == SaleStatusCancelled
}

// HasDiscount reports whether the sale carried a discount.
func (s *Sale) HasDiscount() bool {
	return s.DiscountAmount.IsPositive()
}

// HasTax reports whether the sale carried tax.
func (s *Sale) HasTax() bool {
	return s.TaxAmount.IsPositive()
}

// RefundableAmount is what is left after earlier refunds.
func (s *Sale) RefundableAmount() decimal.Decimal {
	remaining := s.TotalAmount.Sub(s.RefundedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// StatusAfterRefund returns the status once refunded reaches the given total.
func (s *Sale) StatusAfterRefund(refundedTotal decimal.Decimal) SaleStatus {
	if refundedTotal.GreaterThanOrEqual(s.TotalAmount) {
		return SaleStatusCancelled
	}
	return SaleStatusPartiallyRefunded
}
