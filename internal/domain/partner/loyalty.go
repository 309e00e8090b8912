package partner

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// PointsTransactionType represents the type of loyalty points transaction
type PointsTransactionType string

const (
	// PointsTypePurchase is points earned on a sale (positive)
	PointsTypePurchase PointsTransactionType = "purchase"
	// PointsTypeRefund is points taken back when a sale is refunded (negative)
	PointsTypeRefund PointsTransactionType = "refund"
	// PointsTypeRedemption is points spent by the customer (negative)
	PointsTypeRedemption PointsTransactionType = "redemption"
	// PointsTypeAdjustment is a manual correction (either sign)
	PointsTypeAdjustment PointsTransactionType = "adjustment"
)

// IsValid returns true if the transaction type is valid
func (t PointsTransactionType) IsValid() bool {
	switch t {
	case PointsTypePurchase, PointsTypeRefund, PointsTypeRedemption, PointsTypeAdjustment:
		return true
	}
	return false
}

// PointsTransaction is an immutable loyalty ledger row. Corrections are new rows.
type PointsTransaction struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	Type       PointsTransactionType
	// Points is signed: purchases are positive, refunds and redemptions negative.
	Points        int64
	BalanceBefore int64
	BalanceAfter  int64
	// ReferenceID is the sale the points belong to.
	ReferenceID uuid.UUID
	Reference   string
	Description string
	OperatorID  *uuid.UUID
}

// NewRefundPointsTransaction reverses points earned on a sale.
func NewRefundPointsTransaction(tenantID, customerID, saleID uuid.UUID, points, balanceBefore, balanceAfter int64, refundNumber string, operatorID uuid.UUID) (*PointsTransaction, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer ID cannot be empty")
	}
	if points <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Reversed points must be positive")
	}
	return &PointsTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		CustomerID:    customerID,
		Type:          PointsTypeRefund,
		Points:        -points,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		ReferenceID:   saleID,
		Reference:     refundNumber,
		Description:   "Points reversed for refund " + refundNumber,
		OperatorID:    &operatorID,
	}, nil
}

// ClampedDeduction returns the balance after removing points, never below zero.
func ClampedDeduction(balance, points int64) int64 {
	if points >= balance {
		return 0
	}
	return balance - points
}
