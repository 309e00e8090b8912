package models

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
)

// CustomerLoyaltyModel maps the loyalty columns of the customers table.
type CustomerLoyaltyModel struct {
	BaseModel
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	LoyaltyPoints int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerLoyaltyModel) TableName() string {
	return "customers"
}

// PointsTransactionModel is an immutable loyalty ledger row.
type PointsTransactionModel struct {
	BaseModel
	TenantID      uuid.UUID                     `gorm:"type:uuid;not null"`
	CustomerID    uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Type          partner.PointsTransactionType `gorm:"column:transaction_type;type:varchar(20);not null;index:idx_points_tx_reference_type,priority:2"`
	Points        int64                         `gorm:"not null"`
	BalanceBefore int64                         `gorm:"not null"`
	BalanceAfter  int64                         `gorm:"not null"`
	ReferenceID   uuid.UUID                     `gorm:"type:uuid;not null;index:idx_points_tx_reference_type,priority:1"`
	Reference     string                        `gorm:"type:varchar(64)"`
	Description   string                        `gorm:"type:varchar(500)"`
	OperatorID    *uuid.UUID                    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PointsTransactionModel) TableName() string {
	return "loyalty_points_transactions"
}

// ToDomain converts to a domain PointsTransaction
func (m *PointsTransactionModel) ToDomain() *partner.PointsTransaction {
	return &partner.PointsTransaction{
		BaseEntity:    m.Entity(),
		TenantID:      m.TenantID,
		CustomerID:    m.CustomerID,
		Type:          m.Type,
		Points:        m.Points,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ReferenceID:   m.ReferenceID,
		Reference:     m.Reference,
		Description:   m.Description,
		OperatorID:    m.OperatorID,
	}
}

// PointsTransactionModelFromDomain creates a persistence model from a domain PointsTransaction
func PointsTransactionModelFromDomain(t *partner.PointsTransaction) *PointsTransactionModel {
	m := &PointsTransactionModel{
		TenantID:      t.TenantID,
		CustomerID:    t.CustomerID,
		Type:          t.Type,
		Points:        t.Points,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		ReferenceID:   t.ReferenceID,
		Reference:     t.Reference,
		Description:   t.Description,
		OperatorID:    t.OperatorID,
	}
	m.SetEntity(t.BaseEntity)
	return m
}
