package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/shopspring/decimal"
)

// RefundModel is the persistence model for the Refund aggregate root.
type RefundModel struct {
	TenantAggregateModel
	RefundNumber          string                      `gorm:"type:varchar(50);not null;uniqueIndex:idx_refunds_number"`
	SaleID                uuid.UUID                   `gorm:"type:uuid;not null;index:idx_refunds_sale"`
	SaleNumber            string                      `gorm:"type:varchar(50);not null"`
	BranchID              uuid.UUID                   `gorm:"type:uuid;not null;index:idx_refunds_branch"`
	CustomerID            *uuid.UUID                  `gorm:"type:uuid;index:idx_refunds_customer"`
	Items                 []RefundItemModel           `gorm:"foreignKey:RefundID;references:ID"`
	RefundAmount          decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Method                refund.Method               `gorm:"column:refund_method;type:varchar(30);not null"`
	OriginalPaymentMethod string                      `gorm:"type:varchar(30)"`
	Reason                string                      `gorm:"type:varchar(200)"`
	State                 refund.State                `gorm:"type:varchar(30);not null;index:idx_refunds_state"`
	AutoApproved          bool                        `gorm:"not null;default:false"`
	RestockRequired       bool                        `gorm:"not null;default:false"`
	IsReturned            bool                        `gorm:"not null;default:false"`
	ReturnCondition       refund.ItemCondition        `gorm:"type:varchar(30)"`
	InspectionNotes       string                      `gorm:"type:text"`
	ApprovalNotes         string                      `gorm:"type:text"`
	InternalNotes         string                      `gorm:"type:text"`
	PaymentDetails        string                      `gorm:"type:text"`
	Compensation          refund.CompensationProgress `gorm:"column:compensation_progress;serializer:json;type:jsonb"`
	RequestDate           time.Time                   `gorm:"not null;index"`
	ApprovalDate          *time.Time
	ProcessedDate         *time.Time
	CompletedDate         *time.Time
	ReturnDate            *time.Time
	RejectedDate          *time.Time
	RequestedBy           uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy            *uuid.UUID `gorm:"type:uuid"`
	ProcessedBy           *uuid.UUID `gorm:"type:uuid"`
	CompletedBy           *uuid.UUID `gorm:"type:uuid"`
	RejectedBy            *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund.
func (m *RefundModel) ToDomain() *refund.Refund {
	r := &refund.Refund{
		TenantAggregateRoot:   m.Root(),
		RefundNumber:          m.RefundNumber,
		SaleID:                m.SaleID,
		SaleNumber:            m.SaleNumber,
		BranchID:              m.BranchID,
		CustomerID:            m.CustomerID,
		RefundAmount:          m.RefundAmount,
		Method:                m.Method,
		OriginalPaymentMethod: m.OriginalPaymentMethod,
		Reason:                m.Reason,
		State:                 m.State,
		AutoApproved:          m.AutoApproved,
		RestockRequired:       m.RestockRequired,
		IsReturned:            m.IsReturned,
		ReturnCondition:       m.ReturnCondition,
		InspectionNotes:       m.InspectionNotes,
		ApprovalNotes:         m.ApprovalNotes,
		InternalNotes:         m.InternalNotes,
		PaymentDetails:        m.PaymentDetails,
		Compensation:          m.Compensation,
		RequestDate:           m.RequestDate,
		ApprovalDate:          m.ApprovalDate,
		ProcessedDate:         m.ProcessedDate,
		CompletedDate:         m.CompletedDate,
		ReturnDate:            m.ReturnDate,
		RejectedDate:          m.RejectedDate,
		RequestedBy:           m.RequestedBy,
		ApprovedBy:            m.ApprovedBy,
		ProcessedBy:           m.ProcessedBy,
		CompletedBy:           m.CompletedBy,
		RejectedBy:            m.RejectedBy,
	}
	r.Items = make([]refund.Item, len(m.Items))
	for i := range m.Items {
		r.Items[i] = m.Items[i].ToDomain()
	}
	return r
}

// FromDomain populates the model from a domain Refund, items included.
func (m *RefundModel) FromDomain(r *refund.Refund) {
	m.SetRoot(r.TenantAggregateRoot)
	m.RefundNumber = r.RefundNumber
	m.SaleID = r.SaleID
	m.SaleNumber = r.SaleNumber
	m.BranchID = r.BranchID
	m.CustomerID = r.CustomerID
	m.RefundAmount = r.RefundAmount
	m.Method = r.Method
	m.OriginalPaymentMethod = r.OriginalPaymentMethod
	m.Reason = r.Reason
	m.State = r.State
	m.AutoApproved = r.AutoApproved
	m.RestockRequired = r.RestockRequired
	m.IsReturned = r.IsReturned
	m.ReturnCondition = r.ReturnCondition
	m.InspectionNotes = r.InspectionNotes
	m.ApprovalNotes = r.ApprovalNotes
	m.InternalNotes = r.InternalNotes
	m.PaymentDetails = r.PaymentDetails
	m.Compensation = r.Compensation
	m.RequestDate = r.RequestDate
	m.ApprovalDate = r.ApprovalDate
	m.ProcessedDate = r.ProcessedDate
	m.CompletedDate = r.CompletedDate
	m.ReturnDate = r.ReturnDate
	m.RejectedDate = r.RejectedDate
	m.RequestedBy = r.RequestedBy
	m.ApprovedBy = r.ApprovedBy
	m.ProcessedBy = r.ProcessedBy
	m.CompletedBy = r.CompletedBy
	m.RejectedBy = r.RejectedBy

	m.Items = make([]RefundItemModel, len(r.Items))
	for i := range r.Items {
		m.Items[i].FromDomain(&r.Items[i])
	}
}

// RefundModelFromDomain creates a persistence model from a domain Refund.
func RefundModelFromDomain(r *refund.Refund) *RefundModel {
	m := &RefundModel{}
	m.FromDomain(r)
	return m
}

// RefundItemModel is one refunded line.
type RefundItemModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key"`
	RefundID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductName string               `gorm:"type:varchar(200);not null"`
	SKU         string               `gorm:"column:sku;type:varchar(64)"`
	Quantity    int                  `gorm:"not null"`
	UnitPrice   decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Reason      string               `gorm:"type:varchar(200)"`
	Condition   refund.ItemCondition `gorm:"column:item_condition;type:varchar(30)"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RefundItemModel) TableName() string {
	return "refund_items"
}

// ToDomain converts to a domain Item
func (m *RefundItemModel) ToDomain() refund.Item {
	return refund.Item{
		ID:          m.ID,
		RefundID:    m.RefundID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		SKU:         m.SKU,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		Reason:      m.Reason,
		Condition:   m.Condition,
		Notes:       m.Notes,
	}
}

// FromDomain populates the model from a domain Item
func (m *RefundItemModel) FromDomain(i *refund.Item) {
	m.ID = i.ID
	m.RefundID = i.RefundID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.SKU = i.SKU
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.TotalPrice = i.TotalPrice
	m.Reason = i.Reason
	m.Condition = i.Condition
	m.Notes = i.Notes
}

// RefundPolicyModel stores one policy per location.
type RefundPolicyModel struct {
	BaseModel
	TenantID                    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_refund_policies_location,priority:1"`
	LocationID                  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_refund_policies_location,priority:2"`
	AllowRefunds                bool            `gorm:"not null;default:true"`
	RefundWindowDays            int             `gorm:"not null;default:30"`
	AutoApproveBelow            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RequireManagerApprovalAbove decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MaxRefundPercentage         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:100"`
	AllowedReasons              []string        `gorm:"serializer:json;type:jsonb"`
	AutoRestockRefundedItems    bool            `gorm:"not null;default:true"`
	UpdatedBy                   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (RefundPolicyModel) TableName() string {
	return "refund_policies"
}

// ToDomain converts to a domain Policy
func (m *RefundPolicyModel) ToDomain() *refund.Policy {
	reasons := m.AllowedReasons
	if reasons == nil {
		reasons = []string{}
	}
	return &refund.Policy{
		BaseEntity:                  m.Entity(),
		TenantID:                    m.TenantID,
		LocationID:                  m.LocationID,
		AllowRefunds:                m.AllowRefunds,
		RefundWindowDays:            m.RefundWindowDays,
		AutoApproveBelow:            m.AutoApproveBelow,
		RequireManagerApprovalAbove: m.RequireManagerApprovalAbove,
		MaxRefundPercentage:         m.MaxRefundPercentage,
		AllowedReasons:              reasons,
		AutoRestockRefundedItems:    m.AutoRestockRefundedItems,
		UpdatedBy:                   m.UpdatedBy,
	}
}

// RefundPolicyModelFromDomain creates a persistence model from a domain Policy
func RefundPolicyModelFromDomain(p *refund.Policy) *RefundPolicyModel {
	m := &RefundPolicyModel{
		TenantID:                    p.TenantID,
		LocationID:                  p.LocationID,
		AllowRefunds:                p.AllowRefunds,
		RefundWindowDays:            p.RefundWindowDays,
		AutoApproveBelow:            p.AutoApproveBelow,
		RequireManagerApprovalAbove: p.RequireManagerApprovalAbove,
		MaxRefundPercentage:         p.MaxRefundPercentage,
		AllowedReasons:              p.AllowedReasons,
		AutoRestockRefundedItems:    p.AutoRestockRefundedItems,
		UpdatedBy:                   p.UpdatedBy,
	}
	m.SetEntity(p.BaseEntity)
	return m
}

// RefundAuditEntryModel is an append-only audit trail row.
type RefundAuditEntryModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key"`
	TenantID       uuid.UUID          `gorm:"type:uuid;not null"`
	RefundID       uuid.UUID          `gorm:"type:uuid;not null;index:idx_refund_audit_refund"`
	Action         refund.AuditAction `gorm:"column:action_type;type:varchar(30);not null"`
	PreviousStatus refund.State       `gorm:"type:varchar(30)"`
	NewStatus      refund.State       `gorm:"type:varchar(30);not null"`
	ActorID        uuid.UUID          `gorm:"type:uuid;not null"`
	Timestamp      time.Time          `gorm:"column:occurred_at;not null"`
	Note           string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RefundAuditEntryModel) TableName() string {
	return "refund_audit_entries"
}

// ToDomain converts to a domain AuditEntry
func (m *RefundAuditEntryModel) ToDomain() refund.AuditEntry {
	return refund.AuditEntry{
		ID:             m.ID,
		TenantID:       m.TenantID,
		RefundID:       m.RefundID,
		Action:         m.Action,
		PreviousStatus: m.PreviousStatus,
		NewStatus:      m.NewStatus,
		ActorID:        m.ActorID,
		Timestamp:      m.Timestamp,
		Note:           m.Note,
	}
}

// RefundAuditEntryModelFromDomain creates a persistence model from a domain AuditEntry
func RefundAuditEntryModelFromDomain(e *refund.AuditEntry) *RefundAuditEntryModel {
	return &RefundAuditEntryModel{
		ID:             e.ID,
		TenantID:       e.TenantID,
		RefundID:       e.RefundID,
		Action:         e.Action,
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		ActorID:        e.ActorID,
		Timestamp:      e.Timestamp,
		Note:           e.Note,
	}
}

