package refund

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeRefundCreated   = "RefundCreated"
	EventTypeRefundApproved  = "RefundApproved"
	EventTypeRefundRejected  = "RefundRejected"
	EventTypeRefundProcessed = "RefundProcessed"
	EventTypeRefundCompleted = "RefundCompleted"
)

// RefundCreatedEvent is raised when a refund is requested
type RefundCreatedEvent struct {
	shared.BaseDomainEvent
	RefundID     uuid.UUID       `json:"refund_id"`
	RefundNumber string          `json:"refund_number"`
	SaleID       uuid.UUID       `json:"sale_id"`
	SaleNumber   string          `json:"sale_number"`
	BranchID     uuid.UUID       `json:"branch_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Method       Method          `json:"method"`
}

// NewRefundCreatedEvent creates a RefundCreatedEvent
func NewRefundCreatedEvent(r *Refund) *RefundCreatedEvent {
	return &RefundCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundCreated, AggregateTypeRefund, r.ID, r.TenantID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		SaleID:          r.SaleID,
		SaleNumber:      r.SaleNumber,
		BranchID:        r.BranchID,
		RefundAmount:    r.RefundAmount,
		Method:          r.Method,
	}
}

// RefundApprovedEvent is raised on manual or automatic approval
type RefundApprovedEvent struct {
	shared.BaseDomainEvent
	RefundID     uuid.UUID  `json:"refund_id"`
	RefundNumber string     `json:"refund_number"`
	ApprovedBy   *uuid.UUID `json:"approved_by"`
	AutoApproved bool       `json:"auto_approved"`
}

// NewRefundApprovedEvent creates a RefundApprovedEvent
func NewRefundApprovedEvent(r *Refund) *RefundApprovedEvent {
	return &RefundApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundApproved, AggregateTypeRefund, r.ID, r.TenantID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		ApprovedBy:      r.ApprovedBy,
		AutoApproved:    r.AutoApproved,
	}
}

// RefundRejectedEvent is raised when a refund is rejected
type RefundRejectedEvent struct {
	shared.BaseDomainEvent
	RefundID     uuid.UUID `json:"refund_id"`
	RefundNumber string    `json:"refund_number"`
	Reason       string    `json:"reason"`
}

// NewRefundRejectedEvent creates a RefundRejectedEvent
func NewRefundRejectedEvent(r *Refund) *RefundRejectedEvent {
	return &RefundRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundRejected, AggregateTypeRefund, r.ID, r.TenantID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		Reason:          r.InternalNotes,
	}
}

// RefundProcessedEvent is raised when the money has been paid back
type RefundProcessedEvent struct {
	shared.BaseDomainEvent
	RefundID     uuid.UUID       `json:"refund_id"`
	RefundNumber string          `json:"refund_number"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Method       Method          `json:"method"`
}

// NewRefundProcessedEvent creates a RefundProcessedEvent
func NewRefundProcessedEvent(r *Refund) *RefundProcessedEvent {
	return &RefundProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRefundProcessed, AggregateTypeRefund, r.ID, r.TenantID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		RefundAmount:    r.RefundAmount,
		Method:          r.Method,
	}
}

// RefundCompletedItem is a line copied into the completion event
type RefundCompletedItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Reason      string          `json:"reason"`
	Condition   ItemCondition   `json:"condition"`
}

// RefundCompletedEvent is raised once every compensating step has been applied
type RefundCompletedEvent struct {
	shared.BaseDomainEvent
	RefundID              uuid.UUID             `json:"refund_id"`
	RefundNumber          string                `json:"refund_number"`
	SaleID                uuid.UUID             `json:"sale_id"`
	SaleNumber            string                `json:"sale_number"`
	BranchID              uuid.UUID             `json:"branch_id"`
	CustomerID            *uuid.UUID            `json:"customer_id,omitempty"`
	RefundAmount          decimal.Decimal       `json:"refund_amount"`
	Method                Method                `json:"method"`
	OriginalPaymentMethod string                `json:"original_payment_method"`
	ReturnCondition       ItemCondition         `json:"return_condition"`
	Items                 []RefundCompletedItem `json:"items"`
	Summary               []string              `json:"summary"`
}

// NewRefundCompletedEvent creates a RefundCompletedEvent
func NewRefundCompletedEvent(r *Refund) *RefundCompletedEvent {
	items := make([]RefundCompletedItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = RefundCompletedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Reason:      item.Reason,
			Condition:   item.Condition,
		}
	}
	return &RefundCompletedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeRefundCompleted, AggregateTypeRefund, r.ID, r.TenantID),
		RefundID:              r.ID,
		RefundNumber:          r.RefundNumber,
		SaleID:                r.SaleID,
		SaleNumber:            r.SaleNumber,
		BranchID:              r.BranchID,
		CustomerID:            r.CustomerID,
		RefundAmount:          r.RefundAmount,
		Method:                r.Method,
		OriginalPaymentMethod: r.OriginalPaymentMethod,
		ReturnCondition:       r.ReturnCondition,
		Items:                 items,
		Summary:               r.Compensation.Summaries(),
	}
}
