package refund

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeRefund is the aggregate type name used in events
const AggregateTypeRefund = "Refund"

// Method is how money goes back to the customer.
type Method string

const (
	MethodCash           Method = "cash"
	MethodCard           Method = "card"
	MethodStoreCredit    Method = "store_credit"
	MethodOriginalMethod Method = "original_payment_method"
	MethodBankTransfer   Method = "bank_transfer"
)

// IsValid checks if the refund method is supported
func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodStoreCredit, MethodOriginalMethod, MethodBankTransfer:
		return true
	}
	return false
}

// ItemCondition is the condition of a returned garment.
type ItemCondition string

const (
	ConditionUnworn    ItemCondition = "unworn"
	ConditionLikeNew   ItemCondition = "like_new"
	ConditionWorn      ItemCondition = "worn"
	ConditionDamaged   ItemCondition = "damaged"
	ConditionDefective ItemCondition = "defective"
)

// IsValid checks if the condition is known. Empty is accepted as "not inspected".
func (c ItemCondition) IsValid() bool {
	switch c {
	case "", ConditionUnworn, ConditionLikeNew, ConditionWorn, ConditionDamaged, ConditionDefective:
		return true
	}
	return false
}

// amountTolerance is the largest rounding gap allowed between items and refund amount.
var amountTolerance = decimal.NewFromFloat(0.01)

// Item is one refunded line.
type Item struct {
	ID          uuid.UUID
	RefundID    uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Reason      string
	Condition   ItemCondition
	Notes       string
}

// NewItem builds a refund line and computes its total.
func NewItem(productID uuid.UUID, productName, sku string, quantity int, unitPrice decimal.Decimal, reason string, condition ItemCondition, notes string) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Refund quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown item condition: %s", condition))
	}
	return &Item{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Reason:      reason,
		Condition:   condition,
		Notes:       notes,
	}, nil
}

// SaleRef identifies the sale being refunded, copied onto the record at creation.
type SaleRef struct {
	SaleID                uuid.UUID
	SaleNumber            string
	BranchID              uuid.UUID
	CustomerID            *uuid.UUID
	OriginalPaymentMethod string
}

// Refund is the refund record aggregate root.
type Refund struct {
	shared.TenantAggregateRoot
	RefundNumber          string
	SaleID                uuid.UUID
	SaleNumber            string
	BranchID              uuid.UUID
	CustomerID            *uuid.UUID
	Items                 []Item
	RefundAmount          decimal.Decimal
	Method                Method
	OriginalPaymentMethod string
	Reason                string
	State                 State
	AutoApproved          bool
	RestockRequired       bool
	IsReturned            bool
	ReturnCondition       ItemCondition
	InspectionNotes       string
	ApprovalNotes         string
	InternalNotes         string
	PaymentDetails        string
	Compensation          CompensationProgress

	RequestDate   time.Time
	ApprovalDate  *time.Time
	ProcessedDate *time.Time
	CompletedDate *time.Time
	ReturnDate    *time.Time
	RejectedDate  *time.Time

	RequestedBy uuid.UUID
	ApprovedBy  *uuid.UUID
	ProcessedBy *uuid.UUID
	CompletedBy *uuid.UUID
	RejectedBy  *uuid.UUID
}

// NewRefund creates a refund in pending_approval. Items must reconcile with amount.
func NewRefund(
	tenantID uuid.UUID,
	refundNumber string,
	sale SaleRef,
	items []Item,
	amount decimal.Decimal,
	method Method,
	reason string,
	restockRequired bool,
	requestedBy uuid.UUID,
) (*Refund, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Tenant ID cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if strings.TrimSpace(refundNumber) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Refund number cannot be empty")
	}
	if sale.SaleID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Sale ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Refund must contain at least one item")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Refund amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unsupported refund method: %s", method))
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(item.TotalPrice)
	}
	if itemsTotal.Sub(amount).Abs().GreaterThan(amountTolerance) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Refund amount %s does not match item total %s", amount.StringFixed(2), itemsTotal.StringFixed(2)))
	}

	r := &Refund{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		RefundNumber:          refundNumber,
		SaleID:                sale.SaleID,
		SaleNumber:            sale.SaleNumber,
		BranchID:              sale.BranchID,
		CustomerID:            sale.CustomerID,
		RefundAmount:          amount,
		Method:                method,
		OriginalPaymentMethod: sale.OriginalPaymentMethod,
		Reason:                reason,
		State:                 StatePendingApproval,
		RestockRequired:       restockRequired,
		RequestedBy:           requestedBy,
	}
	r.RequestDate = r.CreatedAt
	r.SetCreatedBy(requestedBy)

	r.Items = make([]Item, len(items))
	for i, item := range items {
		item.RefundID = r.ID
		r.Items[i] = item
	}

	r.Record(NewRefundCreatedEvent(r))
	return r, nil
}

func (r *Refund) transitionError(verb string) error {
	return shared.NewDomainError(shared.CodeInvalidStateTransition,
		fmt.Sprintf("Cannot %s refund with status: %s", verb, r.State))
}

// Approve moves a pending refund to approved.
func (r *Refund) Approve(approverID uuid.UUID, notes string) error {
	return r.approve(approverID, notes, false)
}

// AutoApprove approves at creation time because the policy threshold allows it.
func (r *Refund) AutoApprove(approverID uuid.UUID) error {
	return r.approve(approverID, "Auto-approved by refund policy", true)
}

func (r *Refund) approve(approverID uuid.UUID, notes string, auto bool) error {
	if approverID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !r.State.CanTransitionTo(StateApproved) {
		return r.transitionError("approve")
	}

	now := time.Now()
	r.State = StateApproved
	r.ApprovedBy = &approverID
	r.ApprovalDate = &now
	r.ApprovalNotes = notes
	r.AutoApproved = auto
	r.UpdatedAt = now

	r.Record(NewRefundApprovedEvent(r))
	return nil
}

// Reject ends the refund. The reason is kept as internal notes.
func (r *Refund) Reject(rejecterID uuid.UUID, reason string) error {
	if rejecterID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !r.State.CanTransitionTo(StateRejected) {
		return r.transitionError("reject")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Rejection reason is required")
	}

	now := time.Now()
	r.State = StateRejected
	r.RejectedBy = &rejecterID
	r.RejectedDate = &now
	r.InternalNotes = reason
	r.UpdatedAt = now

	r.Record(NewRefundRejectedEvent(r))
	return nil
}

// Process records that money has been sent back. Requires approval first.
func (r *Refund) Process(processorID uuid.UUID, paymentDetails string) error {
	if processorID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !r.State.CanTransitionTo(StateProcessed) {
		return r.transitionError("process")
	}

	now := time.Now()
	r.State = StateProcessed
	r.ProcessedBy = &processorID
	r.ProcessedDate = &now
	if paymentDetails != "" {
		r.PaymentDetails = paymentDetails
	}
	r.UpdatedAt = now

	r.Record(NewRefundProcessedEvent(r))
	return nil
}

// CanComplete reports whether compensation may (re)start.
func (r *Refund) CanComplete() bool {
	return r.State == StateProcessed || r.State == StatePartiallyCompleted
}

// BeginCompletion records the physical return. Calling it a second time on a
// partially completed refund keeps the first return date.
func (r *Refund) BeginCompletion(completerID uuid.UUID, condition ItemCondition, inspectionNotes string) error {
	if completerID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !r.CanComplete() {
		return r.transitionError("complete")
	}
	if !condition.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown return condition: %s", condition))
	}

	now := time.Now()
	r.IsReturned = true
	if r.ReturnDate == nil {
		r.ReturnDate = &now
	}
	if condition != "" {
		r.ReturnCondition = condition
	}
	if inspectionNotes != "" {
		r.InspectionNotes = inspectionNotes
	}
	r.CompletedBy = &completerID
	r.UpdatedAt = now
	return nil
}

// FinishCompletion moves the refund to completed or partially_completed from the
// compensation cursor.
func (r *Refund) FinishCompletion() error {
	target := StatePartiallyCompleted
	if r.Compensation.AllDone() {
		target = StateCompleted
	}
	if !r.State.CanTransitionTo(target) {
		return r.transitionError("complete")
	}

	now := time.Now()
	r.State = target
	r.UpdatedAt = now
	if target == StateCompleted {
		r.CompletedDate = &now
		r.Record(NewRefundCompletedEvent(r))
	}
	return nil
}

// TotalQuantity sums quantities across items.
func (r *Refund) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// IsOpen reports whether the refund still counts against the sale total.
func (r *Refund) IsOpen() bool {
	return r.State != StateRejected
}
