package refund

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/shopspring/decimal"
)

// CreateRefundRequest is the input of createRefund
type CreateRefundRequest struct {
	SaleID          uuid.UUID               `json:"sale_id" binding:"required"`
	Items           []CreateRefundItemInput `json:"items" binding:"required,min=1,dive"`
	RefundAmount    decimal.Decimal         `json:"refund_amount" binding:"required"`
	RefundMethod    string                  `json:"refund_method" binding:"required,refund_method"`
	Reason          string                  `json:"reason" binding:"max=200"`
	RestockRequired *bool                   `json:"restock_required"`
}

// CreateRefundItemInput is one line of a refund request
type CreateRefundItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"max=200"`
	SKU         string          `json:"sku" binding:"max=64"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Reason      string          `json:"reason" binding:"max=200"`
	Condition   string          `json:"condition" binding:"omitempty,item_condition"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// CreateRefundResult is the output of createRefund
type CreateRefundResult struct {
	RefundID       uuid.UUID       `json:"refund_id"`
	RefundNumber   string          `json:"refund_number"`
	State          string          `json:"state"`
	ApprovalStatus string          `json:"approval_status"`
	AutoApproved   bool            `json:"auto_approved"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
}

// ApproveRefundRequest is the input of approveRefund
type ApproveRefundRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// RejectRefundRequest is the input of rejectRefund
type RejectRefundRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ProcessRefundRequest is the input of processRefund
type ProcessRefundRequest struct {
	PaymentDetails string `json:"payment_details" binding:"max=1000"`
}

// CompleteRefundRequest is the input of completeRefund
type CompleteRefundRequest struct {
	ReturnCondition string `json:"return_condition" binding:"omitempty,item_condition"`
	InspectionNotes string `json:"inspection_notes" binding:"max=1000"`
}

// CompensationStepResult reports one compensating step
type CompensationStepResult struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CompleteRefundResult is the output of completeRefund
type CompleteRefundResult struct {
	Refund    RefundResponse           `json:"refund"`
	Completed bool                     `json:"completed"`
	Summary   string                   `json:"summary"`
	Steps     []CompensationStepResult `json:"steps"`
}

// UpdatePolicyRequest is a partial policy update; absent fields keep their value
type UpdatePolicyRequest struct {
	AllowRefunds                *bool            `json:"allow_refunds"`
	RefundWindowDays            *int             `json:"refund_window_days" binding:"omitempty,min=0,max=3650"`
	AutoApproveBelow            *decimal.Decimal `json:"auto_approve_below"`
	RequireManagerApprovalAbove *decimal.Decimal `json:"require_manager_approval_above"`
	MaxRefundPercentage         *decimal.Decimal `json:"max_refund_percentage"`
	AllowedReasons              []string         `json:"allowed_reasons" binding:"omitempty,dive,max=100"`
	AutoRestockRefundedItems    *bool            `json:"auto_restock_refunded_items"`
}

// UpdatePolicyResult is the output of updatePolicy
type UpdatePolicyResult struct {
	PolicyID uuid.UUID      `json:"policy_id"`
	IsNew    bool           `json:"is_new"`
	Policy   PolicyResponse `json:"policy"`
}

// PolicyResponse represents a refund policy in API responses
type PolicyResponse struct {
	ID                          uuid.UUID       `json:"id"`
	LocationID                  uuid.UUID       `json:"location_id"`
	AllowRefunds                bool            `json:"allow_refunds"`
	RefundWindowDays            int             `json:"refund_window_days"`
	AutoApproveBelow            decimal.Decimal `json:"auto_approve_below"`
	RequireManagerApprovalAbove decimal.Decimal `json:"require_manager_approval_above"`
	MaxRefundPercentage         decimal.Decimal `json:"max_refund_percentage"`
	AllowedReasons              []string        `json:"allowed_reasons"`
	AutoRestockRefundedItems    bool            `json:"auto_restock_refunded_items"`
	UpdatedBy                   *uuid.UUID      `json:"updated_by,omitempty"`
	CreatedAt                   time.Time       `json:"created_at"`
	UpdatedAt                   time.Time       `json:"updated_at"`
}

// ToPolicyResponse converts a domain Policy to its response DTO
func ToPolicyResponse(p *refund.Policy) PolicyResponse {
	return PolicyResponse{
		ID:                          p.ID,
		LocationID:                  p.LocationID,
		AllowRefunds:                p.AllowRefunds,
		RefundWindowDays:            p.RefundWindowDays,
		AutoApproveBelow:            p.AutoApproveBelow,
		RequireManagerApprovalAbove: p.RequireManagerApprovalAbove,
		MaxRefundPercentage:         p.MaxRefundPercentage,
		AllowedReasons:              p.AllowedReasons,
		AutoRestockRefundedItems:    p.AutoRestockRefundedItems,
		UpdatedBy:                   p.UpdatedBy,
		CreatedAt:                   p.CreatedAt,
		UpdatedAt:                   p.UpdatedAt,
	}
}

// RefundListFilter represents filter options for refund lists
type RefundListFilter struct {
	Search     string     `form:"search"`
	State      string     `form:"state" binding:"omitempty,refund_state"`
	BranchID   *uuid.UUID `form:"branch_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RefundItemResponse represents a refund line in API responses
type RefundItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Reason      string          `json:"reason,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// RefundResponse represents a refund in API responses
type RefundResponse struct {
	ID                    uuid.UUID                   `json:"id"`
	RefundNumber          string                      `json:"refund_number"`
	SaleID                uuid.UUID                   `json:"sale_id"`
	SaleNumber            string                      `json:"sale_number"`
	BranchID              uuid.UUID                   `json:"branch_id"`
	CustomerID            *uuid.UUID                  `json:"customer_id,omitempty"`
	Items                 []RefundItemResponse        `json:"items"`
	RefundAmount          decimal.Decimal             `json:"refund_amount"`
	RefundMethod          string                      `json:"refund_method"`
	OriginalPaymentMethod string                      `json:"original_payment_method,omitempty"`
	Reason                string                      `json:"reason,omitempty"`
	State                 string                      `json:"state"`
	ApprovalStatus        string                      `json:"approval_status"`
	Status                string                      `json:"status"`
	AutoApproved          bool                        `json:"auto_approved"`
	RestockRequired       bool                        `json:"restock_required"`
	IsReturned            bool                        `json:"is_returned"`
	ReturnCondition       string                      `json:"return_condition,omitempty"`
	InspectionNotes       string                      `json:"inspection_notes,omitempty"`
	ApprovalNotes         string                      `json:"approval_notes,omitempty"`
	InternalNotes         string                      `json:"internal_notes,omitempty"`
	PaymentDetails        string                      `json:"payment_details,omitempty"`
	Compensation          refund.CompensationProgress `json:"compensation"`
	RequestDate           time.Time                   `json:"request_date"`
	ApprovalDate          *time.Time                  `json:"approval_date,omitempty"`
	ProcessedDate         *time.Time                  `json:"processed_date,omitempty"`
	CompletedDate         *time.Time                  `json:"completed_date,omitempty"`
	ReturnDate            *time.Time                  `json:"return_date,omitempty"`
	RequestedBy           uuid.UUID                   `json:"requested_by"`
	ApprovedBy            *uuid.UUID                  `json:"approved_by,omitempty"`
	ProcessedBy           *uuid.UUID                  `json:"processed_by,omitempty"`
	CompletedBy           *uuid.UUID                  `json:"completed_by,omitempty"`
	RejectedBy            *uuid.UUID                  `json:"rejected_by,omitempty"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
	Version               int                         `json:"version"`
}

// ToRefundResponse converts a domain Refund to its response DTO
func ToRefundResponse(r *refund.Refund) RefundResponse {
	items := make([]RefundItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = RefundItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Reason:      item.Reason,
			Condition:   string(item.Condition),
			Notes:       item.Notes,
		}
	}
	return RefundResponse{
		ID:                    r.ID,
		RefundNumber:          r.RefundNumber,
		SaleID:                r.SaleID,
		SaleNumber:            r.SaleNumber,
		BranchID:              r.BranchID,
		CustomerID:            r.CustomerID,
		Items:                 items,
		RefundAmount:          r.RefundAmount,
		RefundMethod:          string(r.Method),
		OriginalPaymentMethod: r.OriginalPaymentMethod,
		Reason:                r.Reason,
		State:                 string(r.State),
		ApprovalStatus:        r.State.ApprovalStatus(),
		Status:                r.State.ProcessingStatus(),
		AutoApproved:          r.AutoApproved,
		RestockRequired:       r.RestockRequired,
		IsReturned:            r.IsReturned,
		ReturnCondition:       string(r.ReturnCondition),
		InspectionNotes:       r.InspectionNotes,
		ApprovalNotes:         r.ApprovalNotes,
		InternalNotes:         r.InternalNotes,
		PaymentDetails:        r.PaymentDetails,
		Compensation:          r.Compensation,
		RequestDate:           r.RequestDate,
		ApprovalDate:          r.ApprovalDate,
		ProcessedDate:         r.ProcessedDate,
		CompletedDate:         r.CompletedDate,
		ReturnDate:            r.ReturnDate,
		RequestedBy:           r.RequestedBy,
		ApprovedBy:            r.ApprovedBy,
		ProcessedBy:           r.ProcessedBy,
		CompletedBy:           r.CompletedBy,
		RejectedBy:            r.RejectedBy,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		Version:               r.Version,
	}
}

// ToRefundResponses converts a slice of refunds
func ToRefundResponses(refunds []refund.Refund) []RefundResponse {
	out := make([]RefundResponse, len(refunds))
	for i := range refunds {
		out[i] = ToRefundResponse(&refunds[i])
	}
	return out
}

// AuditEntryResponse represents an audit trail entry in API responses
type AuditEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	RefundID       uuid.UUID `json:"refund_id"`
	ActionType     string    `json:"action_type"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	PerformedBy    uuid.UUID `json:"performed_by"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
}

// ToAuditEntryResponse converts a domain AuditEntry
func ToAuditEntryResponse(e *refund.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:             e.ID,
		RefundID:       e.RefundID,
		ActionType:     string(e.Action),
		PreviousStatus: string(e.PreviousStatus),
		NewStatus:      string(e.NewStatus),
		PerformedBy:    e.ActorID,
		Timestamp:      e.Timestamp,
		Notes:          e.Note,
	}
}

// StatisticsFilter narrows getStatistics
type StatisticsFilter struct {
	BranchID  *uuid.UUID `form:"branch_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// StateStatisticsResponse is count and amount for one state
type StateStatisticsResponse struct {
	State  string          `json:"state"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// StatisticsResponse is the output of getStatistics
type StatisticsResponse struct {
	TotalCount        int64                     `json:"total_count"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	RefundedAmount    decimal.Decimal           `json:"refunded_amount"`
	PendingAmount     decimal.Decimal           `json:"pending_amount"`
	AverageAmount     decimal.Decimal           `json:"average_amount"`
	AutoApprovedCount int64                     `json:"auto_approved_count"`
	PendingCount      int64                     `json:"pending_count"`
	ByState           []StateStatisticsResponse `json:"by_state"`
}

// BulkCreateRequest is the input of createAndApproveBulk
type BulkCreateRequest struct {
	SaleNumbers     []string `json:"sale_numbers" binding:"required,min=1,dive,required"`
	RefundMethod    string   `json:"refund_method" binding:"required,refund_method"`
	Reason          string   `json:"reason" binding:"max=200"`
	RestockRequired *bool    `json:"restock_required"`
	AutoApprove     bool     `json:"auto_approve"`
}

// BulkRefundIDsRequest is the input of processBulk
type BulkRefundIDsRequest struct {
	RefundIDs      []uuid.UUID `json:"refund_ids" binding:"required,min=1"`
	PaymentDetails string      `json:"payment_details" binding:"max=1000"`
}

// BulkCompleteRequest is the input of completeBulk
type BulkCompleteRequest struct {
	RefundIDs       []uuid.UUID `json:"refund_ids" binding:"required,min=1"`
	ReturnCondition string      `json:"return_condition" binding:"omitempty,item_condition"`
}

// BatchItemResult is the outcome of one successful batch item
type BatchItemResult struct {
	Identifier   string    `json:"identifier"`
	RefundID     uuid.UUID `json:"refund_id"`
	RefundNumber string    `json:"refund_number"`
	State        string    `json:"state"`
}

// BatchItemError is the failure of one batch item
type BatchItemError struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

// BatchResult aggregates a batch run. Processed + Failed equals the input size.
type BatchResult struct {
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
	Errors    []BatchItemError  `json:"errors"`
}
