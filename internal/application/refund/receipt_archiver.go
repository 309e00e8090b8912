package refund

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReceiptStore persists archived refund receipts
type ReceiptStore interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// RefundReceipt is the document archived for each completed refund
type RefundReceipt struct {
	RefundNumber   string              `json:"refund_number"`
	SaleNumber     string              `json:"sale_number"`
	BranchID       string              `json:"branch_id"`
	CustomerID     string              `json:"customer_id,omitempty"`
	RefundAmount   decimal.Decimal     `json:"refund_amount"`
	MethodLabel    string              `json:"method_label"`
	OriginalMethod string              `json:"original_payment_method,omitempty"`
	ConditionLabel string              `json:"condition_label,omitempty"`
	Items          []RefundReceiptItem `json:"items"`
	Adjustments    []string            `json:"adjustments"`
	CompletedAt    time.Time           `json:"completed_at"`
}

// RefundReceiptItem is one receipt line
type RefundReceiptItem struct {
	Description string          `json:"description"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Reason      string          `json:"reason,omitempty"`
}

// ReceiptArchiver writes a JSON receipt to object storage when a refund completes
type ReceiptArchiver struct {
	store  ReceiptStore
	logger *zap.Logger
}

// NewReceiptArchiver creates a ReceiptArchiver
func NewReceiptArchiver(store ReceiptStore, logger *zap.Logger) *ReceiptArchiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptArchiver{store: store, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (a *ReceiptArchiver) EventTypes() []string {
	return []string{refund.EventTypeRefundCompleted}
}

// Handle archives the receipt of a RefundCompletedEvent. A receipt that is
// already stored is left untouched.
func (a *ReceiptArchiver) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*refund.RefundCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			refund.EventTypeRefundCompleted, event.EventType())
	}

	key := ReceiptKey(completed)
	exists, err := a.store.ObjectExists(ctx, key)
	if err != nil {
		return fmt.Errorf("check receipt %s: %w", key, err)
	}
	if exists {
		a.logger.Debug("refund receipt already archived", zap.String("key", key))
		return nil
	}

	body, err := json.MarshalIndent(a.BuildReceipt(completed), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if err := a.store.Upload(ctx, key, body, "application/json"); err != nil {
		return fmt.Errorf("upload receipt %s: %w", key, err)
	}

	a.logger.Info("refund receipt archived",
		zap.String("refund_number", completed.RefundNumber),
		zap.String("key", key),
	)
	return nil
}

// ReceiptKey is the storage key of a refund's receipt
func ReceiptKey(e *refund.RefundCompletedEvent) string {
	return fmt.Sprintf("refund-receipts/%s/%s/%s.json",
		e.TenantID(), e.OccurredAt().UTC().Format("2006/01"), e.RefundNumber)
}

// BuildReceipt renders the receipt document for a completed refund
func (a *ReceiptArchiver) BuildReceipt(e *refund.RefundCompletedEvent) RefundReceipt {
	receipt := RefundReceipt{
		RefundNumber:   e.RefundNumber,
		SaleNumber:     e.SaleNumber,
		BranchID:       e.BranchID.String(),
		RefundAmount:   e.RefundAmount,
		MethodLabel:    a.label(string(e.Method)),
		OriginalMethod: a.label(e.OriginalPaymentMethod),
		ConditionLabel: a.label(string(e.ReturnCondition)),
		Items:          make([]RefundReceiptItem, len(e.Items)),
		Adjustments:    e.Summary,
		CompletedAt:    e.OccurredAt(),
	}
	if e.CustomerID != nil {
		receipt.CustomerID = e.CustomerID.String()
	}
	if receipt.Adjustments == nil {
		receipt.Adjustments = []string{}
	}
	for i, item := range e.Items {
		receipt.Items[i] = RefundReceiptItem{
			Description: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Reason:      item.Reason,
		}
	}
	return receipt
}

// label turns a snake_case code into a display label. Casers are stateful,
// so each call gets its own.
func (a *ReceiptArchiver) label(code string) string {
	if code == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(code, "_", " "))
}

var _ shared.EventHandler = (*ReceiptArchiver)(nil)
