package refund

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// AuditAction is the kind of audit trail entry.
type AuditAction string

const (
	ActionCreated            AuditAction = "created"
	ActionApproved           AuditAction = "approved"
	ActionRejected           AuditAction = "rejected"
	ActionProcessed          AuditAction = "processed"
	ActionCompleted          AuditAction = "completed"
	ActionPartiallyCompleted AuditAction = "partially_completed"
	ActionDiscountReversal   AuditAction = "discount_reversal"
	ActionTaxReversal        AuditAction = "tax_reversal"
)

// AuditEntry is an immutable audit trail row. It is only ever appended.
type AuditEntry struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	RefundID       uuid.UUID
	Action         AuditAction
	PreviousStatus State
	NewStatus      State
	ActorID        uuid.UUID
	Timestamp      time.Time
	Note           string
}

// NewAuditEntry builds an entry for a refund transition or adjustment note.
func NewAuditEntry(r *Refund, action AuditAction, previous State, actorID uuid.UUID, note string) (*AuditEntry, error) {
	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	return &AuditEntry{
		ID:             uuid.New(),
		TenantID:       r.TenantID,
		RefundID:       r.ID,
		Action:         action,
		PreviousStatus: previous,
		NewStatus:      r.State,
		ActorID:        actorID,
		Timestamp:      time.Now(),
		Note:           note,
	}, nil
}
