package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRefundAuditRepository is the append-only store for refund audit entries.
// It never updates or deletes rows.
type GormRefundAuditRepository struct {
	db *gorm.DB
}

// NewGormRefundAuditRepository creates a new GormRefundAuditRepository
func NewGormRefundAuditRepository(db *gorm.DB) *GormRefundAuditRepository {
	return &GormRefundAuditRepository{db: db}
}

// Append inserts entries
func (r *GormRefundAuditRepository) Append(ctx context.Context, entries ...*refund.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.RefundAuditEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.RefundAuditEntryModelFromDomain(e)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("append refund audit entries: %w", err)
	}
	return nil
}

// FindByRefund returns the audit trail of a refund, newest first
func (r *GormRefundAuditRepository) FindByRefund(ctx context.Context, tenantID, refundID uuid.UUID) ([]refund.AuditEntry, error) {
	var rows []models.RefundAuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND refund_id = ?", tenantID, refundID).
		Order("occurred_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find refund audit entries: %w", err)
	}
	entries := make([]refund.AuditEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Ensure GormRefundAuditRepository implements AuditRepository
var _ refund.AuditRepository = (*GormRefundAuditRepository)(nil)
