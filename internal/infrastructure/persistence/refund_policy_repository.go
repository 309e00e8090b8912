package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRefundPolicyRepository implements PolicyRepository using GORM
type GormRefundPolicyRepository struct {
	db *gorm.DB
}

// NewGormRefundPolicyRepository creates a new GormRefundPolicyRepository
func NewGormRefundPolicyRepository(db *gorm.DB) *GormRefundPolicyRepository {
	return &GormRefundPolicyRepository{db: db}
}

// FindByLocation returns the policy of a location
func (r *GormRefundPolicyRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (*refund.Policy, error) {
	var model models.RefundPolicyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Refund policy not found for location")
		}
		return nil, fmt.Errorf("find refund policy: %w", err)
	}
	return model.ToDomain(), nil
}

// Upsert inserts the policy or overwrites the existing row of the same location.
func (r *GormRefundPolicyRepository) Upsert(ctx context.Context, p *refund.Policy) (bool, error) {
	var existing models.RefundPolicyModel
	err := r.db.WithContext(ctx).
		Select("id").
		Where("tenant_id = ? AND location_id = ?", p.TenantID, p.LocationID).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("find refund policy: %w", err)
	}

	model := models.RefundPolicyModelFromDomain(p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, fmt.Errorf("create refund policy: %w", err)
		}
		return true, nil
	}

	p.ID = existing.ID
	model.ID = existing.ID
	model.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).
		Model(&models.RefundPolicyModel{}).
		Where("id = ?", existing.ID).
		Select("AllowRefunds", "RefundWindowDays", "AutoApproveBelow", "RequireManagerApprovalAbove",
			"MaxRefundPercentage", "AllowedReasons", "AutoRestockRefundedItems", "UpdatedBy", "UpdatedAt").
		Updates(model).Error; err != nil {
		return false, fmt.Errorf("update refund policy: %w", err)
	}
	return false, nil
}

// Ensure GormRefundPolicyRepository implements PolicyRepository
var _ refund.PolicyRepository = (*GormRefundPolicyRepository)(nil)
