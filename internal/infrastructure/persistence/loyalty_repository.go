package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLoyaltyRepository implements LoyaltyRepository using GORM
type GormLoyaltyRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyRepository creates a new GormLoyaltyRepository
func NewGormLoyaltyRepository(db *gorm.DB) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{db: db}
}

// SumPointsForSale sums ledger points referencing a sale, served by the
// (reference_id, transaction_type) index.
func (r *GormLoyaltyRepository) SumPointsForSale(ctx context.Context, tenantID, saleID uuid.UUID, types ...partner.PointsTransactionType) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PointsTransactionModel{}).
		Select("COALESCE(SUM(points), 0)").
		Where("reference_id = ? AND tenant_id = ?", saleID, tenantID)
	if len(types) > 0 {
		query = query.Where("transaction_type IN ?", types)
	}

	var total int64
	if err := query.Row().Scan(&total); err != nil {
		return 0, fmt.Errorf("sum loyalty points: %w", err)
	}
	return total, nil
}

// DeductPoints locks the customer row, lowers the balance clamped at zero and
// returns the balance before and after.
func (r *GormLoyaltyRepository) DeductPoints(ctx context.Context, tenantID, customerID uuid.UUID, points int64) (int64, int64, error) {
	var customer models.CustomerLoyaltyModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "loyalty_points").
		Where("tenant_id = ? AND id = ?", tenantID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, shared.NewDomainError(shared.CodeNotFound, "Customer not found")
		}
		return 0, 0, fmt.Errorf("lock customer: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.CustomerLoyaltyModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, customerID).
		Updates(map[string]any{
			"loyalty_points": gorm.Expr("CASE WHEN loyalty_points > ? THEN loyalty_points - ? ELSE 0 END", points, points),
			"updated_at":     time.Now(),
		}).Error; err != nil {
		return 0, 0, fmt.Errorf("deduct loyalty points: %w", err)
	}

	return customer.LoyaltyPoints, partner.ClampedDeduction(customer.LoyaltyPoints, points), nil
}

// CreateTransaction appends a ledger row
func (r *GormLoyaltyRepository) CreateTransaction(ctx context.Context, tx *partner.PointsTransaction) error {
	if err := r.db.WithContext(ctx).Create(models.PointsTransactionModelFromDomain(tx)).Error; err != nil {
		return fmt.Errorf("create points transaction: %w", err)
	}
	return nil
}

// GetBalance returns the customer's current balance
func (r *GormLoyaltyRepository) GetBalance(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var customer models.CustomerLoyaltyModel
	if err := r.db.WithContext(ctx).
		Select("loyalty_points").
		Where("tenant_id = ? AND id = ?", tenantID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.NewDomainError(shared.CodeNotFound, "Customer not found")
		}
		return 0, fmt.Errorf("read loyalty balance: %w", err)
	}
	return customer.LoyaltyPoints, nil
}

// Ensure GormLoyaltyRepository implements LoyaltyRepository
var _ partner.LoyaltyRepository = (*GormLoyaltyRepository)(nil)
