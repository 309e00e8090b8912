package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	return r.findOne(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindByIDForUpdate finds a sale and locks its row with SELECT ... FOR UPDATE
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findOneIn(db, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindBySaleNumber finds a sale by its receipt number within a tenant
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*trade.Sale, error) {
	return r.findOne(ctx, "tenant_id = ? AND sale_number = ?", tenantID, saleNumber)
}

func (r *GormSaleRepository) findOne(ctx context.Context, where string, args ...any) (*trade.Sale, error) {
	return r.findOneIn(r.db.WithContext(ctx), where, args...)
}

func (r *GormSaleRepository) findOneIn(db *gorm.DB, where string, args ...any) (*trade.Sale, error) {
	var model models.SaleModel
	if err := db.Preload("Items").Where(where, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Sale not found")
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return model.ToDomain(), nil
}

// ApplyRefund increments refunded_amount in place and derives the status from the
// pre-update values in the same statement.
func (r *GormSaleRepository) ApplyRefund(ctx context.Context, tenantID, saleID uuid.UUID, amount decimal.Decimal) (trade.SaleStatus, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Updates(map[string]any{
			"refunded_amount": gorm.Expr("refunded_amount + ?", amount),
			"status": gorm.Expr("CASE WHEN refunded_amount + ? >= total_amount THEN ? ELSE ? END",
				amount, string(trade.SaleStatusCancelled), string(trade.SaleStatusPartiallyRefunded)),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return "", fmt.Errorf("apply refund to sale: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return "", shared.NewDomainError(shared.CodeNotFound, "Sale not found")
	}

	var status string
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("status").
		Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Row().Scan(&status); err != nil {
		return "", fmt.Errorf("read sale status: %w", err)
	}
	return trade.SaleStatus(status), nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
