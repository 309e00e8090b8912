package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockRepository changes stock counters with in-place increments so
// concurrent sales and refunds never overwrite each other.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// IncrementProductStock adds delta to products.current_stock
func (r *GormStockRepository) IncrementProductStock(ctx context.Context, tenantID, productID uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductStockModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(map[string]any{
			"current_stock": gorm.Expr("current_stock + ?", delta),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("increment product stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Product %s not found", productID))
	}
	return nil
}

// IncrementLocationStock adds delta to the location row. Products without a row
// at the location do not track per-location stock and are left alone.
func (r *GormStockRepository) IncrementLocationStock(ctx context.Context, tenantID, productID, locationID uuid.UUID, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.LocationStockModel{}).
		Where("tenant_id = ? AND product_id = ? AND location_id = ?", tenantID, productID, locationID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("increment location stock: %w", err)
	}
	return nil
}

// CurrentStock returns products.current_stock
func (r *GormStockRepository) CurrentStock(ctx context.Context, tenantID, productID uuid.UUID) (int, error) {
	var product models.ProductStockModel
	if err := r.db.WithContext(ctx).
		Select("current_stock").
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return 0, fmt.Errorf("read product stock: %w", err)
	}
	return product.CurrentStock, nil
}

// GormStockMovementRepository is the append-only stock movement log
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create inserts a movement
func (r *GormStockMovementRepository) Create(ctx context.Context, m *inventory.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(models.StockMovementModelFromDomain(m)).Error; err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// FindByReference returns movements caused by a business document
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]inventory.StockMovement, error) {
	var rows []models.StockMovementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference = ?", tenantID, reference).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find stock movements: %w", err)
	}
	movements := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		movements[i] = rows[i].ToDomain()
	}
	return movements, nil
}

var (
	_ inventory.StockRepository         = (*GormStockRepository)(nil)
	_ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
)
