package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRefundRepository implements RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByIDForTenant finds a refund by ID within a tenant
func (r *GormRefundRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*refund.Refund, error) {
	var model models.RefundModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Refund not found")
		}
		return nil, fmt.Errorf("find refund: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByRefundNumber finds a refund by its number within a tenant
func (r *GormRefundRepository) FindByRefundNumber(ctx context.Context, tenantID uuid.UUID, refundNumber string) (*refund.Refund, error) {
	var model models.RefundModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND refund_number = ?", tenantID, refundNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Refund not found")
		}
		return nil, fmt.Errorf("find refund by number: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists refunds for a tenant with filtering and pagination
func (r *GormRefundRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]refund.Refund, error) {
	query := r.db.WithContext(ctx).Model(&models.RefundModel{}).Where("tenant_id = ?", tenantID)
	return r.list(r.applyFilter(query, filter))
}

// CountForTenant counts refunds matching the filter
func (r *GormRefundRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RefundModel{}).Where("tenant_id = ?", tenantID)
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count refunds: %w", err)
	}
	return count, nil
}

// FindBySale returns every refund recorded against a sale, newest first
func (r *GormRefundRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]refund.Refund, error) {
	query := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Order("created_at DESC")
	return r.list(query)
}

// FindByCustomer returns a customer's refunds
func (r *GormRefundRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]refund.Refund, error) {
	query := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	return r.list(r.applyFilter(query, filter))
}

// CountByCustomer counts a customer's refunds
func (r *GormRefundRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count customer refunds: %w", err)
	}
	return count, nil
}

// FindByState returns refunds in the given state
func (r *GormRefundRepository) FindByState(ctx context.Context, tenantID uuid.UUID, state refund.State, filter shared.Filter) ([]refund.Refund, error) {
	query := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND state = ?", tenantID, state)
	return r.list(r.applyFilter(query, filter))
}

// CountByState counts refunds in the given state
func (r *GormRefundRepository) CountByState(ctx context.Context, tenantID uuid.UUID, state refund.State) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND state = ?", tenantID, state).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count refunds by state: %w", err)
	}
	return count, nil
}

// SumOpenAmountForSale totals refund amounts for a sale, rejected refunds excluded
func (r *GormRefundRepository) SumOpenAmountForSale(ctx context.Context, tenantID, saleID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Select("SUM(refund_amount)").
		Where("tenant_id = ? AND sale_id = ? AND state <> ?", tenantID, saleID, refund.StateRejected).
		Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum refunds for sale: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

type stateAggregate struct {
	State  string
	Count  int64
	Amount decimal.NullDecimal
}

// Statistics aggregates refund counts and amounts per state
func (r *GormRefundRepository) Statistics(ctx context.Context, tenantID uuid.UUID, filter refund.StatisticsFilter) (*refund.Statistics, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.RefundModel{}).Where("tenant_id = ?", tenantID)
		if filter.BranchID != nil {
			q = q.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.From != nil {
			q = q.Where("request_date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("request_date <= ?", *filter.To)
		}
		return q
	}

	var rows []stateAggregate
	if err := base().
		Select("state, COUNT(*) AS count, SUM(refund_amount) AS amount").
		Group("state").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate refunds: %w", err)
	}

	stats := &refund.Statistics{ByState: make([]refund.StateStatistics, 0, len(rows))}
	for _, row := range rows {
		amount := decimal.Zero
		if row.Amount.Valid {
			amount = row.Amount.Decimal
		}
		stats.ByState = append(stats.ByState, refund.StateStatistics{
			State:  refund.State(row.State),
			Count:  row.Count,
			Amount: amount,
		})
	}

	if err := base().Where("auto_approved = ?", true).Count(&stats.AutoApprovedCount).Error; err != nil {
		return nil, fmt.Errorf("count auto-approved refunds: %w", err)
	}

	stats.Finalize()
	return stats, nil
}

// Create inserts a new refund and its items
func (r *GormRefundRepository) Create(ctx context.Context, rf *refund.Refund) error {
	model := models.RefundModelFromDomain(rf)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Refund number already exists")
		}
		return fmt.Errorf("create refund: %w", err)
	}
	return nil
}

// SaveWithLock updates the refund header if the stored version still matches,
// then bumps the version on the aggregate.
func (r *GormRefundRepository) SaveWithLock(ctx context.Context, rf *refund.Refund) error {
	progress, err := json.Marshal(rf.Compensation)
	if err != nil {
		return fmt.Errorf("encode compensation progress: %w", err)
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", rf.TenantID, rf.ID, rf.Version).
		Updates(map[string]any{
			"version":               rf.Version + 1,
			"state":                 rf.State,
			"auto_approved":         rf.AutoApproved,
			"is_returned":           rf.IsReturned,
			"return_condition":      rf.ReturnCondition,
			"inspection_notes":      rf.InspectionNotes,
			"approval_notes":        rf.ApprovalNotes,
			"internal_notes":        rf.InternalNotes,
			"payment_details":       rf.PaymentDetails,
			"compensation_progress": string(progress),
			"approval_date":         rf.ApprovalDate,
			"processed_date":        rf.ProcessedDate,
			"completed_date":        rf.CompletedDate,
			"return_date":           rf.ReturnDate,
			"rejected_date":         rf.RejectedDate,
			"approved_by":           rf.ApprovedBy,
			"processed_by":          rf.ProcessedBy,
			"completed_by":          rf.CompletedBy,
			"rejected_by":           rf.RejectedBy,
			"updated_at":            now,
		})
	if result.Error != nil {
		return fmt.Errorf("update refund: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.RefundModel{}).
			Where("tenant_id = ? AND id = ?", rf.TenantID, rf.ID).
			Count(&exists).Error; err != nil {
			return fmt.Errorf("check refund: %w", err)
		}
		if exists == 0 {
			return shared.NewDomainError(shared.CodeNotFound, "Refund not found")
		}
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "The refund has been modified by another request")
	}

	rf.IncrementVersion()
	rf.UpdatedAt = now
	return nil
}

// GenerateRefundNumber returns the next refund number.
// Format: RF-YYYY-NNNNN (e.g., RF-2026-00001), unique across tenants. The
// sequence widens past 99999, so the latest number is the longest one.
func (r *GormRefundRepository) GenerateRefundNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RF-%d-", time.Now().Year())

	var last models.RefundModel
	err := r.db.WithContext(ctx).
		Select("refund_number").
		Where("refund_number LIKE ?", prefix+"%").
		Order("LENGTH(refund_number) DESC, refund_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("read last refund number: %w", err)
	}

	next := int64(1)
	if err == nil {
		var n int64
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(last.RefundNumber, prefix), "%d", &n); scanErr == nil {
			next = n + 1
		}
	}

	for attempt := 0; attempt < 10; attempt++ {
		candidate := fmt.Sprintf("%s%05d", prefix, next)
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.RefundModel{}).
			Where("refund_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("check refund number: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		next++
	}
	return "", shared.NewDomainError(shared.CodeConcurrencyConflict, "Could not allocate a refund number")
}

func (r *GormRefundRepository) list(query *gorm.DB) ([]refund.Refund, error) {
	var rows []models.RefundModel
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	refunds := make([]refund.Refund, len(rows))
	for i := range rows {
		refunds[i] = *rows[i].ToDomain()
	}
	return refunds, nil
}

// applyFilter applies filtering, ordering and pagination
func (r *GormRefundRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, RefundSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRefundRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(refund_number) LIKE ? OR LOWER(sale_number) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "states":
			if states, ok := value.([]string); ok && len(states) > 0 {
				query = query.Where("state IN ?", states)
			}
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "refund_method":
			query = query.Where("refund_method = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("request_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("request_date <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormRefundRepository implements RefundRepository
var _ refund.RefundRepository = (*GormRefundRepository)(nil)
