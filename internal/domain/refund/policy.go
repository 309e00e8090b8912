package refund

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Default values for a policy created through a partial update.
const (
	DefaultRefundWindowDays    = 30
	DefaultMaxRefundPercentage = 100
)

// Policy is the refund policy of one location. There is at most one per
// location; it is upserted and never deleted.
type Policy struct {
	shared.BaseEntity
	TenantID                    uuid.UUID
	LocationID                  uuid.UUID
	AllowRefunds                bool
	RefundWindowDays            int
	AutoApproveBelow            decimal.Decimal
	RequireManagerApprovalAbove decimal.Decimal
	MaxRefundPercentage         decimal.Decimal
	AllowedReasons              []string
	AutoRestockRefundedItems    bool
	UpdatedBy                   *uuid.UUID
}

// NewPolicy creates a policy with defaults for a location.
func NewPolicy(tenantID, locationID uuid.UUID) *Policy {
	return &Policy{
		BaseEntity:                  shared.NewBaseEntity(),
		TenantID:                    tenantID,
		LocationID:                  locationID,
		AllowRefunds:                true,
		RefundWindowDays:            DefaultRefundWindowDays,
		AutoApproveBelow:            decimal.Zero,
		RequireManagerApprovalAbove: decimal.Zero,
		MaxRefundPercentage:         decimal.NewFromInt(DefaultMaxRefundPercentage),
		AllowedReasons:              []string{},
		AutoRestockRefundedItems:    true,
	}
}

// PolicyUpdate is a partial update; nil fields are left unchanged.
type PolicyUpdate struct {
	AllowRefunds                *bool
	RefundWindowDays            *int
	AutoApproveBelow            *decimal.Decimal
	RequireManagerApprovalAbove *decimal.Decimal
	MaxRefundPercentage         *decimal.Decimal
	AllowedReasons              []string
	AutoRestockRefundedItems    *bool
}

// Apply merges the update into the policy after validating it.
func (p *Policy) Apply(update PolicyUpdate, updatedBy uuid.UUID) error {
	if updatedBy == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if update.RefundWindowDays != nil && *update.RefundWindowDays < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Refund window cannot be negative")
	}
	if update.AutoApproveBelow != nil && update.AutoApproveBelow.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Auto-approve threshold cannot be negative")
	}
	if update.RequireManagerApprovalAbove != nil && update.RequireManagerApprovalAbove.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Manager approval threshold cannot be negative")
	}
	if update.MaxRefundPercentage != nil {
		pct := *update.MaxRefundPercentage
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError(shared.CodeInvalidInput, "Max refund percentage must be between 0 and 100")
		}
	}

	if update.AllowRefunds != nil {
		p.AllowRefunds = *update.AllowRefunds
	}
	if update.RefundWindowDays != nil {
		p.RefundWindowDays = *update.RefundWindowDays
	}
	if update.AutoApproveBelow != nil {
		p.AutoApproveBelow = *update.AutoApproveBelow
	}
	if update.RequireManagerApprovalAbove != nil {
		p.RequireManagerApprovalAbove = *update.RequireManagerApprovalAbove
	}
	if update.MaxRefundPercentage != nil {
		p.MaxRefundPercentage = *update.MaxRefundPercentage
	}
	if update.AllowedReasons != nil {
		reasons := make([]string, 0, len(update.AllowedReasons))
		for _, r := range update.AllowedReasons {
			if r = strings.TrimSpace(r); r != "" {
				reasons = append(reasons, r)
			}
		}
		p.AllowedReasons = reasons
	}
	if update.AutoRestockRefundedItems != nil {
		p.AutoRestockRefundedItems = *update.AutoRestockRefundedItems
	}

	p.UpdatedBy = &updatedBy
	p.UpdatedAt = time.Now()
	return nil
}

// AllowsReason reports whether reason is accepted. An empty list accepts everything.
func (p *Policy) AllowsReason(reason string) bool {
	if p == nil || len(p.AllowedReasons) == 0 {
		return true
	}
	for _, allowed := range p.AllowedReasons {
		if strings.EqualFold(allowed, strings.TrimSpace(reason)) {
			return true
		}
	}
	return false
}
