package refund

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleSnapshot is what policy evaluation needs to know about the sale.
type SaleSnapshot struct {
	ID          uuid.UUID
	SaleNumber  string
	BranchID    uuid.UUID
	TotalAmount decimal.Decimal
	SoldAt      time.Time
}

// Decision is the outcome of policy evaluation.
type Decision struct {
	Allowed                 bool
	AutoApprove             bool
	RequiresManagerApproval bool
	Reason                  string
}

var hundred = decimal.NewFromInt(100)

// ElapsedDays counts whole days between the sale and now.
func ElapsedDays(soldAt, now time.Time) int {
	if now.Before(soldAt) {
		return 0
	}
	return int(now.Sub(soldAt) / (24 * time.Hour))
}

// Evaluate decides whether a refund of amount against sale is allowed and whether
// it can skip manual approval. A nil policy allows the refund but never auto-approves.
func Evaluate(policy *Policy, sale SaleSnapshot, amount decimal.Decimal, now time.Time) Decision {
	if policy == nil {
		return Decision{Allowed: true, Reason: "No refund policy configured for location"}
	}
	if !policy.AllowRefunds {
		return Decision{Reason: "Refunds are not allowed at this location"}
	}

	if elapsed := ElapsedDays(sale.SoldAt, now); elapsed > policy.RefundWindowDays {
		return Decision{Reason: fmt.Sprintf("Refund period expired: sale is %d days old, policy allows %d days",
			elapsed, policy.RefundWindowDays)}
	}

	if policy.MaxRefundPercentage.IsPositive() && sale.TotalAmount.IsPositive() {
		limit := sale.TotalAmount.Mul(policy.MaxRefundPercentage).Div(hundred)
		if amount.GreaterThan(limit) {
			return Decision{Reason: fmt.Sprintf("Refund amount %s exceeds %s%% of sale total (%s)",
				amount.StringFixed(2), policy.MaxRefundPercentage.String(), limit.StringFixed(2))}
		}
	}

	d := Decision{Allowed: true}
	if policy.RequireManagerApprovalAbove.IsPositive() && amount.GreaterThan(policy.RequireManagerApprovalAbove) {
		d.RequiresManagerApproval = true
		d.Reason = fmt.Sprintf("Refunds above %s require manager approval", policy.RequireManagerApprovalAbove.StringFixed(2))
		return d
	}
	if amount.LessThanOrEqual(policy.AutoApproveBelow) {
		d.AutoApprove = true
		d.Reason = fmt.Sprintf("Amount within auto-approve threshold of %s", policy.AutoApproveBelow.StringFixed(2))
	}
	return d
}
