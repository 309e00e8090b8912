package refund

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CompensationInput identifies the refund to complete and who completes it
type CompensationInput struct {
	TenantID        uuid.UUID
	RefundID        uuid.UUID
	ActorID         uuid.UUID
	ReturnCondition refund.ItemCondition
	InspectionNotes string
}

// CompensationReport is the outcome of one executor run
type CompensationReport struct {
	Refund  *refund.Refund
	Steps   []CompensationStepResult
	Summary string
}

// stepFunc performs one compensation step inside a transaction. It returns a
// summary line and whether the step had nothing to do.
type stepFunc func(ctx context.Context, repos TransactionalRepositories, r *refund.Refund, actorID uuid.UUID) (string, bool, error)

// CompensationExecutor undoes the effects of a sale for a completed refund:
// sale adjustment, restock, loyalty reversal and discount/tax notes, in that
// order. Each step commits together with the refund's progress cursor, so a
// rerun skips what already happened. A failed step does not stop later ones.
type CompensationExecutor struct {
	txScope TransactionScope
	logger  *zap.Logger
	metrics Metrics
	lang    language.Tag
	steps   map[refund.CompensationStep]stepFunc
}

// NewCompensationExecutor creates a CompensationExecutor
func NewCompensationExecutor(txScope TransactionScope, logger *zap.Logger) *CompensationExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &CompensationExecutor{
		txScope: txScope,
		logger:  logger,
		metrics: noopMetrics{},
		lang:    language.English,
	}
	e.steps = map[refund.CompensationStep]stepFunc{
		refund.StepSaleAdjustment:   e.adjustSale,
		refund.StepInventoryRestock: e.restock,
		refund.StepLoyaltyReversal:  e.reverseLoyalty,
		refund.StepAdjustmentNotes:  e.recordAdjustmentNotes,
	}
	return e
}

// Run completes the refund. Every pending step is attempted; failed steps are
// recorded and leave the refund partially completed, which is reported rather
// than returned as an error. A version conflict on the cursor means another
// completer holds the refund and ends the run with that error.
func (e *CompensationExecutor) Run(ctx context.Context, in CompensationInput) (*CompensationReport, error) {
	var r *refund.Refund
	var previous refund.State
	err := e.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.RefundRepo().FindByIDForTenant(ctx, in.TenantID, in.RefundID)
		if err != nil {
			return err
		}
		previous = found.State
		if err := found.BeginCompletion(in.ActorID, in.ReturnCondition, in.InspectionNotes); err != nil {
			return err
		}
		found.Compensation.BeginAttempt()
		if err := repos.RefundRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		r = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &CompensationReport{Refund: r}
	for _, step := range refund.CompensationSteps() {
		if r.Compensation.IsDone(step) {
			report.Steps = append(report.Steps, CompensationStepResult{Step: string(step), Status: "already_done"})
			continue
		}
		result, err := e.runStep(ctx, in, r, step)
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		report.Steps = append(report.Steps, result)
	}

	err = e.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := r.FinishCompletion(); err != nil {
			return err
		}
		if err := repos.RefundRepo().SaveWithLock(ctx, r); err != nil {
			return err
		}
		action, note := refund.ActionCompleted, e.summary(r)
		if r.State == refund.StatePartiallyCompleted {
			action = refund.ActionPartiallyCompleted
			note = fmt.Sprintf("Compensation steps failed: %s", r.Compensation.FailureMessage())
		}
		entry, err := refund.NewAuditEntry(r, action, previous, in.ActorID, note)
		if err != nil {
			return err
		}
		return repos.AuditRepo().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	report.Summary = e.summary(r)
	fields := []zap.Field{
		zap.String("tenant_id", in.TenantID.String()),
		zap.String("refund_number", r.RefundNumber),
		zap.String("state", string(r.State)),
		zap.Int("attempt", r.Compensation.Attempts),
	}
	if r.State == refund.StateCompleted {
		e.logger.Info("refund completed", fields...)
	} else {
		e.logger.Warn("refund partially completed",
			append(fields, zap.Strings("failed_steps", failedStepNames(r)), zap.String("error", r.Compensation.FailureMessage()))...)
	}
	return report, nil
}

// runStep executes step and persists the progress cursor in the same
// transaction. On failure the in-memory refund is restored to what is stored.
func (e *CompensationExecutor) runStep(ctx context.Context, in CompensationInput, r *refund.Refund, step refund.CompensationStep) (CompensationStepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "compensation."+string(step))
	defer span.End()
	telemetry.SetAttributes(span, "refund_number", r.RefundNumber)

	saved := snapshotProgress(r)
	var (
		summary string
		skipped bool
	)
	err := e.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		summary, skipped, err = e.steps[step](ctx, repos, r, in.ActorID)
		if err != nil {
			return err
		}
		r.Compensation.MarkDone(step, summary, skipped)
		return repos.RefundRepo().SaveWithLock(ctx, r)
	})
	e.metrics.RecordCompensationStep(ctx, in.TenantID, string(step), err)
	if err != nil {
		telemetry.RecordError(span, err)
		saved.restore(r)
		r.Compensation.MarkFailed(step, err)
		e.logger.Error("refund compensation step failed",
			zap.String("refund_number", r.RefundNumber),
			zap.String("step", string(step)),
			zap.Error(err),
		)
		return CompensationStepResult{Step: string(step), Status: "failed", Error: err.Error()}, err
	}

	status := "done"
	if skipped {
		status = "skipped"
	}
	return CompensationStepResult{Step: string(step), Status: status, Summary: summary}, nil
}

func failedStepNames(r *refund.Refund) []string {
	steps := r.Compensation.FailedSteps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = string(step)
	}
	return names
}

type progressSnapshot struct {
	progress refund.CompensationProgress
	version  int
}

func snapshotProgress(r *refund.Refund) progressSnapshot {
	p := r.Compensation
	p.Outcomes = append([]refund.StepOutcome(nil), r.Compensation.Outcomes...)
	p.Failures = append([]refund.StepFailure(nil), r.Compensation.Failures...)
	return progressSnapshot{progress: p, version: r.Version}
}

func (s progressSnapshot) restore(r *refund.Refund) {
	r.Compensation = s.progress
	r.Version = s.version
}

func (e *CompensationExecutor) adjustSale(ctx context.Context, repos TransactionalRepositories, r *refund.Refund, _ uuid.UUID) (string, bool, error) {
	status, err := repos.SaleRepo().ApplyRefund(ctx, r.TenantID, r.SaleID, r.RefundAmount)
	if err != nil {
		return "", false, err
	}
	return e.sprintf("Sale %s reduced by %.2f, now %s",
		r.SaleNumber, r.RefundAmount.InexactFloat64(), status), false, nil
}

func (e *CompensationExecutor) restock(ctx context.Context, repos TransactionalRepositories, r *refund.Refund, actorID uuid.UUID) (string, bool, error) {
	if !r.RestockRequired {
		return "Restock not required", true, nil
	}

	units := 0
	for _, item := range r.Items {
		if err := repos.StockRepo().IncrementProductStock(ctx, r.TenantID, item.ProductID, item.Quantity); err != nil {
			return "", false, err
		}
		if err := repos.StockRepo().IncrementLocationStock(ctx, r.TenantID, item.ProductID, r.BranchID, item.Quantity); err != nil {
			return "", false, err
		}
		branchID := r.BranchID
		movement, err := inventory.NewStockMovement(r.TenantID, item.ProductID, &branchID, inventory.MovementIn,
			item.Quantity, "Refund restock", r.RefundNumber, actorID)
		if err != nil {
			return "", false, err
		}
		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return "", false, err
		}
		units += item.Quantity
	}
	return e.sprintf("Restocked %d units across %d items", units, len(r.Items)), false, nil
}

func (e *CompensationExecutor) reverseLoyalty(ctx context.Context, repos TransactionalRepositories, r *refund.Refund, actorID uuid.UUID) (string, bool, error) {
	if r.CustomerID == nil {
		return "No customer on sale", true, nil
	}

	net, err := repos.LoyaltyRepo().SumPointsForSale(ctx, r.TenantID, r.SaleID,
		partner.PointsTypePurchase, partner.PointsTypeRefund)
	if err != nil {
		return "", false, err
	}
	if net <= 0 {
		return "No loyalty points to reverse", true, nil
	}

	before, after, err := repos.LoyaltyRepo().DeductPoints(ctx, r.TenantID, *r.CustomerID, net)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "Customer no longer exists", true, nil
		}
		return "", false, err
	}
	tx, err := partner.NewRefundPointsTransaction(r.TenantID, *r.CustomerID, r.SaleID, net, before, after, r.RefundNumber, actorID)
	if err != nil {
		return "", false, err
	}
	if err := repos.LoyaltyRepo().CreateTransaction(ctx, tx); err != nil {
		return "", false, err
	}
	return e.sprintf("Reversed %d loyalty points, balance %d to %d", net, before, after), false, nil
}

func (e *CompensationExecutor) recordAdjustmentNotes(ctx context.Context, repos TransactionalRepositories, r *refund.Refund, actorID uuid.UUID) (string, bool, error) {
	sale, err := repos.SaleRepo().FindByIDForTenant(ctx, r.TenantID, r.SaleID)
	if err != nil {
		return "", false, err
	}
	if (!sale.HasDiscount() && !sale.HasTax()) || !sale.TotalAmount.IsPositive() {
		return "No discount or tax to reverse", true, nil
	}

	share := r.RefundAmount.Div(sale.TotalAmount)
	entries := make([]*refund.AuditEntry, 0, 2)
	notes := make([]string, 0, 2)
	if sale.HasDiscount() {
		portion := sale.DiscountAmount.Mul(share).Round(2)
		note := e.sprintf("Discount reversal of %.2f (of %.2f on sale %s)",
			portion.InexactFloat64(), sale.DiscountAmount.InexactFloat64(), sale.SaleNumber)
		entry, err := refund.NewAuditEntry(r, refund.ActionDiscountReversal, r.State, actorID, note)
		if err != nil {
			return "", false, err
		}
		entries = append(entries, entry)
		notes = append(notes, note)
	}
	if sale.HasTax() {
		portion := sale.TaxAmount.Mul(share).Round(2)
		note := e.sprintf("Tax reversal of %.2f (of %.2f on sale %s)",
			portion.InexactFloat64(), sale.TaxAmount.InexactFloat64(), sale.SaleNumber)
		entry, err := refund.NewAuditEntry(r, refund.ActionTaxReversal, r.State, actorID, note)
		if err != nil {
			return "", false, err
		}
		entries = append(entries, entry)
		notes = append(notes, note)
	}
	if err := repos.AuditRepo().Append(ctx, entries...); err != nil {
		return "", false, err
	}

	return strings.Join(notes, "; "), false, nil
}

func (e *CompensationExecutor) summary(r *refund.Refund) string {
	lines := r.Compensation.Summaries()
	if len(lines) == 0 {
		return e.sprintf("Refund %s of %.2f completed", r.RefundNumber, r.RefundAmount.InexactFloat64())
	}
	return strings.Join(lines, "; ")
}

func (e *CompensationExecutor) sprintf(format string, args ...any) string {
	return message.NewPrinter(e.lang).Sprintf(format, args...)
}
