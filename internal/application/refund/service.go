package refund

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	serviceName = "refund"

	completionKeyPrefix = "refund-complete:"
	// defaultCompletionGuardTTL bounds how long a crashed completion blocks retries.
	defaultCompletionGuardTTL = 5 * time.Minute
)

// Metrics records refund workflow measurements
type Metrics interface {
	RecordRefundCreated(ctx context.Context, tenantID uuid.UUID, autoApproved bool, amount decimal.Decimal)
	RecordRefundTransition(ctx context.Context, tenantID uuid.UUID, state string)
	RecordCompensationStep(ctx context.Context, tenantID uuid.UUID, step string, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordRefundCreated(context.Context, uuid.UUID, bool, decimal.Decimal) {}
func (noopMetrics) RecordRefundTransition(context.Context, uuid.UUID, string)            {}
func (noopMetrics) RecordCompensationStep(context.Context, uuid.UUID, string, error)     {}

// RefundService runs the refund lifecycle: creation under a location policy,
// approval, rejection, processing and completion with compensation.
type RefundService struct {
	repos          Repositories
	txScope        TransactionScope
	executor       *CompensationExecutor
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	metrics        Metrics
	logger         *zap.Logger
	now            func() time.Time
	guardTTL       time.Duration
}

// NewRefundService creates a new RefundService. Queries read through repos;
// every mutation runs inside txScope.
func NewRefundService(repos Repositories, txScope TransactionScope, logger *zap.Logger) *RefundService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RefundService{
		repos:    repos,
		txScope:  txScope,
		metrics:  noopMetrics{},
		logger:   logger,
		now:      time.Now,
		guardTTL: defaultCompletionGuardTTL,
	}
	s.executor = NewCompensationExecutor(txScope, logger)
	return s
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *RefundService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore sets the store that guards concurrent completions
func (s *RefundService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetMetrics sets the metrics recorder
func (s *RefundService) SetMetrics(m Metrics) {
	if m == nil {
		m = noopMetrics{}
	}
	s.metrics = m
	s.executor.metrics = m
}

// SetCompletionGuardTTL sets how long a completion claim blocks a concurrent completion
func (s *RefundService) SetCompletionGuardTTL(ttl time.Duration) {
	if ttl > 0 {
		s.guardTTL = ttl
	}
}

// SetLocale selects the language of compensation summaries, e.g. "de" or "en-GB"
func (s *RefundService) SetLocale(tag string) error {
	lang, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid refund locale %q: %w", tag, err)
	}
	s.executor.lang = lang
	return nil
}

// SetClock overrides the clock used for refund window evaluation
func (s *RefundService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateRefund validates a refund request against the sale and the location
// policy and records it. Amounts under the auto-approve threshold are approved
// in the same transaction.
func (s *RefundService) CreateRefund(ctx context.Context, tenantID, actorID uuid.UUID, req CreateRefundRequest) (*CreateRefundResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "create")
	defer span.End()

	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	var created *refund.Refund
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Concurrent creates for one sale queue here, so the open-amount check
		// below sees refunds committed by the other transaction.
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, tenantID, req.SaleID)
		if err != nil {
			return err
		}
		if sale.IsCancelled() {
			return shared.NewDomainError(shared.CodePolicyViolation,
				fmt.Sprintf("Sale %s has already been fully refunded", sale.SaleNumber))
		}

		policy, err := repos.PolicyRepo().FindByLocation(ctx, tenantID, sale.BranchID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}

		decision := refund.Evaluate(policy, refund.SaleSnapshot{
			ID:          sale.ID,
			SaleNumber:  sale.SaleNumber,
			BranchID:    sale.BranchID,
			TotalAmount: sale.TotalAmount,
			SoldAt:      sale.SoldAt,
		}, req.RefundAmount, s.now())
		if !decision.Allowed {
			return shared.NewDomainError(shared.CodePolicyViolation, decision.Reason)
		}
		if !policy.AllowsReason(req.Reason) {
			return shared.NewDomainError(shared.CodePolicyViolation,
				fmt.Sprintf("Refund reason is not allowed at this location: %s", req.Reason))
		}

		open, err := repos.RefundRepo().SumOpenAmountForSale(ctx, tenantID, sale.ID)
		if err != nil {
			return err
		}
		if open.Add(req.RefundAmount).GreaterThan(sale.TotalAmount) {
			return shared.NewDomainError(shared.CodePolicyViolation,
				fmt.Sprintf("Refund amount %s exceeds the refundable balance %s of sale %s",
					req.RefundAmount.StringFixed(2), sale.TotalAmount.Sub(open).StringFixed(2), sale.SaleNumber))
		}

		items, err := buildItems(sale, req.Items)
		if err != nil {
			return err
		}

		restock := true
		if policy != nil {
			restock = policy.AutoRestockRefundedItems
		}
		if req.RestockRequired != nil {
			restock = *req.RestockRequired
		}

		number, err := repos.RefundRepo().GenerateRefundNumber(ctx)
		if err != nil {
			return err
		}

		r, err := refund.NewRefund(tenantID, number, refund.SaleRef{
			SaleID:                sale.ID,
			SaleNumber:            sale.SaleNumber,
			BranchID:              sale.BranchID,
			CustomerID:            sale.CustomerID,
			OriginalPaymentMethod: sale.PaymentMethod,
		}, items, req.RefundAmount, refund.Method(req.RefundMethod), req.Reason, restock, actorID)
		if err != nil {
			return err
		}

		entries := make([]*refund.AuditEntry, 0, 2)
		createdEntry, err := refund.NewAuditEntry(r, refund.ActionCreated, "", actorID, decision.Reason)
		if err != nil {
			return err
		}
		entries = append(entries, createdEntry)

		if decision.AutoApprove {
			if err := r.AutoApprove(actorID); err != nil {
				return err
			}
			approvedEntry, err := refund.NewAuditEntry(r, refund.ActionApproved, refund.StatePendingApproval, actorID, r.ApprovalNotes)
			if err != nil {
				return err
			}
			entries = append(entries, approvedEntry)
		}

		if err := repos.RefundRepo().Create(ctx, r); err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entries...); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("refund created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("refund_number", created.RefundNumber),
		zap.String("sale_id", created.SaleID.String()),
		zap.String("amount", created.RefundAmount.StringFixed(2)),
		zap.Bool("auto_approved", created.AutoApproved),
	)
	s.metrics.RecordRefundCreated(ctx, tenantID, created.AutoApproved, created.RefundAmount)
	s.publish(ctx, created)

	return &CreateRefundResult{
		RefundID:       created.ID,
		RefundNumber:   created.RefundNumber,
		State:          string(created.State),
		ApprovalStatus: created.State.ApprovalStatus(),
		AutoApproved:   created.AutoApproved,
		RefundAmount:   created.RefundAmount,
	}, nil
}

// buildItems turns request lines into refund items. When the sale carries its
// lines, every product must belong to it and quantities may not exceed what was sold.
func buildItems(sale *trade.Sale, inputs []CreateRefundItemInput) ([]refund.Item, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Refund must contain at least one item")
	}

	sold := make(map[uuid.UUID]int, len(sale.Items))
	lines := make(map[uuid.UUID]trade.SaleItem, len(sale.Items))
	for _, line := range sale.Items {
		sold[line.ProductID] += line.Quantity
		lines[line.ProductID] = line
	}
	requested := make(map[uuid.UUID]int, len(inputs))

	items := make([]refund.Item, 0, len(inputs))
	for _, in := range inputs {
		name, sku := in.ProductName, in.SKU
		if len(sale.Items) > 0 {
			line, ok := lines[in.ProductID]
			if !ok {
				return nil, shared.NewDomainError(shared.CodeInvalidInput,
					fmt.Sprintf("Product %s is not part of sale %s", in.ProductID, sale.SaleNumber))
			}
			requested[in.ProductID] += in.Quantity
			if requested[in.ProductID] > sold[in.ProductID] {
				return nil, shared.NewDomainError(shared.CodeInvalidInput,
					fmt.Sprintf("Refund quantity for %s exceeds the %d sold", line.ProductName, sold[in.ProductID]))
			}
			if name == "" {
				name = line.ProductName
			}
			if sku == "" {
				sku = line.SKU
			}
		}

		item, err := refund.NewItem(in.ProductID, name, sku, in.Quantity, in.UnitPrice, in.Reason, refund.ItemCondition(in.Condition), in.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// ApproveRefund approves a refund awaiting approval
func (s *RefundService) ApproveRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req ApproveRefundRequest) (*RefundResponse, error) {
	return s.transition(ctx, tenantID, refundID, actorID, "approve", refund.ActionApproved, req.Notes,
		func(r *refund.Refund) error { return r.Approve(actorID, req.Notes) })
}

// RejectRefund rejects a refund that has not reached a terminal state. The
// reason is kept as the refund's internal notes.
func (s *RefundService) RejectRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req RejectRefundRequest) (*RefundResponse, error) {
	return s.transition(ctx, tenantID, refundID, actorID, "reject", refund.ActionRejected, req.Reason,
		func(r *refund.Refund) error { return r.Reject(actorID, req.Reason) })
}

// ProcessRefund marks an approved refund as paid out
func (s *RefundService) ProcessRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req ProcessRefundRequest) (*RefundResponse, error) {
	return s.transition(ctx, tenantID, refundID, actorID, "process", refund.ActionProcessed, "",
		func(r *refund.Refund) error { return r.Process(actorID, req.PaymentDetails) })
}

func (s *RefundService) transition(
	ctx context.Context,
	tenantID, refundID, actorID uuid.UUID,
	method string,
	action refund.AuditAction,
	note string,
	apply func(r *refund.Refund) error,
) (*RefundResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, method)
	defer span.End()
	telemetry.SetAttributes(span, "refund_id", refundID.String())

	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	var updated *refund.Refund
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.RefundRepo().FindByIDForTenant(ctx, tenantID, refundID)
		if err != nil {
			return err
		}
		previous := r.State
		if err := apply(r); err != nil {
			return err
		}
		if err := repos.RefundRepo().SaveWithLock(ctx, r); err != nil {
			return err
		}
		entry, err := refund.NewAuditEntry(r, action, previous, actorID, note)
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("refund "+string(action),
		zap.String("tenant_id", tenantID.String()),
		zap.String("refund_number", updated.RefundNumber),
		zap.String("state", string(updated.State)),
	)
	s.metrics.RecordRefundTransition(ctx, tenantID, string(updated.State))
	s.publish(ctx, updated)

	resp := ToRefundResponse(updated)
	return &resp, nil
}

// CompleteRefund finishes a processed refund and runs its compensation. A
// refund whose compensation stops part-way is left partially completed and can
// be completed again to resume the remaining steps.
func (s *RefundService) CompleteRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req CompleteRefundRequest) (*CompleteRefundResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "complete")
	defer span.End()
	telemetry.SetAttributes(span, "refund_id", refundID.String())

	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	if s.idempotency != nil {
		key := completionKeyPrefix + refundID.String()
		acquired, err := s.idempotency.MarkProcessed(ctx, key, s.guardTTL)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !acquired {
			return nil, shared.NewDomainError(shared.CodeConcurrencyConflict, "Refund completion is already in progress")
		}
		defer func() {
			if err := s.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
				s.logger.Warn("failed to release refund completion guard",
					zap.String("refund_id", refundID.String()), zap.Error(err))
			}
		}()
	}

	report, err := s.executor.Run(ctx, CompensationInput{
		TenantID:        tenantID,
		RefundID:        refundID,
		ActorID:         actorID,
		ReturnCondition: refund.ItemCondition(req.ReturnCondition),
		InspectionNotes: req.InspectionNotes,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	r := report.Refund
	s.metrics.RecordRefundTransition(ctx, tenantID, string(r.State))
	s.publish(ctx, r)

	return &CompleteRefundResult{
		Refund:    ToRefundResponse(r),
		Completed: r.State == refund.StateCompleted,
		Summary:   report.Summary,
		Steps:     report.Steps,
	}, nil
}

// UpdatePolicy creates or updates the refund policy of a location
func (s *RefundService) UpdatePolicy(ctx context.Context, tenantID, locationID, actorID uuid.UUID, req UpdatePolicyRequest) (*UpdatePolicyResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "update_policy")
	defer span.End()

	if actorID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Location ID cannot be empty")
	}

	var (
		policy *refund.Policy
		isNew  bool
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.PolicyRepo().FindByLocation(ctx, tenantID, locationID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			existing = refund.NewPolicy(tenantID, locationID)
		}
		if err := existing.Apply(refund.PolicyUpdate{
			AllowRefunds:                req.AllowRefunds,
			RefundWindowDays:            req.RefundWindowDays,
			AutoApproveBelow:            req.AutoApproveBelow,
			RequireManagerApprovalAbove: req.RequireManagerApprovalAbove,
			MaxRefundPercentage:         req.MaxRefundPercentage,
			AllowedReasons:              req.AllowedReasons,
			AutoRestockRefundedItems:    req.AutoRestockRefundedItems,
		}, actorID); err != nil {
			return err
		}
		created, err := repos.PolicyRepo().Upsert(ctx, existing)
		if err != nil {
			return err
		}
		policy, isNew = existing, created
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("refund policy updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("location_id", locationID.String()),
		zap.Bool("is_new", isNew),
	)
	return &UpdatePolicyResult{PolicyID: policy.ID, IsNew: isNew, Policy: ToPolicyResponse(policy)}, nil
}

// GetPolicy returns the refund policy of a location
func (s *RefundService) GetPolicy(ctx context.Context, tenantID, locationID uuid.UUID) (*PolicyResponse, error) {
	p, err := s.repos.Policies.FindByLocation(ctx, tenantID, locationID)
	if err != nil {
		return nil, err
	}
	resp := ToPolicyResponse(p)
	return &resp, nil
}

// ListRefunds lists refunds with filtering and pagination
func (s *RefundService) ListRefunds(ctx context.Context, tenantID uuid.UUID, filter RefundListFilter) (*shared.Paginated[RefundResponse], error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	domainFilter.Search = filter.Search
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}
	if filter.BranchID != nil {
		domainFilter.Filters["branch_id"] = *filter.BranchID
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	refunds, err := s.repos.Refunds.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Refunds.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToRefundResponses(refunds), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// GetRefund retrieves a refund by ID
func (s *RefundService) GetRefund(ctx context.Context, tenantID, refundID uuid.UUID) (*RefundResponse, error) {
	r, err := s.repos.Refunds.FindByIDForTenant(ctx, tenantID, refundID)
	if err != nil {
		return nil, err
	}
	resp := ToRefundResponse(r)
	return &resp, nil
}

// GetRefundsBySale lists every refund recorded against a sale
func (s *RefundService) GetRefundsBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]RefundResponse, error) {
	refunds, err := s.repos.Refunds.FindBySale(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	return ToRefundResponses(refunds), nil
}

// GetRefundsByCustomer lists a customer's refunds, newest first
func (s *RefundService) GetRefundsByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, page, pageSize int) (*shared.Paginated[RefundResponse], error) {
	filter := toDomainFilter(page, pageSize, "", "")
	refunds, err := s.repos.Refunds.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Refunds.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToRefundResponses(refunds), total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetPendingApproval lists refunds waiting for a manager, oldest first
func (s *RefundService) GetPendingApproval(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[RefundResponse], error) {
	filter := toDomainFilter(page, pageSize, "request_date", "asc")
	refunds, err := s.repos.Refunds.FindByState(ctx, tenantID, refund.StatePendingApproval, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Refunds.CountByState(ctx, tenantID, refund.StatePendingApproval)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToRefundResponses(refunds), total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetStatistics aggregates refunds by state
func (s *RefundService) GetStatistics(ctx context.Context, tenantID uuid.UUID, filter StatisticsFilter) (*StatisticsResponse, error) {
	stats, err := s.repos.Refunds.Statistics(ctx, tenantID, refund.StatisticsFilter{
		BranchID: filter.BranchID,
		From:     filter.StartDate,
		To:       filter.EndDate,
	})
	if err != nil {
		return nil, err
	}

	resp := &StatisticsResponse{
		TotalCount:        stats.TotalCount,
		TotalAmount:       stats.TotalAmount,
		RefundedAmount:    stats.RefundedAmount,
		PendingAmount:     stats.PendingAmount,
		AverageAmount:     stats.AverageAmount,
		AutoApprovedCount: stats.AutoApprovedCount,
		ByState:           make([]StateStatisticsResponse, 0, len(stats.ByState)),
	}
	for _, st := range stats.ByState {
		if st.State == refund.StatePendingApproval {
			resp.PendingCount = st.Count
		}
		resp.ByState = append(resp.ByState, StateStatisticsResponse{
			State:  string(st.State),
			Count:  st.Count,
			Amount: st.Amount,
		})
	}
	return resp, nil
}

// GetAuditTrail returns a refund's audit entries, newest first
func (s *RefundService) GetAuditTrail(ctx context.Context, tenantID, refundID uuid.UUID) ([]AuditEntryResponse, error) {
	if _, err := s.repos.Refunds.FindByIDForTenant(ctx, tenantID, refundID); err != nil {
		return nil, err
	}
	entries, err := s.repos.Audit.FindByRefund(ctx, tenantID, refundID)
	if err != nil {
		return nil, err
	}
	out := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToAuditEntryResponse(&entries[i])
	}
	return out, nil
}

// publish sends the aggregate's pending events. Publishing happens after
// commit, so a failure is logged and never undoes the change.
func (s *RefundService) publish(ctx context.Context, r *refund.Refund) {
	events := r.PullEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish refund events",
			zap.String("refund_number", r.RefundNumber),
			zap.Error(err),
		)
	}
}

func toDomainFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir != "" {
		f.OrderDir = orderDir
	}
	return f
}
