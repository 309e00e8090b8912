package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/domain/shared"
)

// RefundService is the part of the refund application service the handlers use
type RefundService interface {
	CreateRefund(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.CreateRefundRequest) (*apprefund.CreateRefundResult, error)
	ApproveRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.ApproveRefundRequest) (*apprefund.RefundResponse, error)
	RejectRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.RejectRefundRequest) (*apprefund.RefundResponse, error)
	ProcessRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.ProcessRefundRequest) (*apprefund.RefundResponse, error)
	CompleteRefund(ctx context.Context, tenantID, refundID, actorID uuid.UUID, req apprefund.CompleteRefundRequest) (*apprefund.CompleteRefundResult, error)
	ListRefunds(ctx context.Context, tenantID uuid.UUID, filter apprefund.RefundListFilter) (*shared.Paginated[apprefund.RefundResponse], error)
	GetRefund(ctx context.Context, tenantID, refundID uuid.UUID) (*apprefund.RefundResponse, error)
	GetRefundsBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]apprefund.RefundResponse, error)
	GetRefundsByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, page, pageSize int) (*shared.Paginated[apprefund.RefundResponse], error)
	GetPendingApproval(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[apprefund.RefundResponse], error)
	GetStatistics(ctx context.Context, tenantID uuid.UUID, filter apprefund.StatisticsFilter) (*apprefund.StatisticsResponse, error)
	GetAuditTrail(ctx context.Context, tenantID, refundID uuid.UUID) ([]apprefund.AuditEntryResponse, error)
}

// RefundHandler handles the refund workflow endpoints
type RefundHandler struct {
	BaseHandler
	service RefundService
}

// NewRefundHandler creates a new RefundHandler
func NewRefundHandler(service RefundService) *RefundHandler {
	return &RefundHandler{service: service}
}

// PageQuery is the paging of the secondary list endpoints
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Create godoc
//
//	@ID				createRefund
//	@Summary		Request a refund
//	@Description	Create a refund for a completed sale. The location policy decides whether it is auto-approved.
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apprefund.CreateRefundRequest	true	"Refund request"
//	@Success		201		{object}	APIResponse[apprefund.CreateRefundResult]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		401		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		422		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds [post]
func (h *RefundHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprefund.CreateRefundRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateRefund(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
//
//	@ID				listRefunds
//	@Summary		List refunds
//	@Tags			refunds
//	@Produce		json
//	@Param			search		query		string	false	"Refund or sale number"
//	@Param			state		query		string	false	"Refund state"	Enums(pending_approval, approved, rejected, processed, partially_completed, completed)
//	@Param			branch_id	query		string	false	"Branch ID"		format(uuid)
//	@Param			customer_id	query		string	false	"Customer ID"	format(uuid)
//	@Param			start_date	query		string	false	"Requested on or after"		format(date)
//	@Param			end_date	query		string	false	"Requested on or before"	format(date)
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Order by field"	default(request_date)
//	@Param			order_dir	query		string	false	"Order direction"	Enums(asc, desc)	default(desc)
//	@Success		200			{object}	APIResponse[[]apprefund.RefundResponse]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		401			{object}	dto.ErrorResponse
//	@Failure		500			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds [get]
func (h *RefundHandler) List(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	var filter apprefund.RefundListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.service.ListRefunds(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successPage(&h.BaseHandler, c, page)
}

// PendingApproval godoc
//
//	@ID				listPendingRefunds
//	@Summary		List refunds waiting for approval
//	@Tags			refunds
//	@Produce		json
//	@Param			page		query		int	false	"Page number"	default(1)
//	@Param			page_size	query		int	false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	APIResponse[[]apprefund.RefundResponse]
//	@Failure		401			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/pending-approval [get]
func (h *RefundHandler) PendingApproval(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	var q PageQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.service.GetPendingApproval(c.Request.Context(), tenantID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successPage(&h.BaseHandler, c, page)
}

// Statistics godoc
//
//	@ID				getRefundStatistics
//	@Summary		Refund statistics
//	@Description	Count and amount per state, refunded and pending totals, average refund and auto-approved count
//	@Tags			refunds
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"	format(uuid)
//	@Param			start_date	query		string	false	"Requested on or after"		format(date)
//	@Param			end_date	query		string	false	"Requested on or before"	format(date)
//	@Success		200			{object}	APIResponse[apprefund.StatisticsResponse]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		401			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/statistics [get]
func (h *RefundHandler) Statistics(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	var filter apprefund.StatisticsFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Get godoc
//
//	@ID				getRefund
//	@Summary		Get a refund
//	@Tags			refunds
//	@Produce		json
//	@Param			id	path		string	true	"Refund ID"	format(uuid)
//	@Success		200	{object}	APIResponse[apprefund.RefundResponse]
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id} [get]
func (h *RefundHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetRefund(c.Request.Context(), tenantID, refundID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AuditTrail godoc
//
//	@ID				getRefundAuditTrail
//	@Summary		Audit trail of a refund, newest first
//	@Tags			refunds
//	@Produce		json
//	@Param			id	path		string	true	"Refund ID"	format(uuid)
//	@Success		200	{object}	APIResponse[[]apprefund.AuditEntryResponse]
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id}/audit-trail [get]
func (h *RefundHandler) AuditTrail(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.service.GetAuditTrail(c.Request.Context(), tenantID, refundID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Approve godoc
//
//	@ID				approveRefund
//	@Summary		Approve a pending refund
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Refund ID"	format(uuid)
//	@Param			request	body		apprefund.ApproveRefundRequest	false	"Approval notes"
//	@Success		200		{object}	APIResponse[apprefund.RefundResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		403		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		409		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id}/approve [post]
func (h *RefundHandler) Approve(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprefund.ApproveRefundRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ApproveRefund(c.Request.Context(), tenantID, refundID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject godoc
//
//	@ID				rejectRefund
//	@Summary		Reject a refund
//	@Description	Reject a pending, approved or processed refund
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Refund ID"	format(uuid)
//	@Param			request	body		apprefund.RejectRefundRequest	true	"Rejection reason"
//	@Success		200		{object}	APIResponse[apprefund.RefundResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		403		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		409		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id}/reject [post]
func (h *RefundHandler) Reject(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprefund.RejectRefundRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.RejectRefund(c.Request.Context(), tenantID, refundID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Process godoc
//
//	@ID				processRefund
//	@Summary		Record the payout of an approved refund
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Refund ID"	format(uuid)
//	@Param			request	body		apprefund.ProcessRefundRequest	false	"Payment details"
//	@Success		200		{object}	APIResponse[apprefund.RefundResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		409		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id}/process [post]
func (h *RefundHandler) Process(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprefund.ProcessRefundRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ProcessRefund(c.Request.Context(), tenantID, refundID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Complete godoc
//
//	@ID				completeRefund
//	@Summary		Complete a processed refund
//	@Description	Runs the compensating steps (sale, stock, loyalty, customer totals). A step failure leaves the refund partially_completed; calling again resumes from the first unfinished step.
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Refund ID"	format(uuid)
//	@Param			request	body		apprefund.CompleteRefundRequest	false	"Return inspection"
//	@Success		200		{object}	APIResponse[apprefund.CompleteRefundResult]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		409		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/{id}/complete [post]
func (h *RefundHandler) Complete(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	refundID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req apprefund.CompleteRefundRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.CompleteRefund(c.Request.Context(), tenantID, refundID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BySale godoc
//
//	@ID				listRefundsBySale
//	@Summary		Refunds of a sale
//	@Tags			refunds
//	@Produce		json
//	@Param			sale_id	path		string	true	"Sale ID"	format(uuid)
//	@Success		200		{object}	APIResponse[[]apprefund.RefundResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/by-sale/{sale_id} [get]
func (h *RefundHandler) BySale(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	saleID, ok := h.uuidParam(c, "sale_id")
	if !ok {
		return
	}

	refunds, err := h.service.GetRefundsBySale(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, refunds)
}

// ByCustomer godoc
//
//	@ID				listRefundsByCustomer
//	@Summary		Refunds of a customer
//	@Tags			refunds
//	@Produce		json
//	@Param			customer_id	path		string	true	"Customer ID"	format(uuid)
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	APIResponse[[]apprefund.RefundResponse]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/by-customer/{customer_id} [get]
func (h *RefundHandler) ByCustomer(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	customerID, ok := h.uuidParam(c, "customer_id")
	if !ok {
		return
	}
	var q PageQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.service.GetRefundsByCustomer(c.Request.Context(), tenantID, customerID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	successPage(&h.BaseHandler, c, page)
}
