package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// BatchService runs refund operations over many sales or refunds
type BatchService interface {
	CreateAndApproveBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkCreateRequest) (*apprefund.BatchResult, error)
	ProcessBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkRefundIDsRequest) (*apprefund.BatchResult, error)
	CompleteBulk(ctx context.Context, tenantID, actorID uuid.UUID, req apprefund.BulkCompleteRequest) (*apprefund.BatchResult, error)
}

// BatchHandler handles the bulk refund endpoints
type BatchHandler struct {
	BaseHandler
	service  BatchService
	maxItems int
}

// NewBatchHandler creates a new BatchHandler. maxItems bounds the size of one
// batch; zero leaves it unbounded.
func NewBatchHandler(service BatchService, maxItems int) *BatchHandler {
	return &BatchHandler{service: service, maxItems: maxItems}
}

func (h *BatchHandler) tooLarge(c *gin.Context, n int) bool {
	if h.maxItems > 0 && n > h.maxItems {
		h.ValidationError(c, []dto.ValidationDetail{{
			Field:   "items",
			Message: "batch exceeds the maximum size",
		}})
		return true
	}
	return false
}

// CreateAndApprove godoc
//
//	@ID				bulkCreateRefunds
//	@Summary		Refund many sales at once
//	@Description	Creates a full refund per sale number and approves it when auto_approve is set. Failures are reported per sale.
//	@Tags			refunds-bulk
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apprefund.BulkCreateRequest	true	"Sales to refund"
//	@Success		200		{object}	APIResponse[apprefund.BatchResult]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		403		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/bulk/create-approve [post]
func (h *BatchHandler) CreateAndApprove(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprefund.BulkCreateRequest
	if !h.bindJSON(c, &req) || h.tooLarge(c, len(req.SaleNumbers)) {
		return
	}

	result, err := h.service.CreateAndApproveBulk(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Process godoc
//
//	@ID				bulkProcessRefunds
//	@Summary		Process many approved refunds
//	@Tags			refunds-bulk
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apprefund.BulkRefundIDsRequest	true	"Refunds to process"
//	@Success		200		{object}	APIResponse[apprefund.BatchResult]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/bulk/process [post]
func (h *BatchHandler) Process(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprefund.BulkRefundIDsRequest
	if !h.bindJSON(c, &req) || h.tooLarge(c, len(req.RefundIDs)) {
		return
	}

	result, err := h.service.ProcessBulk(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Complete godoc
//
//	@ID				bulkCompleteRefunds
//	@Summary		Complete many processed refunds
//	@Description	A refund left partially_completed counts as failed.
//	@Tags			refunds-bulk
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apprefund.BulkCompleteRequest	true	"Refunds to complete"
//	@Success		200		{object}	APIResponse[apprefund.BatchResult]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refunds/bulk/complete [post]
func (h *BatchHandler) Complete(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	var req apprefund.BulkCompleteRequest
	if !h.bindJSON(c, &req) || h.tooLarge(c, len(req.RefundIDs)) {
		return
	}

	result, err := h.service.CompleteBulk(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
