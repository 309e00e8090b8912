package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprefund "github.com/retailpos/backend/internal/application/refund"
)

// PolicyService reads and upserts refund policies
type PolicyService interface {
	GetPolicy(ctx context.Context, tenantID, locationID uuid.UUID) (*apprefund.PolicyResponse, error)
	UpdatePolicy(ctx context.Context, tenantID, locationID, actorID uuid.UUID, req apprefund.UpdatePolicyRequest) (*apprefund.UpdatePolicyResult, error)
}

// PolicyHandler handles the per-location refund policy endpoints
type PolicyHandler struct {
	BaseHandler
	service PolicyService
}

// NewPolicyHandler creates a new PolicyHandler
func NewPolicyHandler(service PolicyService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

// Get godoc
//
//	@ID				getRefundPolicy
//	@Summary		Get the refund policy of a location
//	@Tags			refund-policies
//	@Produce		json
//	@Param			location_id	path		string	true	"Location (branch) ID"	format(uuid)
//	@Success		200			{object}	APIResponse[apprefund.PolicyResponse]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		404			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refund-policies/{location_id} [get]
func (h *PolicyHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.actor(c)
	if !ok {
		return
	}
	locationID, ok := h.uuidParam(c, "location_id")
	if !ok {
		return
	}

	policy, err := h.service.GetPolicy(c.Request.Context(), tenantID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, policy)
}

// Update godoc
//
//	@ID				updateRefundPolicy
//	@Summary		Create or update the refund policy of a location
//	@Description	Partial update. Fields left out keep their current value, or the default when the policy is new.
//	@Tags			refund-policies
//	@Accept			json
//	@Produce		json
//	@Param			location_id	path		string							true	"Location (branch) ID"	format(uuid)
//	@Param			request		body		apprefund.UpdatePolicyRequest	true	"Policy fields"
//	@Success		200			{object}	APIResponse[apprefund.UpdatePolicyResult]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		403			{object}	dto.ErrorResponse
//	@Security		BearerAuth
//	@Router			/refund-policies/{location_id} [put]
func (h *PolicyHandler) Update(c *gin.Context) {
	tenantID, userID, ok := h.actor(c)
	if !ok {
		return
	}
	locationID, ok := h.uuidParam(c, "location_id")
	if !ok {
		return
	}
	var req apprefund.UpdatePolicyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdatePolicy(c.Request.Context(), tenantID, locationID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
