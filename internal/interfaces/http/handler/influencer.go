package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/marketry/backend/internal/application/identity"
)

// InfluencerHandler serves the influencer directory
type InfluencerHandler struct {
	BaseHandler
	service *appidentity.Service
}

// NewInfluencerHandler creates a new influencer handler
func NewInfluencerHandler(service *appidentity.Service, logger *zap.Logger) *InfluencerHandler {
	return &InfluencerHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /influencers
func (h *InfluencerHandler) Create(c *gin.Context) {
	var req appidentity.CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.CreateInfluencer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /influencers/:id
func (h *InfluencerHandler) Get(c *gin.Context) {
	id, ok := h.influencerID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetInfluencer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /influencers
func (h *InfluencerHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListInfluencers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PATCH /influencers/:id
func (h *InfluencerHandler) Update(c *gin.Context) {
	id, ok := h.influencerID(c)
	if !ok {
		return
	}

	var req appidentity.UpdateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.UpdateInfluencer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDesiredAmount handles PUT /influencers/:id/desired-amounts
func (h *InfluencerHandler) SetDesiredAmount(c *gin.Context) {
	id, ok := h.influencerID(c)
	if !ok {
		return
	}

	var req appidentity.SetDesiredAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.SetDesiredAmount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MyParticipations handles GET /influencers/me/participations
func (h *InfluencerHandler) MyParticipations(c *gin.Context) {
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListParticipations(c.Request.Context(), influencerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *InfluencerHandler) influencerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid influencer id")
		return uuid.Nil, false
	}
	return id, true
}
