package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/campaign"
	"github.com/marketry/backend/internal/application/participation"
)

// CampaignHandler serves the campaign side of the marketplace: the
// client manages the roster and reviews content, influencers answer
// invitations and submit work.
type CampaignHandler struct {
	BaseHandler
	service *campaign.Service
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(service *campaign.Service, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	clientID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req participation.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.CreateCampaign(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetCampaign(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListCampaigns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AddInfluencers handles POST /campaigns/:id/influencers
func (h *CampaignHandler) AddInfluencers(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req participation.AddInfluencersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	participants, err := h.service.AddInfluencers(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, participants)
}

// InviteInfluencers handles POST /campaigns/:id/influencers/invite
func (h *CampaignHandler) InviteInfluencers(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	if err := h.service.InviteInfluencers(c.Request.Context(), orderID, req.InfluencerIDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConfirmMatches handles POST /campaigns/:id/influencers/confirm-match
func (h *CampaignHandler) ConfirmMatches(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	if err := h.service.ConfirmMatches(c.Request.Context(), orderID, req.InfluencerIDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveInfluencers handles POST /campaigns/:id/influencers/remove
func (h *CampaignHandler) RemoveInfluencers(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	resp, err := h.service.RemoveInfluencers(c.Request.Context(), orderID, req.InfluencerIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ApproveSubmissions handles POST /campaigns/:id/submissions/approve
func (h *CampaignHandler) ApproveSubmissions(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	affected, err := h.service.ApproveSubmissions(c.Request.Context(), orderID, req.InfluencerIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"approved_count": affected})
}

// DisapproveSubmissions handles POST /campaigns/:id/submissions/disapprove
func (h *CampaignHandler) DisapproveSubmissions(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	affected, err := h.service.DisapproveSubmissions(c.Request.Context(), orderID, req.InfluencerIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"disapproved_count": affected})
}

// AcceptInvitation handles POST /campaigns/:id/invitation/accept
func (h *CampaignHandler) AcceptInvitation(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.service.AcceptInvitation(c.Request.Context(), orderID, influencerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeclineInvitation handles POST /campaigns/:id/invitation/decline
func (h *CampaignHandler) DeclineInvitation(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.service.DeclineInvitation(c.Request.Context(), orderID, influencerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Withdraw handles POST /campaigns/:id/withdraw
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), orderID, influencerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SubmitWork handles POST /campaigns/:id/submission
func (h *CampaignHandler) SubmitWork(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req participation.SubmitDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.SubmitWork(c.Request.Context(), orderID, influencerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSubmission handles GET /campaigns/:id/submission
func (h *CampaignHandler) GetSubmission(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetSubmission(c.Request.Context(), orderID, influencerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Start handles POST /campaigns/:id/start
func (h *CampaignHandler) Start(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.StartCampaign(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Finish handles POST /campaigns/:id/finish
func (h *CampaignHandler) Finish(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.FinishCampaign(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive handles POST /campaigns/:id/archive
func (h *CampaignHandler) Archive(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.ArchiveCampaign(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// bindInfluencerIDs parses the order id and the influencer id batch from
// the request
func (h *BaseHandler) bindInfluencerIDs(c *gin.Context) (orderID uuid.UUID, req participation.InfluencerIDsRequest, ok bool) {
	id, idOK := h.orderID(c)
	if !idOK {
		return id, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return id, req, false
	}
	return id, req, true
}
