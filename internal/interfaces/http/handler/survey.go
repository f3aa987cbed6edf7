package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/participation"
	"github.com/marketry/backend/internal/application/survey"
)

// SurveyHandler serves the survey flavour of the participation flow.
// Surveys have no matching phase, so there is no confirm-match route.
type SurveyHandler struct {
	BaseHandler
	service *survey.Service
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(service *survey.Service, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	clientID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req participation.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.CreateSurvey(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetSurvey(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /surveys
func (h *SurveyHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListSurveys(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AddInfluencers handles POST /surveys/:id/influencers
func (h *SurveyHandler) AddInfluencers(c *gin.Context) {
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

// InviteInfluencers handles POST /surveys/:id/influencers/invite
func (h *SurveyHandler) InviteInfluencers(c *gin.Context) {
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

// RemoveInfluencers handles POST /surveys/:id/influencers/remove
func (h *SurveyHandler) RemoveInfluencers(c *gin.Context) {
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

// ApproveAnswers handles POST /surveys/:id/answers/approve
func (h *SurveyHandler) ApproveAnswers(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	affected, err := h.service.ApproveAnswers(c.Request.Context(), orderID, req.InfluencerIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"approved_count": affected})
}

// DisapproveAnswers handles POST /surveys/:id/answers/disapprove
func (h *SurveyHandler) DisapproveAnswers(c *gin.Context) {
	orderID, req, ok := h.bindInfluencerIDs(c)
	if !ok {
		return
	}

	affected, err := h.service.DisapproveAnswers(c.Request.Context(), orderID, req.InfluencerIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"disapproved_count": affected})
}

// AcceptInvitation handles POST /surveys/:id/invitation/accept
func (h *SurveyHandler) AcceptInvitation(c *gin.Context) {
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

// DeclineInvitation handles POST /surveys/:id/invitation/decline
func (h *SurveyHandler) DeclineInvitation(c *gin.Context) {
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

// Withdraw handles POST /surveys/:id/withdraw
func (h *SurveyHandler) Withdraw(c *gin.Context) {
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

// SubmitAnswers handles POST /surveys/:id/answers
func (h *SurveyHandler) SubmitAnswers(c *gin.Context) {
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

	resp, err := h.service.SubmitAnswers(c.Request.Context(), orderID, influencerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetAnswers handles GET /surveys/:id/answers
func (h *SurveyHandler) GetAnswers(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	influencerID, ok := h.callerID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetAnswers(c.Request.Context(), orderID, influencerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Start handles POST /surveys/:id/start
func (h *SurveyHandler) Start(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.StartSurvey(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Finish handles POST /surveys/:id/finish
func (h *SurveyHandler) Finish(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.FinishSurvey(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive handles POST /surveys/:id/archive
func (h *SurveyHandler) Archive(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.ArchiveSurvey(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
