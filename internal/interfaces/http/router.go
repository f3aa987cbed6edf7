package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/infrastructure/auth"
	"github.com/marketry/backend/internal/infrastructure/config"
	"github.com/marketry/backend/internal/infrastructure/logger"
	"github.com/marketry/backend/internal/interfaces/http/handler"
	"github.com/marketry/backend/internal/interfaces/http/middleware"
)

// RouterConfig bundles everything the router needs
type RouterConfig struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService

	CampaignHandler   *handler.CampaignHandler
	SurveyHandler     *handler.SurveyHandler
	InfluencerHandler *handler.InfluencerHandler
	SystemHandler     *handler.SystemHandler
}

// NewRouter assembles the gin engine with the full middleware chain and
// all route groups
func NewRouter(rc RouterConfig) *gin.Engine {
	if rc.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(rc.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(rc.Config.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(rc.Logger))
	engine.Use(logger.Recovery(rc.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(rc.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = rc.Config.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if rc.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(rc.Config.HTTP.RateLimitRequests, rc.Config.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", rc.SystemHandler.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(rc.JWTService))

	registerCampaignRoutes(api, rc.CampaignHandler)
	registerSurveyRoutes(api, rc.SurveyHandler)
	registerInfluencerRoutes(api, rc.InfluencerHandler)

	system := api.Group("/system")
	system.Use(middleware.RequireRole(auth.RoleAdmin))
	system.GET("/stats", rc.SystemHandler.Stats)

	return engine
}

func registerCampaignRoutes(api *gin.RouterGroup, h *handler.CampaignHandler) {
	campaigns := api.Group("/campaigns")

	// Client-side roster and lifecycle management
	clients := campaigns.Group("")
	clients.Use(middleware.RequireRole(auth.RoleClient))
	clients.POST("", h.Create)
	clients.POST("/:id/influencers", h.AddInfluencers)
	clients.POST("/:id/influencers/invite", h.InviteInfluencers)
	clients.POST("/:id/influencers/confirm-match", h.ConfirmMatches)
	clients.POST("/:id/influencers/remove", h.RemoveInfluencers)
	clients.POST("/:id/submissions/approve", h.ApproveSubmissions)
	clients.POST("/:id/submissions/disapprove", h.DisapproveSubmissions)
	clients.POST("/:id/start", h.Start)
	clients.POST("/:id/finish", h.Finish)
	clients.POST("/:id/archive", h.Archive)

	// Influencer self-service
	self := campaigns.Group("")
	self.Use(middleware.RequireRole(auth.RoleInfluencer))
	self.POST("/:id/invitation/accept", h.AcceptInvitation)
	self.POST("/:id/invitation/decline", h.DeclineInvitation)
	self.POST("/:id/withdraw", h.Withdraw)
	self.POST("/:id/submission", h.SubmitWork)
	self.GET("/:id/submission", h.GetSubmission)

	// Reads are open to both sides
	campaigns.GET("", h.List)
	campaigns.GET("/:id", h.Get)
}

func registerSurveyRoutes(api *gin.RouterGroup, h *handler.SurveyHandler) {
	surveys := api.Group("/surveys")

	clients := surveys.Group("")
	clients.Use(middleware.RequireRole(auth.RoleClient))
	clients.POST("", h.Create)
	clients.POST("/:id/influencers", h.AddInfluencers)
	clients.POST("/:id/influencers/invite", h.InviteInfluencers)
	clients.POST("/:id/influencers/remove", h.RemoveInfluencers)
	clients.POST("/:id/answers/approve", h.ApproveAnswers)
	clients.POST("/:id/answers/disapprove", h.DisapproveAnswers)
	clients.POST("/:id/start", h.Start)
	clients.POST("/:id/finish", h.Finish)
	clients.POST("/:id/archive", h.Archive)

	self := surveys.Group("")
	self.Use(middleware.RequireRole(auth.RoleInfluencer))
	self.POST("/:id/invitation/accept", h.AcceptInvitation)
	self.POST("/:id/invitation/decline", h.DeclineInvitation)
	self.POST("/:id/withdraw", h.Withdraw)
	self.POST("/:id/answers", h.SubmitAnswers)
	self.GET("/:id/answers", h.GetAnswers)

	surveys.GET("", h.List)
	surveys.GET("/:id", h.Get)
}

func registerInfluencerRoutes(api *gin.RouterGroup, h *handler.InfluencerHandler) {
	influencers := api.Group("/influencers")

	influencers.GET("", h.List)
	influencers.GET("/me/participations", middleware.RequireRole(auth.RoleInfluencer), h.MyParticipations)
	influencers.GET("/:id", h.Get)

	admin := influencers.Group("")
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	admin.POST("", h.Create)
	admin.PATCH("/:id", h.Update)

	// Influencers manage their own asking prices; admins can too
	influencers.PUT("/:id/desired-amounts", middleware.RequireRole(auth.RoleInfluencer), h.SetDesiredAmount)
}
