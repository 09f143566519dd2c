package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"MentalHealthSentiment_WebProject/docs"
	"MentalHealthSentiment_WebProject/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins    []string // empty allows every origin
	InviteCode     string
	LoginRateLimit float64 // requests per second per client IP, 0 disables
	Readiness      map[string]middleware.HealthChecker
}

// loginBurst is how many attempts a client may fire back to back before throttling.
const loginBurst = 5

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.Logger))

	config := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.CORSOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", middleware.InviteCodeHeader)
	router.Use(cors.New(config))

	router.GET("/healthz", middleware.LivenessHandler)
	router.GET("/readyz", middleware.ReadinessHandler(cfg.Readiness))

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/signup", middleware.InviteCodeMiddleware(cfg.InviteCode), h.Signup)
	router.POST("/login", middleware.LoginRateLimit(cfg.LoginRateLimit, loginBurst), h.Login)
	router.POST("/analyze", h.Analyze)

	protected := router.Group("/api").Use(middleware.AuthMiddleware(h.Tokens))
	{
		protected.GET("/profile", h.Profile)
		protected.GET("/dashboard", h.Dashboard)
		protected.POST("/dashboard", h.DashboardAnalyze)
		protected.GET("/history", h.GetHistory)
	}

	return router
}
