package v1

import (
	"net/http"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/auth"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC   domain.ProfileUsecase
	PortfolioUC domain.PortfolioUsecase
	HealthUC    usecase.HealthUsecase
	Catalog     domain.TemplateCatalog
	RateLimiter *middleware.RateLimiter
	Quota       *security.QuotaLimiter
	Verifier    *auth.Verifier
	Audit       *security.SecurityLogger
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.GinMode == gin.ReleaseMode)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewTemplateHandler(v1, deps.Catalog)
	NewPortfolioHandler(v1, deps.PortfolioUC,
		deps.RateLimiter.Middleware(middleware.PublicPortfolioRateLimitConfig(cfg.RateLimitPublicThreshold, window)))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.Audit))
	{
		NewProfileHandler(protected, deps.ProfileUC,
			middleware.UserQuota(deps.Quota, deps.Audit, "import"),
			middleware.UserQuota(deps.Quota, deps.Audit, "export"))
	}

	return r
}
