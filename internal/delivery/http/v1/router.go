package v1

import (
	"net/http"
	"time"

	"go-applicant-tracker/config"
	"go-applicant-tracker/internal/delivery/http/middleware"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	PasswordUC     domain.PasswordUsecase
	VerificationUC domain.VerificationUsecase
	ApplicantUC    domain.ApplicantUsecase
	Profiles       ProfileUsecases
	AttemptUC      domain.AttemptUsecase // assessment attempts
	ShortlistUC    domain.AttemptUsecase // shortlisted applicants
	RoleUC         domain.RoleUsecase
	HealthUC       usecase.HealthUsecase
	// LocalStorageDir, when set, is served under /storage.
	LocalStorageDir string
	Config          *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	RegisterBindingValidators()

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware([]string{cfg.FrontendURL}, cfg.IsProduction())) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	if deps.LocalStorageDir != "" {
		r.Static("/storage", deps.LocalStorageDir)
	}

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

	authLimit := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window))
	resetLimit := middleware.RateLimitMiddleware(middleware.PasswordResetRateLimitConfig(cfg.RateLimitLoginThreshold, window))
	noticeLimit := middleware.RateLimitMiddleware(middleware.VerificationNoticeRateLimitConfig(cfg.VerificationNoticeLimit))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))

	admin := protected.Group("/admin")
	provision := admin.Group("", middleware.RequirePermission(domain.PermUserCreate))

	NewAuthHandler(v1, protected, provision, deps.AuthUC, authLimit)
	NewPasswordHandler(v1, deps.PasswordUC, resetLimit)
	NewVerificationHandler(v1, protected, deps.VerificationUC, cfg.FrontendURL, noticeLimit)
	NewApplicantHandler(v1, protected, deps.ApplicantUC)
	NewProfileHandlers(protected, deps.Profiles)
	NewAssessmentAttemptHandler(protected, deps.AttemptUC)
	NewShortlistHandler(protected, deps.ShortlistUC)
	NewRoleHandler(admin, deps.RoleUC)

	return r
}
