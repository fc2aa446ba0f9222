package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/api/handler"
	"github.com/nfahajan/job-board-backend/internal/api/middleware"
	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
	"github.com/nfahajan/job-board-backend/internal/core/service"
	"github.com/nfahajan/job-board-backend/internal/infrastructure/db/postgres"
	redisstore "github.com/nfahajan/job-board-backend/internal/infrastructure/db/redis"
	"github.com/nfahajan/job-board-backend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, files ports.FileStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	tokenStore := redisstore.NewTokenStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokenStore, service.AuthConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}, log)
	userService := service.NewUserService(userRepo, log)
	profileService := service.NewProfileService(profileRepo, log)
	companyService := service.NewCompanyService(companyRepo, files, log)
	jobService := service.NewJobService(jobRepo, companyRepo, log)
	resumeService := service.NewResumeService(resumeRepo, files, log)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, resumeRepo, companyRepo, log)
	statsService := service.NewStatsService(statsRepo, companyRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService)
	companyHandler := handler.NewCompanyHandler(companyService)
	jobHandler := handler.NewJobHandler(jobService)
	resumeHandler := handler.NewResumeHandler(resumeService, files)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWT.AccessSecret)
	employerOnly := middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin)
	jobSeekerOnly := middleware.RBAC(domain.RoleJobSeeker)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Uploaded files ---
	e.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh-token", authHandler.Refresh)

	// --- User routes ---
	userGroup := v1.Group("/user", auth)
	userGroup.GET("/me", userHandler.Me)
	userGroup.GET("", userHandler.List, adminOnly)
	userGroup.GET("/:id", userHandler.Get, adminOnly)
	userGroup.PATCH("/:id", userHandler.Update, adminOnly)
	userGroup.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Profile routes ---
	profileGroup := v1.Group("/profile", auth)
	profileGroup.GET("", profileHandler.Get)
	profileGroup.PUT("", profileHandler.Upsert)

	// --- Company routes ---
	companyGroup := v1.Group("/company")
	companyGroup.GET("", companyHandler.Directory)
	companyGroup.GET("/:id", companyHandler.Get)
	companyGroup.POST("", companyHandler.Create, auth, employerOnly)
	companyGroup.PATCH("/:id", companyHandler.Update, auth, employerOnly)
	companyGroup.POST("/:id/logo", companyHandler.UploadLogo, auth, employerOnly)

	// --- Job routes ---
	jobGroup := v1.Group("/job")
	jobGroup.GET("", jobHandler.List)
	jobGroup.GET("/search", jobHandler.Search)
	jobGroup.GET("/my-jobs", jobHandler.MyJobs, auth, employerOnly)
	jobGroup.GET("/:id", jobHandler.Get)
	jobGroup.POST("", jobHandler.Create, auth, employerOnly)
	jobGroup.PATCH("/:id", jobHandler.Update, auth, employerOnly)
	jobGroup.PATCH("/:id/status", jobHandler.SetStatus, auth, employerOnly)
	jobGroup.DELETE("/:id", jobHandler.Delete, auth, employerOnly)

	// --- Application routes ---
	applicationGroup := v1.Group("/application", auth)
	applicationGroup.POST("", applicationHandler.Apply, jobSeekerOnly)
	applicationGroup.GET("/my-applications", applicationHandler.MyApplications, jobSeekerOnly)
	applicationGroup.GET("/my-stats", statsHandler.MyStats, jobSeekerOnly)
	applicationGroup.GET("/monthly-stats", statsHandler.MonthlyStats, jobSeekerOnly)
	applicationGroup.GET("/job/:jobId", applicationHandler.JobApplications, employerOnly)
	applicationGroup.GET("/employer/my-applications", applicationHandler.EmployerApplications, employerOnly)
	applicationGroup.GET("/employer/stats", statsHandler.EmployerStats, employerOnly)
	applicationGroup.PATCH("/:id/status", applicationHandler.UpdateStatus, employerOnly)
	applicationGroup.GET("/:id", applicationHandler.Get)
	applicationGroup.DELETE("/:id", applicationHandler.Delete)

	// --- Resume routes ---
	resumeGroup := v1.Group("/resume", auth, jobSeekerOnly)
	resumeGroup.GET("", resumeHandler.List)
	resumeGroup.POST("", resumeHandler.Create)
	resumeGroup.GET("/:id", resumeHandler.Get)
	resumeGroup.PATCH("/:id", resumeHandler.Update)
	resumeGroup.PATCH("/:id/default", resumeHandler.SetDefault)
	resumeGroup.DELETE("/:id", resumeHandler.Delete)

	// --- Admin stats ---
	statsGroup := v1.Group("/stats", auth, adminOnly)
	statsGroup.GET("/admin", statsHandler.AdminStats)

	return e
}
