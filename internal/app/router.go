package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/reflective-room/api/swagger"
	"github.com/noah-isme/reflective-room/internal/handler"
	"github.com/noah-isme/reflective-room/internal/middleware"
	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/service"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/export"
	"github.com/noah-isme/reflective-room/pkg/logger"
	corsmiddleware "github.com/noah-isme/reflective-room/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/reflective-room/pkg/middleware/requestid"
)

// Dependencies are the collaborators the HTTP API is assembled from. Reflector
// and Speaker are optional; leaving them nil disables those features.
type Dependencies struct {
	Store     *Store
	Sessions  service.SessionRepository
	Reflector service.Reflector
	Speaker   service.Speaker
	Metrics   *service.MetricsService
	Clock     func() time.Time
}

// NewRouter assembles services, middleware and routes.
func NewRouter(cfg *config.Config, logr *zap.Logger, deps Dependencies) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	validate := validator.New()
	submissions := deps.Store.Submissions

	sessionSvc := service.NewSessionService(deps.Sessions, cfg.Session.TTL, logr)
	submissionSvc := service.NewSubmissionService(submissions, deps.Metrics, logr, service.SubmissionServiceConfig{
		Passphrase:    cfg.Community.Passphrase,
		RequireAuthor: cfg.Community.RequireAuthor,
		Clock:         deps.Clock,
	})
	reflectionSvc := service.NewReflectionService(submissions, deps.Reflector, cfg.Reflection.Instruction, deps.Metrics, logr)
	speechSvc := service.NewSpeechService(deps.Speaker, deps.Metrics, logr)
	posterSvc := service.NewPosterService(submissions, export.NewPosterPDF(), service.PosterLayout{
		LineCapacity: cfg.Poster.LineCapacity,
		WrapWidth:    cfg.Poster.WrapWidth,
		TitleWidth:   cfg.Poster.TitleWidth,
	}, deps.Metrics, logr)
	statsSvc := service.NewStatsService(submissions)
	adminSvc := service.NewAdminService(submissions, validate, logr, service.AdminConfig{
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		TokenSecret:  cfg.JWT.Secret,
		TokenExpiry:  cfg.JWT.Expiration,
		Clock:        deps.Clock,
	})
	promptSvc := service.NewPromptService(deps.Store.Prompts, validate, logr)

	submissionHandler := handler.NewSubmissionHandler(submissionSvc, reflectionSvc, adminSvc, sessionSvc)
	posterHandler := handler.NewPosterHandler(posterSvc)
	speechHandler := handler.NewSpeechHandler(speechSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	promptHandler := handler.NewPromptHandler(promptSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	sessionHandler := handler.NewSessionHandler()
	metricsHandler := handler.NewMetricsHandler(deps.Metrics, func(ctx context.Context) error {
		if err := deps.Store.Ping(ctx); err != nil {
			return err
		}
		if pinger, ok := deps.Sessions.(interface{ Ping(context.Context) error }); ok {
			return pinger.Ping(ctx)
		}
		return nil
	}, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if deps.Metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Session(sessionSvc, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Env == config.EnvProduction,
	}))

	api.POST("/submissions", submissionHandler.Submit)
	api.GET("/submissions/featured", submissionHandler.Featured)
	api.POST("/submissions/:row/reflection", submissionHandler.Reflect)
	api.GET("/submissions/:row/poster", posterHandler.ForSubmission)
	api.POST("/posters", posterHandler.Create)
	api.POST("/speech", speechHandler.Synthesize)
	api.GET("/stats/authors", statsHandler.Authors)
	api.GET("/prompts/current", promptHandler.Current)
	api.GET("/session", sessionHandler.Current)
	api.POST("/admin/login", adminHandler.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminJWT(adminSvc), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/submissions", adminHandler.List)
	admin.GET("/submissions/export", middleware.Audit(logr, "export_submissions"), adminHandler.Export)
	admin.PUT("/submissions/:row/featured", middleware.Audit(logr, "feature_submission"), adminHandler.Feature)
	admin.POST("/prompts", middleware.Audit(logr, "post_prompt"), promptHandler.Post)

	return r
}
