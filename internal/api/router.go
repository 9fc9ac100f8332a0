package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planning-insights/editorial-system/internal/api/handler"
	"github.com/planning-insights/editorial-system/internal/api/middleware"
	"github.com/planning-insights/editorial-system/internal/core/domain"
	"github.com/planning-insights/editorial-system/internal/core/ports"
	"github.com/planning-insights/editorial-system/internal/core/service"
	mongodb "github.com/planning-insights/editorial-system/internal/infrastructure/db/mongo"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	submissions := mongodb.NewSubmissionRepository(db)
	roleRequests := mongodb.NewRoleRequestRepository(db)
	articles := mongodb.NewArticleRepository(db)
	requirements := mongodb.NewRequirementRepository(db)

	// --- Services ---
	authService := service.NewAuthService(users, jwtSecret, 24*time.Hour)
	assignmentService := service.NewAssignmentService(users, submissions, log)
	submissionService := service.NewSubmissionService(submissions, requirements, notifier, log)
	roleRequestService := service.NewRoleRequestService(roleRequests, users, notifier, log)
	articleService := service.NewArticleService(articles, users, notifier, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	roleRequestHandler := handler.NewRoleRequestHandler(roleRequestService)
	articleHandler := handler.NewArticleHandler(articleService)

	auth := middleware.Auth(jwtSecret)
	chiefOnly := middleware.RBAC(domain.RoleChiefEditor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	reviewers := middleware.RBAC(domain.RoleEditor, domain.RoleChiefEditor, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1", auth)

	// --- Submissions ---
	v1.POST("/submissions", submissionHandler.Create)
	v1.GET("/submissions", submissionHandler.List)
	v1.GET("/submissions/stats", submissionHandler.Stats, reviewers)
	v1.GET("/submissions/:id", submissionHandler.Get)
	v1.POST("/submissions/:id/review", submissionHandler.Review, reviewers)
	v1.DELETE("/submissions/:id", submissionHandler.Delete, adminOnly)

	// --- Assignments ---
	v1.POST("/assignments/auto", assignmentHandler.AutoAssign, chiefOnly)
	v1.POST("/assignments/:submissionId", assignmentHandler.Assign, chiefOnly)
	v1.PUT("/assignments/:submissionId", assignmentHandler.Reassign, chiefOnly)
	v1.DELETE("/assignments/:submissionId", assignmentHandler.Unassign, chiefOnly)
	v1.GET("/editors", assignmentHandler.ListEditors, chiefOnly)
	v1.GET("/editors/stats", assignmentHandler.Stats, chiefOnly)

	// --- Role requests ---
	v1.POST("/role-requests", roleRequestHandler.Create)
	v1.GET("/role-requests/mine", roleRequestHandler.Mine)
	v1.GET("/role-requests", roleRequestHandler.List, adminOnly)
	v1.POST("/role-requests/:id/review", roleRequestHandler.Review, adminOnly)
	v1.DELETE("/role-requests/:id", roleRequestHandler.Delete, adminOnly)
	v1.POST("/users/:id/revoke-role", roleRequestHandler.Revoke, adminOnly)

	// --- Articles ---
	v1.POST("/articles", articleHandler.Create)
	v1.GET("/articles", articleHandler.List)
	v1.GET("/articles/:id", articleHandler.Get)
	v1.PUT("/articles/:id", articleHandler.Update)
	v1.POST("/articles/:id/approve", articleHandler.Approve, adminOnly)
	v1.POST("/articles/:id/reject", articleHandler.Reject, adminOnly)
	v1.POST("/articles/:id/request-modification", articleHandler.RequestModification, adminOnly)

	return e
}
