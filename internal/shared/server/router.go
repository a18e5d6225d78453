package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/corrections"
	"resume-o-matic/internal/facts"
	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/shared/metrics"
	"resume-o-matic/internal/shared/server/middleware"
	"resume-o-matic/internal/shared/server/respond"
	"resume-o-matic/internal/submissions"
	"resume-o-matic/internal/workflow"
)

// RouterDeps holds handlers and shared dependencies for routing.
type RouterDeps struct {
	Config             config.Config
	DB                 *sql.DB
	CorrectionsHandler *corrections.Handler
	FactsHandler       *facts.Handler
	SubmissionsHandler *submissions.Handler
	WorkflowHandler    *workflow.Handler

	// Limiter may be injected; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Config.GenerateRatePerMin > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				middleware.GroupGenerate: middleware.PerMinute(deps.Config.GenerateRatePerMin, deps.Config.GenerateBurst),
			},
		}))
	}

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.DB))
	api.GET("/metrics", metrics.Handler())

	if deps.CorrectionsHandler != nil {
		deps.CorrectionsHandler.RegisterRoutes(api)
	}
	if deps.FactsHandler != nil {
		deps.FactsHandler.RegisterRoutes(api)
	}
	if deps.SubmissionsHandler != nil {
		deps.SubmissionsHandler.RegisterRoutes(api)
	}
	if deps.WorkflowHandler != nil {
		deps.WorkflowHandler.RegisterRoutes(api)
	}

	return r
}

func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			respond.OK(c, gin.H{"ok": true, "db": "memory"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", nil)
			return
		}
		respond.OK(c, gin.H{"ok": true, "db": "ok"})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
