package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/account"
	googleauth "docvault-backend/internal/auth"
	"docvault-backend/internal/documents"
	"docvault-backend/internal/profiles"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
	localstore "docvault-backend/internal/shared/storage/object/local"
)

// RouterDeps carries the handlers the router mounts. LocalStore is non-nil
// only when the local object store is active; it backs the signed /files
// endpoint.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	ProfilesHandler  *profiles.Handler
	AccountHandler   *account.Handler
	GoogleAuth       *googleauth.GoogleService
	LocalStore       *localstore.Store
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/api/v1/documents/upload" {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.LocalStore != nil {
		registerFileRoutes(r, deps.LocalStore)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
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
