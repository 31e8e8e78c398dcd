package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/playmatter/playdate-backend/internal/handlers"
  "github.com/playmatter/playdate-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  PlaydateHandler    *handlers.PlaydateHandler
  MaterialHandler    *handlers.MaterialHandler
  PackHandler        *handlers.PackHandler
  EntitlementHandler *handlers.EntitlementHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("playdate-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)

    // Discovery is public; OptionalAuth lets entitled callers see more.
    discovery := api.Group("/")
    discovery.Use(cfg.AuthMiddleware.OptionalAuth())
    discovery.GET("/playdates", cfg.PlaydateHandler.List)
    discovery.GET("/playdates/:slug", cfg.PlaydateHandler.Get)
    discovery.POST("/playdates/match", cfg.PlaydateHandler.Match)
    discovery.GET("/materials", cfg.MaterialHandler.List)
    discovery.GET("/materials/:slug", cfg.MaterialHandler.Get)
    discovery.GET("/packs", cfg.PackHandler.List)
  }

// ===============
// || Protected ||
// ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)

// ===============
// || Admin     ||
// ===============
  admin := api.Group("/admin")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  admin.POST("/entitlements", cfg.EntitlementHandler.Grant)
  admin.DELETE("/entitlements", cfg.EntitlementHandler.Revoke)

  return router
}
