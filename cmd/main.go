package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/playmatter/playdate-backend/internal/clients/redis"
  "github.com/playmatter/playdate-backend/internal/db"
  "github.com/playmatter/playdate-backend/internal/handlers"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/middleware"
  "github.com/playmatter/playdate-backend/internal/observability"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/server"
  "github.com/playmatter/playdate-backend/internal/services"
  "github.com/playmatter/playdate-backend/internal/utils"
  "github.com/playmatter/playdate-backend/internal/visibility"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Column tables are static config; a bad table is a programming error.
  if err := visibility.Validate(); err != nil {
    log.Fatal("Visibility column tables invalid", "error", err)
  }

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  appEnv := utils.GetEnv("APP_ENV", "development", log)

  // Tracing
  shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "playdate-backend",
    Environment: appEnv,
  })
  if shutdownOtel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOtel(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Snapshot live columns so tier projections survive a half-landed migration.
  liveColumns := map[string][]string{}
  for _, table := range []string{"playdate", "material"} {
    cols, cErr := postgresService.ColumnNames(table)
    if cErr != nil {
      log.Warn("Could not read live columns, skipping compat filter for table", "table", table, "error", cErr)
      continue
    }
    liveColumns[table] = cols
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  organizationRepo := repos.NewOrganizationRepo(thePG, log)
  packRepo := repos.NewPackRepo(thePG, log)
  playdateRepo := repos.NewPlaydateRepo(thePG, log)
  materialRepo := repos.NewMaterialRepo(thePG, log)
  entitlementRepo := repos.NewEntitlementRepo(thePG, log)
  auditLogRepo := repos.NewAuditLogRepo(thePG, log)

  // Redis (optional, entitlement cache)
  entitlementCache, cacheErr := redis.Shared(log)
  if cacheErr != nil {
    log.Warn("Redis cache unavailable, entitlement checks go straight to Postgres", "error", cacheErr)
    entitlementCache = nil
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  entitlementService := services.NewEntitlementService(thePG, log, entitlementRepo, entitlementCache)
  auditService := services.NewAuditService(thePG, log, auditLogRepo)
  catalogService := services.NewCatalogService(thePG, log, playdateRepo, materialRepo, packRepo, organizationRepo, entitlementService, liveColumns)
  matchService := services.NewMatchService(thePG, log, playdateRepo, entitlementService, auditService, liveColumns)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  playdateHandler := handlers.NewPlaydateHandler(log, catalogService, matchService)
  materialHandler := handlers.NewMaterialHandler(log, catalogService)
  packHandler := handlers.NewPackHandler(log, catalogService)
  entitlementHandler := handlers.NewEntitlementHandler(log, entitlementService, auditService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    PlaydateHandler:    playdateHandler,
    MaterialHandler:    materialHandler,
    PackHandler:        packHandler,
    EntitlementHandler: entitlementHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
