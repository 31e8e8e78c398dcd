package services

import (
  "context"
  "fmt"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/clients/redis"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/types"
)

const entitlementCacheTTL = 5 * time.Minute

// EntitlementService answers "does this organization own this pack". Lookups
// go through an optional Redis cache; the database stays the source of truth
// and grant/revoke invalidate the cached answer.
type EntitlementService interface {
  HasEntitlement(ctx context.Context, orgID, packID uuid.UUID) (bool, error)
  Grant(ctx context.Context, orgID, packID uuid.UUID, source string) error
  Revoke(ctx context.Context, orgID, packID uuid.UUID) error
  ListForOrganization(ctx context.Context, orgID uuid.UUID) ([]*types.Entitlement, error)
}

type entitlementService struct {
  db              *gorm.DB
  log             *logger.Logger
  entitlementRepo repos.EntitlementRepo
  cache           redis.Cache
}

func NewEntitlementService(db *gorm.DB, log *logger.Logger, entitlementRepo repos.EntitlementRepo, cache redis.Cache) EntitlementService {
  serviceLog := log.With("service", "EntitlementService")
  return &entitlementService{
    db:              db,
    log:             serviceLog,
    entitlementRepo: entitlementRepo,
    cache:           cache,
  }
}

func entitlementCacheKey(orgID, packID uuid.UUID) string {
  return fmt.Sprintf("entitlement:%s:%s", orgID, packID)
}

func (es *entitlementService) HasEntitlement(ctx context.Context, orgID, packID uuid.UUID) (bool, error) {
  if orgID == uuid.Nil || packID == uuid.Nil {
    return false, nil
  }
  key := entitlementCacheKey(orgID, packID)
  if es.cache != nil {
    cached, found, err := es.cache.GetBool(ctx, key)
    if err != nil {
      es.log.Warn("Entitlement cache read failed, falling back to database", "error", err)
    } else if found {
      return cached, nil
    }
  }
  owns, err := es.entitlementRepo.Exists(ctx, nil, orgID, packID)
  if err != nil {
    return false, err
  }
  if es.cache != nil {
    if err := es.cache.SetBool(ctx, key, owns, entitlementCacheTTL); err != nil {
      es.log.Warn("Entitlement cache write failed", "error", err)
    }
  }
  return owns, nil
}

func (es *entitlementService) Grant(ctx context.Context, orgID, packID uuid.UUID, source string) error {
  if orgID == uuid.Nil || packID == uuid.Nil {
    return fmt.Errorf("Organization and pack are both required to grant an entitlement")
  }
  if source == "" {
    source = "purchase"
  }
  err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, exErr := es.entitlementRepo.Exists(ctx, tx, orgID, packID)
    if exErr != nil {
      return exErr
    }
    if exists {
      return nil
    }
    row := &types.Entitlement{
      ID:             uuid.New(),
      OrganizationID: orgID,
      PackID:         packID,
      Source:         source,
    }
    _, cErr := es.entitlementRepo.Create(ctx, tx, []*types.Entitlement{row})
    return cErr
  })
  if err != nil {
    return err
  }
  es.invalidate(ctx, orgID, packID)
  return nil
}

func (es *entitlementService) Revoke(ctx context.Context, orgID, packID uuid.UUID) error {
  if err := es.entitlementRepo.DeleteByOrgAndPack(ctx, nil, orgID, packID); err != nil {
    return err
  }
  es.invalidate(ctx, orgID, packID)
  return nil
}

func (es *entitlementService) ListForOrganization(ctx context.Context, orgID uuid.UUID) ([]*types.Entitlement, error) {
  return es.entitlementRepo.GetByOrganizationIDs(ctx, nil, []uuid.UUID{orgID})
}

func (es *entitlementService) invalidate(ctx context.Context, orgID, packID uuid.UUID) {
  if es.cache == nil {
    return
  }
  if err := es.cache.Del(ctx, entitlementCacheKey(orgID, packID)); err != nil {
    es.log.Warn("Entitlement cache invalidation failed", "error", err)
  }
}
