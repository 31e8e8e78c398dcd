package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/requestdata"
  "github.com/playmatter/playdate-backend/internal/types"
  "github.com/playmatter/playdate-backend/internal/visibility"
)

// CatalogService serves tier-projected catalog reads. Every row it returns
// went through the visibility column tables; handlers never see raw models.
type CatalogService interface {
  ListPlaydates(ctx context.Context) ([]map[string]any, error)
  GetPlaydate(ctx context.Context, slug string) (map[string]any, error)
  ListMaterials(ctx context.Context) ([]map[string]any, error)
  GetMaterial(ctx context.Context, slug string) (map[string]any, error)
  ListPacks(ctx context.Context) ([]*types.Pack, error)
}

type catalogService struct {
  db              *gorm.DB
  log             *logger.Logger
  playdateRepo    repos.PlaydateRepo
  materialRepo    repos.MaterialRepo
  packRepo        repos.PackRepo
  organizationRepo repos.OrganizationRepo
  entitlementSvc  EntitlementService
  liveColumns     map[string][]string
}

// NewCatalogService takes liveColumns, a table→columns snapshot of the
// running schema; nil disables the migration-compat filter.
func NewCatalogService(
  db *gorm.DB,
  log *logger.Logger,
  playdateRepo repos.PlaydateRepo,
  materialRepo repos.MaterialRepo,
  packRepo repos.PackRepo,
  organizationRepo repos.OrganizationRepo,
  entitlementSvc EntitlementService,
  liveColumns map[string][]string,
) CatalogService {
  serviceLog := log.With("service", "CatalogService")
  return &catalogService{
    db:               db,
    log:              serviceLog,
    playdateRepo:     playdateRepo,
    materialRepo:     materialRepo,
    packRepo:         packRepo,
    organizationRepo: organizationRepo,
    entitlementSvc:   entitlementSvc,
    liveColumns:      liveColumns,
  }
}

func (cs *catalogService) columnsFor(entity visibility.Entity, tier visibility.Tier) ([]string, error) {
  cols, err := visibility.ColumnsFor(entity, tier)
  if err != nil {
    return nil, err
  }
  if cs.liveColumns != nil {
    if existing, ok := cs.liveColumns[string(entity)]; ok {
      cols = visibility.Intersect(cols, existing)
    }
  }
  return cols, nil
}

// baseTier resolves the tier a caller holds before any per-pack entitlement
// is considered: admins read internal, everyone else starts at teaser.
func baseTier(ctx context.Context) visibility.Tier {
  rd := requestdata.GetRequestData(ctx)
  if rd != nil && rd.IsAdmin {
    return visibility.TierInternal
  }
  return visibility.TierTeaser
}

// packTier resolves the tier for content belonging to packID. Entitled-or-
// better requires an authenticated caller whose org owns the pack; collective
// additionally requires the org's collective membership. Any failure along
// the way degrades to the lower tier, never up.
func (cs *catalogService) packTier(ctx context.Context, packID *uuid.UUID) visibility.Tier {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return visibility.TierTeaser
  }
  if rd.IsAdmin {
    return visibility.TierInternal
  }
  if rd.OrganizationID == nil || packID == nil {
    return visibility.TierTeaser
  }
  owns, err := cs.entitlementSvc.HasEntitlement(ctx, *rd.OrganizationID, *packID)
  if err != nil {
    cs.log.Warn("Entitlement check failed, treating as not entitled", "error", err, "pack_id", *packID)
    return visibility.TierTeaser
  }
  if !owns {
    return visibility.TierTeaser
  }
  orgs, err := cs.organizationRepo.GetByIDs(ctx, nil, []uuid.UUID{*rd.OrganizationID})
  if err != nil || len(orgs) == 0 {
    return visibility.TierEntitled
  }
  if orgs[0].CollectiveMember {
    return visibility.TierCollective
  }
  return visibility.TierEntitled
}

func (cs *catalogService) ListPlaydates(ctx context.Context) ([]map[string]any, error) {
  tier := baseTier(ctx)
  cols, err := cs.columnsFor(visibility.EntityPlaydate, tier)
  if err != nil {
    return nil, err
  }
  playdates, err := cs.playdateRepo.ListPublished(ctx, nil, cols)
  if err != nil {
    return nil, err
  }
  rows := make([]map[string]any, 0, len(playdates))
  for _, p := range playdates {
    rows = append(rows, types.PickColumns(p.Record(), cols))
  }
  visibility.AssertNoLeaks(rows, visibility.EntityPlaydate, tier)
  return rows, nil
}

func (cs *catalogService) GetPlaydate(ctx context.Context, slug string) (map[string]any, error) {
  // Load at teaser first; the pack id decides whether a wider projection is
  // allowed for this caller.
  teaserCols, err := cs.columnsFor(visibility.EntityPlaydate, visibility.TierTeaser)
  if err != nil {
    return nil, err
  }
  teaser, err := cs.playdateRepo.GetBySlug(ctx, nil, slug, teaserCols)
  if err != nil {
    return nil, err
  }
  tier := cs.packTier(ctx, teaser.PackID)
  cols := teaserCols
  playdate := teaser
  if tier > visibility.TierTeaser {
    cols, err = cs.columnsFor(visibility.EntityPlaydate, tier)
    if err != nil {
      return nil, err
    }
    playdate, err = cs.playdateRepo.GetBySlug(ctx, nil, slug, cols)
    if err != nil {
      return nil, err
    }
  }
  row := types.PickColumns(playdate.Record(), cols)
  visibility.AssertNoLeaks([]map[string]any{row}, visibility.EntityPlaydate, tier)
  return row, nil
}

// materialTier gates material detail. Materials are not pack-scoped, so the
// entitled tier opens once the caller's org holds any entitlement at all.
func (cs *catalogService) materialTier(ctx context.Context) visibility.Tier {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return visibility.TierTeaser
  }
  if rd.IsAdmin {
    return visibility.TierInternal
  }
  if rd.OrganizationID == nil {
    return visibility.TierTeaser
  }
  owned, err := cs.entitlementSvc.ListForOrganization(ctx, *rd.OrganizationID)
  if err != nil {
    cs.log.Warn("Entitlement list failed, treating as not entitled", "error", err)
    return visibility.TierTeaser
  }
  if len(owned) == 0 {
    return visibility.TierTeaser
  }
  orgs, err := cs.organizationRepo.GetByIDs(ctx, nil, []uuid.UUID{*rd.OrganizationID})
  if err == nil && len(orgs) > 0 && orgs[0].CollectiveMember {
    return visibility.TierCollective
  }
  return visibility.TierEntitled
}

func (cs *catalogService) ListMaterials(ctx context.Context) ([]map[string]any, error) {
  tier := baseTier(ctx)
  cols, err := cs.columnsFor(visibility.EntityMaterial, tier)
  if err != nil {
    return nil, err
  }
  materials, err := cs.materialRepo.ListPublished(ctx, nil, cols)
  if err != nil {
    return nil, err
  }
  rows := make([]map[string]any, 0, len(materials))
  for _, m := range materials {
    rows = append(rows, types.PickColumns(m.Record(), cols))
  }
  visibility.AssertNoLeaks(rows, visibility.EntityMaterial, tier)
  return rows, nil
}

func (cs *catalogService) GetMaterial(ctx context.Context, slug string) (map[string]any, error) {
  tier := cs.materialTier(ctx)
  cols, err := cs.columnsFor(visibility.EntityMaterial, tier)
  if err != nil {
    return nil, err
  }
  material, err := cs.materialRepo.GetBySlug(ctx, nil, slug, cols)
  if err != nil {
    return nil, err
  }
  row := types.PickColumns(material.Record(), cols)
  visibility.AssertNoLeaks([]map[string]any{row}, visibility.EntityMaterial, tier)
  return row, nil
}

func (cs *catalogService) ListPacks(ctx context.Context) ([]*types.Pack, error) {
  packs, err := cs.packRepo.ListPublished(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list packs: %w", err)
  }
  return packs, nil
}
