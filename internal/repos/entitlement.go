package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

type EntitlementRepo interface {
  Create(ctx context.Context, tx *gorm.DB, entitlements []*types.Entitlement) ([]*types.Entitlement, error)
  Exists(ctx context.Context, tx *gorm.DB, orgID, packID uuid.UUID) (bool, error)
  GetByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Entitlement, error)
  DeleteByOrgAndPack(ctx context.Context, tx *gorm.DB, orgID, packID uuid.UUID) error
}

type entitlementRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEntitlementRepo(db *gorm.DB, baseLog *logger.Logger) EntitlementRepo {
  repoLog := baseLog.With("repo", "EntitlementRepo")
  return &entitlementRepo{db: db, log: repoLog}
}

func (er *entitlementRepo) Create(ctx context.Context, tx *gorm.DB, entitlements []*types.Entitlement) ([]*types.Entitlement, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  if len(entitlements) == 0 {
    return []*types.Entitlement{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&entitlements).Error; err != nil {
    return nil, err
  }

  return entitlements, nil
}

func (er *entitlementRepo) Exists(ctx context.Context, tx *gorm.DB, orgID, packID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  var count int64

  if err := transaction.WithContext(ctx).
    Model(&types.Entitlement{}).
    Where("organization_id = ? AND pack_id = ?", orgID, packID).
    Count(&count).Error; err != nil {
    return false, err
  }

  return count > 0, nil
}

func (er *entitlementRepo) GetByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Entitlement, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  var results []*types.Entitlement

  if len(orgIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("organization_id IN ?", orgIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (er *entitlementRepo) DeleteByOrgAndPack(ctx context.Context, tx *gorm.DB, orgID, packID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  return transaction.WithContext(ctx).
    Where("organization_id = ? AND pack_id = ?", orgID, packID).
    Delete(&types.Entitlement{}).Error
}
