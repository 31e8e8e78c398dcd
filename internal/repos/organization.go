package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

type OrganizationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, orgs []*types.Organization) ([]*types.Organization, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Organization, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Organization, error)
}

type organizationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
  repoLog := baseLog.With("repo", "OrganizationRepo")
  return &organizationRepo{db: db, log: repoLog}
}

func (or *organizationRepo) Create(ctx context.Context, tx *gorm.DB, orgs []*types.Organization) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  if len(orgs) == 0 {
    return []*types.Organization{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&orgs).Error; err != nil {
    return nil, err
  }

  return orgs, nil
}

func (or *organizationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization

  if len(orgIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", orgIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (or *organizationRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Organization, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }

  var results []*types.Organization

  if len(slugs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("slug IN ?", slugs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
