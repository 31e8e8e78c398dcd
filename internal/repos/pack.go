package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

type PackRepo interface {
  Create(ctx context.Context, tx *gorm.DB, packs []*types.Pack) ([]*types.Pack, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.Pack, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Pack, error)
  ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.Pack, error)
}

type packRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPackRepo(db *gorm.DB, baseLog *logger.Logger) PackRepo {
  repoLog := baseLog.With("repo", "PackRepo")
  return &packRepo{db: db, log: repoLog}
}

func (pr *packRepo) Create(ctx context.Context, tx *gorm.DB, packs []*types.Pack) ([]*types.Pack, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(packs) == 0 {
    return []*types.Pack{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&packs).Error; err != nil {
    return nil, err
  }

  return packs, nil
}

func (pr *packRepo) GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.Pack, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Pack

  if len(packIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", packIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *packRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Pack, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Pack

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

func (pr *packRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.Pack, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Pack

  if err := transaction.WithContext(ctx).
    Where("published = ?", true).
    Order("title asc").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
