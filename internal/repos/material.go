package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

type MaterialRepo interface {
  Create(ctx context.Context, tx *gorm.DB, materials []*types.Material) ([]*types.Material, error)
  ListPublished(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Material, error)
  GetBySlug(ctx context.Context, tx *gorm.DB, slug string, columns []string) (*types.Material, error)
}

type materialRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
  repoLog := baseLog.With("repo", "MaterialRepo")
  return &materialRepo{db: db, log: repoLog}
}

func (mr *materialRepo) Create(ctx context.Context, tx *gorm.DB, materials []*types.Material) ([]*types.Material, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(materials) == 0 {
    return []*types.Material{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&materials).Error; err != nil {
    return nil, err
  }

  return materials, nil
}

func (mr *materialRepo) ListPublished(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Material, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Material

  if err := transaction.WithContext(ctx).
    Select(columns).
    Where("published = ?", true).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (mr *materialRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string, columns []string) (*types.Material, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var result types.Material

  err := transaction.WithContext(ctx).
    Select(columns).
    Where("slug = ? AND published = ?", slug, true).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    return nil, err
  }

  return &result, nil
}
