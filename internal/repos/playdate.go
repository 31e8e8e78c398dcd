package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

var ErrNotFound = errors.New("not found")

// PlaydateRepo reads catalog playdates. Every read takes an explicit column
// list so callers can never widen a projection past the tier they resolved;
// there is deliberately no method that selects *.
type PlaydateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, playdates []*types.Playdate) ([]*types.Playdate, error)
  ListCandidates(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error)
  ListPublished(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error)
  GetBySlug(ctx context.Context, tx *gorm.DB, slug string, columns []string) (*types.Playdate, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, playdateIDs []uuid.UUID, columns []string) ([]*types.Playdate, error)
}

type playdateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlaydateRepo(db *gorm.DB, baseLog *logger.Logger) PlaydateRepo {
  repoLog := baseLog.With("repo", "PlaydateRepo")
  return &playdateRepo{db: db, log: repoLog}
}

func (pr *playdateRepo) Create(ctx context.Context, tx *gorm.DB, playdates []*types.Playdate) ([]*types.Playdate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(playdates) == 0 {
    return []*types.Playdate{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&playdates).Error; err != nil {
    return nil, err
  }

  return playdates, nil
}

// ListCandidates loads the matcher's candidate pool: published playdates that
// are eligible for public discovery.
func (pr *playdateRepo) ListCandidates(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Playdate

  if err := transaction.WithContext(ctx).
    Select(columns).
    Where("published = ? AND sampler_eligible = ?", true, true).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *playdateRepo) ListPublished(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Playdate

  if err := transaction.WithContext(ctx).
    Select(columns).
    Where("published = ?", true).
    Order("title asc").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *playdateRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string, columns []string) (*types.Playdate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Playdate

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

func (pr *playdateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, playdateIDs []uuid.UUID, columns []string) ([]*types.Playdate, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Playdate

  if len(playdateIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Select(columns).
    Where("id IN ?", playdateIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
