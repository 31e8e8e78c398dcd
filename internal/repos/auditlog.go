package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/types"
)

type AuditLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.AuditLog) ([]*types.AuditLog, error)
  GetByActorUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
  repoLog := baseLog.With("repo", "AuditLogRepo")
  return &auditLogRepo{db: db, log: repoLog}
}

func (ar *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AuditLog) ([]*types.AuditLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(rows) == 0 {
    return []*types.AuditLog{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }

  return rows, nil
}

func (ar *auditLogRepo) GetByActorUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.AuditLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.AuditLog

  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("actor_user_id IN ?", userIDs).
    Order("created_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
