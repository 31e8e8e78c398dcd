package services

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/types"
)

// AuditService persists one trail row per sensitive action. Writes are
// best-effort: a failure is logged and swallowed so an audit outage can never
// fail the request it describes.
type AuditService interface {
  Record(ctx context.Context, actorUserID, orgID *uuid.UUID, subjectType, subjectID, action, ip string, fields []string)
}

type auditService struct {
  db           *gorm.DB
  log          *logger.Logger
  auditLogRepo repos.AuditLogRepo
}

func NewAuditService(db *gorm.DB, log *logger.Logger, auditLogRepo repos.AuditLogRepo) AuditService {
  serviceLog := log.With("service", "AuditService")
  return &auditService{
    db:           db,
    log:          serviceLog,
    auditLogRepo: auditLogRepo,
  }
}

func (s *auditService) Record(ctx context.Context, actorUserID, orgID *uuid.UUID, subjectType, subjectID, action, ip string, fields []string) {
  row := &types.AuditLog{
    ID:             uuid.New(),
    ActorUserID:    actorUserID,
    OrganizationID: orgID,
    SubjectType:    subjectType,
    SubjectID:      subjectID,
    Action:         action,
    IP:             ip,
    Fields:         fields,
  }
  if _, err := s.auditLogRepo.Create(ctx, nil, []*types.AuditLog{row}); err != nil {
    s.log.Warn("Audit write failed", "error", err, "action", action, "subject_type", subjectType)
  }
}
