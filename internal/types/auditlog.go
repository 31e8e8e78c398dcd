package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only trail of who touched what. Fields holds column
// names only, never values.
type AuditLog struct {
	ID             uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActorUserID    *uuid.UUID                  `gorm:"type:uuid;index;column:actor_user_id" json:"actor_user_id,omitempty"`
	OrganizationID *uuid.UUID                  `gorm:"type:uuid;index;column:organization_id" json:"organization_id,omitempty"`
	SubjectType    string                      `gorm:"not null;index;column:subject_type" json:"subject_type"`
	SubjectID      string                      `gorm:"column:subject_id" json:"subject_id"`
	Action         string                      `gorm:"not null;index;column:action" json:"action"`
	IP             string                      `gorm:"column:ip" json:"ip"`
	Fields         datatypes.JSONSlice[string] `gorm:"type:jsonb;column:fields" json:"fields"`
	CreatedAt      time.Time                   `gorm:"not null;default:now()" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }
