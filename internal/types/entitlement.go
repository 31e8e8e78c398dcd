package types

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement records that an organization purchased access to a pack. One row
// per (organization, pack); revocation deletes the row rather than flagging it.
type Entitlement struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_entitlement_org_pack,priority:1" json:"organization_id"`
	Organization   *Organization `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrganizationID;references:ID" json:"organization,omitempty"`
	PackID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_entitlement_org_pack,priority:2" json:"pack_id"`
	Pack           *Pack         `gorm:"constraint:OnDelete:CASCADE;foreignKey:PackID;references:ID" json:"pack,omitempty"`
	Source         string        `gorm:"not null;default:'purchase';column:source" json:"source"`
	CreatedAt      time.Time     `gorm:"not null;default:now()" json:"created_at"`
}

func (Entitlement) TableName() string { return "entitlement" }
