package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Material struct {
	ID           uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug         string                      `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Name         string                      `gorm:"not null;column:name" json:"name"`
	PrimaryForm  string                      `gorm:"index;column:primary_form" json:"primary_form"`
	FunctionTags datatypes.JSONSlice[string] `gorm:"type:jsonb;column:function_tags" json:"function_tags"`
	ContextTags  datatypes.JSONSlice[string] `gorm:"type:jsonb;column:context_tags" json:"context_tags"`

	// Entitled tier.
	ConnectorModes datatypes.JSONSlice[string] `gorm:"type:jsonb;column:connector_modes" json:"connector_modes,omitempty"`
	Shareability   string                      `gorm:"column:shareability" json:"shareability,omitempty"`
	SourcingNotes  string                      `gorm:"column:sourcing_notes" json:"sourcing_notes,omitempty"`

	// Collective tier.
	CareNotes string `gorm:"column:care_notes" json:"care_notes,omitempty"`

	// Internal tier.
	Published      bool       `gorm:"not null;default:false;index;column:published" json:"published"`
	SourceSystemID string     `gorm:"column:source_system_id" json:"source_system_id,omitempty"`
	SyncedAt       *time.Time `gorm:"column:synced_at" json:"synced_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Material) TableName() string { return "material" }
