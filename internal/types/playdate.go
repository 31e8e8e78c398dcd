package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Playdate is a single catalog activity. Tag columns hold the facet values the
// matcher scores against; the guide columns (Find/Fold/Unfold and friends) are
// entitled-tier only and must never be selected for teaser queries.
type Playdate struct {
	ID              uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug            string                      `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	PackID          *uuid.UUID                  `gorm:"type:uuid;index;column:pack_id" json:"pack_id,omitempty"`
	Pack            *Pack                       `gorm:"constraint:OnDelete:SET NULL;foreignKey:PackID;references:ID" json:"pack,omitempty"`
	Title           string                      `gorm:"not null;column:title" json:"title"`
	Headline        string                      `gorm:"column:headline" json:"headline"`
	PrimaryFunction string                      `gorm:"column:primary_function" json:"primary_function"`
	ArcEmphasis     datatypes.JSONSlice[string] `gorm:"type:jsonb;column:arc_emphasis" json:"arc_emphasis"`
	FrictionDial    int                         `gorm:"not null;default:1;column:friction_dial" json:"friction_dial"`
	ReadyIn120s     bool                        `gorm:"not null;default:false;column:ready_in_120s" json:"ready_in_120s"`

	// Facet tag sets (teaser tier).
	MaterialTags datatypes.JSONSlice[string] `gorm:"type:jsonb;column:material_tags" json:"material_tags"`
	FormTags     datatypes.JSONSlice[string] `gorm:"type:jsonb;column:form_tags" json:"form_tags"`
	SlotTags     datatypes.JSONSlice[string] `gorm:"type:jsonb;column:slot_tags" json:"slot_tags"`
	ContextTags  datatypes.JSONSlice[string] `gorm:"type:jsonb;column:context_tags" json:"context_tags"`
	EnergyTags   datatypes.JSONSlice[string] `gorm:"type:jsonb;column:energy_tags" json:"energy_tags"`

	// Guide fields (entitled tier).
	Find               string `gorm:"column:find" json:"find,omitempty"`
	Fold               string `gorm:"column:fold" json:"fold,omitempty"`
	Unfold             string `gorm:"column:unfold" json:"unfold,omitempty"`
	SubstitutionsNotes string `gorm:"column:substitutions_notes" json:"substitutions_notes,omitempty"`
	FindAgainMode      string `gorm:"column:find_again_mode" json:"find_again_mode,omitempty"`
	FindAgainPrompt    string `gorm:"column:find_again_prompt" json:"find_again_prompt,omitempty"`

	// Collective tier.
	FacilitationNotes string `gorm:"column:facilitation_notes" json:"facilitation_notes,omitempty"`
	RemixIdeas        string `gorm:"column:remix_ideas" json:"remix_ideas,omitempty"`

	// Internal tier.
	Published       bool       `gorm:"not null;default:false;index;column:published" json:"published"`
	SamplerEligible bool       `gorm:"not null;default:false;index;column:sampler_eligible" json:"sampler_eligible"`
	SourceSystemID  string     `gorm:"column:source_system_id" json:"source_system_id,omitempty"`
	SyncedAt        *time.Time `gorm:"column:synced_at" json:"synced_at,omitempty"`
	IPTier          string     `gorm:"column:ip_tier" json:"ip_tier,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Playdate) TableName() string { return "playdate" }
