package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pack struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	PriceCents  int            `gorm:"not null;default:0;column:price_cents" json:"price_cents"`
	Published   bool           `gorm:"not null;default:false;index;column:published" json:"published"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Pack) TableName() string { return "pack" }
