package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/types"
)

// SiteSettings is a singleton row holding public site configuration.
type SiteSettings struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MetaTitle       *string        `gorm:"column:meta_title"`
	MetaDescription *string        `gorm:"column:meta_description"`
	OGURL           *string        `gorm:"column:og_url"`
	WebsiteName     *string        `gorm:"column:website_name"`
	Author          *string        `gorm:"column:author"`
	HeroTitle       *string        `gorm:"column:hero_title"`
	HeroSubtitle    *string        `gorm:"column:hero_subtitle"`
	IconImage       types.ImageRef `gorm:"column:icon_image;type:jsonb"`
	Icon            types.ImageRef `gorm:"column:icon;type:jsonb"`
	HeroImage       types.ImageRef `gorm:"column:hero_image;type:jsonb"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
