package sitesettings

import (
	"time"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// SiteSettingsDTO is the public shape of the singleton.
type SiteSettingsDTO struct {
	MetaTitle       *string        `json:"metaTitle,omitempty"`
	MetaDescription *string        `json:"metaDescription,omitempty"`
	OGURL           *string        `json:"ogUrl,omitempty"`
	WebsiteName     *string        `json:"websiteName,omitempty"`
	Author          *string        `json:"author,omitempty"`
	HeroTitle       *string        `json:"heroTitle,omitempty"`
	HeroSubtitle    *string        `json:"heroSubtitle,omitempty"`
	IconImage       types.ImageRef `json:"iconImage"`
	Icon            types.ImageRef `json:"icon"`
	HeroImage       types.ImageRef `json:"heroImage"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// UpdateSiteSettingsRequest carries partial edits. Nil fields are left
// untouched; a present image ref replaces the stored one.
type UpdateSiteSettingsRequest struct {
	MetaTitle       *string         `json:"metaTitle,omitempty"`
	MetaDescription *string         `json:"metaDescription,omitempty"`
	OGURL           *string         `json:"ogUrl,omitempty"`
	WebsiteName     *string         `json:"websiteName,omitempty"`
	Author          *string         `json:"author,omitempty"`
	HeroTitle       *string         `json:"heroTitle,omitempty"`
	HeroSubtitle    *string         `json:"heroSubtitle,omitempty"`
	IconImage       *types.ImageRef `json:"iconImage,omitempty"`
	Icon            *types.ImageRef `json:"icon,omitempty"`
	HeroImage       *types.ImageRef `json:"heroImage,omitempty"`
}

// SiteSettingsResponse wraps the singleton.
type SiteSettingsResponse struct {
	Success  bool             `json:"success"`
	Settings *SiteSettingsDTO `json:"settings"`
}

func FromModel(s *models.SiteSettings) *SiteSettingsDTO {
	if s == nil {
		return nil
	}
	return &SiteSettingsDTO{
		MetaTitle:       s.MetaTitle,
		MetaDescription: s.MetaDescription,
		OGURL:           s.OGURL,
		WebsiteName:     s.WebsiteName,
		Author:          s.Author,
		HeroTitle:       s.HeroTitle,
		HeroSubtitle:    s.HeroSubtitle,
		IconImage:       s.IconImage,
		Icon:            s.Icon,
		HeroImage:       s.HeroImage,
		UpdatedAt:       s.UpdatedAt,
	}
}
