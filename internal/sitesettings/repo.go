package sitesettings

import (
	"context"

	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
)

// Repository persists the site-settings singleton.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a site-settings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the singleton row. gorm.ErrRecordNotFound means the site has
// never been configured.
func (r *Repository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save persists the full singleton row, inserting it on first use.
func (r *Repository) Save(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
