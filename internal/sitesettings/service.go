package sitesettings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// Service defines site-settings operations.
type Service interface {
	Get(ctx context.Context) (*SiteSettingsDTO, error)
	Update(ctx context.Context, req UpdateSiteSettingsRequest) (*SiteSettingsDTO, error)
}

type repository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, settings *models.SiteSettings) error
}

// objectRemover deletes an uploaded object by storage key.
type objectRemover interface {
	Remove(ctx context.Context, storageKey string) error
}

type service struct {
	repo    repository
	remover objectRemover
	logg    *logger.Logger
}

// ServiceParams bundles the site-settings service dependencies.
type ServiceParams struct {
	Repo    repository
	Remover objectRemover
	Logger  *logger.Logger
}

// NewService constructs the site-settings service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "site settings repository required")
	}
	if params.Remover == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object remover required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: params.Repo, remover: params.Remover, logg: params.Logger}, nil
}

// Get returns the singleton, or an empty document when the site has
// never been configured.
func (s *service) Get(ctx context.Context) (*SiteSettingsDTO, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FromModel(&models.SiteSettings{}), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading site settings")
	}
	return FromModel(settings), nil
}

// Update upserts the singleton. When an image ref is replaced the old
// object is deleted best-effort; a failed delete never blocks the save.
func (s *service) Update(ctx context.Context, req UpdateSiteSettingsRequest) (*SiteSettingsDTO, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading site settings")
		}
		settings = &models.SiteSettings{}
	}

	if req.MetaTitle != nil {
		settings.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		settings.MetaDescription = req.MetaDescription
	}
	if req.OGURL != nil {
		settings.OGURL = req.OGURL
	}
	if req.WebsiteName != nil {
		settings.WebsiteName = req.WebsiteName
	}
	if req.Author != nil {
		settings.Author = req.Author
	}
	if req.HeroTitle != nil {
		settings.HeroTitle = req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		settings.HeroSubtitle = req.HeroSubtitle
	}

	settings.IconImage = s.replaceImage(ctx, settings.IconImage, req.IconImage)
	settings.Icon = s.replaceImage(ctx, settings.Icon, req.Icon)
	settings.HeroImage = s.replaceImage(ctx, settings.HeroImage, req.HeroImage)

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving site settings")
	}
	return FromModel(settings), nil
}

func (s *service) replaceImage(ctx context.Context, current types.ImageRef, next *types.ImageRef) types.ImageRef {
	if next == nil {
		return current
	}
	if current.StorageKey != "" && current.StorageKey != next.StorageKey {
		if err := s.remover.Remove(ctx, current.StorageKey); err != nil {
			s.logg.Warn(
				s.logg.WithField(ctx, "storage_key", current.StorageKey),
				"failed to delete replaced site image",
			)
		}
	}
	return *next
}
