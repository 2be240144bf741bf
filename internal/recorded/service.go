package recorded

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/pagination"
)

const listPageSize = 10

// Service defines recorded-course catalog operations.
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, req CreateRecordedCourseRequest) (*RecordedCourseDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRecordedCourseRequest) (*RecordedCourseDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RecordedCourseDTO, error)
	List(ctx context.Context, page int) (*ListRecordedCoursesResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, course *models.RecordedCourse) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.RecordedCourse, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.RecordedCourse, bool, error)
	Save(ctx context.Context, course *models.RecordedCourse) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// objectRemover deletes an uploaded object by storage key. Video files
// outlive nothing once their course row is gone, so Delete walks them first.
type objectRemover interface {
	Remove(ctx context.Context, storageKey string) error
}

type service struct {
	repo    repository
	remover objectRemover
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo    repository
	Remover objectRemover
	Logger  *logger.Logger
}

// NewService constructs the recorded-courses service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recorded courses repository required")
	}
	if params.Remover == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object remover required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: params.Repo, remover: params.Remover, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, createdBy uuid.UUID, req CreateRecordedCourseRequest) (*RecordedCourseDTO, error) {
	if createdBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if req.IsPaid && !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid courses need a positive price")
	}

	course := &models.RecordedCourse{
		Title:        title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Price:        req.Price,
		IsPaid:       req.IsPaid,
		Videos:       req.Videos,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating recorded course")
	}
	return FromModel(course), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRecordedCourseRequest) (*RecordedCourseDTO, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = req.ThumbnailURL
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		course.Price = *req.Price
	}
	if req.IsPaid != nil {
		course.IsPaid = *req.IsPaid
	}
	if req.Videos != nil {
		course.Videos = *req.Videos
	}

	if course.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be blank")
	}
	if course.IsPaid && !course.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid courses need a positive price")
	}

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating recorded course")
	}
	return FromModel(course), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RecordedCourseDTO, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(course), nil
}

func (s *service) List(ctx context.Context, page int) (*ListRecordedCoursesResponse, error) {
	params := pagination.Normalize(pagination.Params{Page: page, PageSize: listPageSize}, listPageSize, listPageSize)
	rows, hasMore, err := s.repo.ListPage(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing recorded courses")
	}
	return &ListRecordedCoursesResponse{
		Success: true,
		Courses: FromModels(rows),
		HasMore: hasMore,
		Page:    params.Page,
	}, nil
}

// Delete removes the course row after best-effort cleanup of its video
// objects. A failed object delete is logged and the loop continues.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	course, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	for _, video := range course.Videos {
		if video.StorageKey == "" {
			continue
		}
		if err := s.remover.Remove(ctx, video.StorageKey); err != nil {
			s.logg.Warn(
				s.logg.WithField(ctx, "storage_key", video.StorageKey),
				"failed to delete video object",
			)
		}
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting recorded course")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recorded course not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.RecordedCourse, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recorded course id required")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recorded course not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading recorded course")
	}
	return course, nil
}
