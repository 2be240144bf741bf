package feedback

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/pagination"
)

const (
	publicPageSize = 10
	adminPageSize  = 30
	maxPageSize    = 100
)

// Service defines feedback operations.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitFeedbackRequest) (*FeedbackDTO, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID, params pagination.Params) (*ListFeedbackResponse, error)
	ListByRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID, params pagination.Params) (*ListFeedbackResponse, error)
	ListAll(ctx context.Context, page int) (*ListFeedbackResponse, error)
	Resolve(ctx context.Context, id uuid.UUID) (*FeedbackDTO, error)
}

type repository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListByCourse(ctx context.Context, courseID uuid.UUID, offset, limit int) ([]models.Feedback, int64, error)
	ListByRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID, offset, limit int) ([]models.Feedback, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]models.Feedback, int64, error)
	SetResolved(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
}

// recomputer is the aggregator surface the service needs.
type recomputer interface {
	RecomputeCourse(ctx context.Context, courseID uuid.UUID) error
	RecomputeRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID) error
}

type service struct {
	repo       repository
	aggregator recomputer
	logg       *logger.Logger
}

// ServiceParams bundles the feedback service dependencies.
type ServiceParams struct {
	Repo       repository
	Aggregator recomputer
	Logger     *logger.Logger
}

// NewService constructs the feedback service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "feedback repository required")
	}
	if params.Aggregator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rating aggregator required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: params.Repo, aggregator: params.Aggregator, logg: params.Logger}, nil
}

// Submit validates and persists one submission, then recomputes the
// course average when the submission qualifies. A failed recompute is a
// logged warning; the submission has already succeeded.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitFeedbackRequest) (*FeedbackDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	feedbackType, err := enums.ParseFeedbackType(req.FeedbackType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	// A rating on a non-ratable type is stored as-is; qualifies keeps it
	// out of the course averages.
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	feedback := &models.Feedback{
		UserID:           userID,
		CourseID:         req.CourseID,
		RecordedCourseID: req.RecordedCourseID,
		FeedbackType:     feedbackType,
		Rating:           req.Rating,
		Message:          message,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating feedback")
	}

	if qualifies(feedback) {
		s.recompute(ctx, feedback)
	}

	return FromModel(feedback), nil
}

func (s *service) ListByCourse(ctx context.Context, courseID uuid.UUID, params pagination.Params) (*ListFeedbackResponse, error) {
	if courseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "course id required")
	}
	params = pagination.Normalize(params, publicPageSize, maxPageSize)
	rows, total, err := s.repo.ListByCourse(ctx, courseID, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing course feedback")
	}
	return buildList(rows, params, total), nil
}

func (s *service) ListByRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID, params pagination.Params) (*ListFeedbackResponse, error) {
	if recordedCourseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recorded course id required")
	}
	params = pagination.Normalize(params, publicPageSize, maxPageSize)
	rows, total, err := s.repo.ListByRecordedCourse(ctx, recordedCourseID, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing recorded course feedback")
	}
	return buildList(rows, params, total), nil
}

func (s *service) ListAll(ctx context.Context, page int) (*ListFeedbackResponse, error) {
	params := pagination.Normalize(pagination.Params{Page: page, PageSize: adminPageSize}, adminPageSize, adminPageSize)
	rows, total, err := s.repo.ListAll(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing feedback")
	}
	return buildList(rows, params, total), nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID) (*FeedbackDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "feedback id required")
	}
	feedback, err := s.repo.SetResolved(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "feedback not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving feedback")
	}
	return FromModel(feedback), nil
}

// qualifies reports whether the submission should move a course average.
func qualifies(f *models.Feedback) bool {
	return f.Rating != nil && f.FeedbackType.Ratable() && (f.CourseID != nil || f.RecordedCourseID != nil)
}

func (s *service) recompute(ctx context.Context, f *models.Feedback) {
	if f.CourseID != nil {
		if err := s.aggregator.RecomputeCourse(ctx, *f.CourseID); err != nil {
			s.logg.Warn(
				s.logg.WithField(ctx, "course_id", f.CourseID.String()),
				"rating recompute failed",
			)
		}
	}
	if f.RecordedCourseID != nil {
		if err := s.aggregator.RecomputeRecordedCourse(ctx, *f.RecordedCourseID); err != nil {
			s.logg.Warn(
				s.logg.WithField(ctx, "recorded_course_id", f.RecordedCourseID.String()),
				"rating recompute failed",
			)
		}
	}
}

func buildList(rows []models.Feedback, params pagination.Params, total int64) *ListFeedbackResponse {
	page := pagination.Build(params, total)
	return &ListFeedbackResponse{
		Success:     true,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalCount:  page.TotalCount,
		Feedbacks:   FromModels(rows),
	}
}
