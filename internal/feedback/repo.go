package feedback

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
)

// Repository exposes feedback persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a feedback repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new submission.
func (r *Repository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// FindByID loads one submission.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListByCourse returns one newest-first page of a course's feedback plus
// the total row count.
func (r *Repository) ListByCourse(ctx context.Context, courseID uuid.UUID, offset, limit int) ([]models.Feedback, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB { return q.Where("course_id = ?", courseID) }
	return r.listPage(ctx, scope, offset, limit)
}

// ListByRecordedCourse mirrors ListByCourse for recorded courses.
func (r *Repository) ListByRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID, offset, limit int) ([]models.Feedback, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB { return q.Where("recorded_course_id = ?", recordedCourseID) }
	return r.listPage(ctx, scope, offset, limit)
}

// ListAll returns one newest-first page across every submission.
func (r *Repository) ListAll(ctx context.Context, offset, limit int) ([]models.Feedback, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB { return q }
	return r.listPage(ctx, scope, offset, limit)
}

// listPage applies the scope twice so the count and the page never share
// a query chain.
func (r *Repository) listPage(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) ([]models.Feedback, int64, error) {
	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&models.Feedback{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]models.Feedback, 0)
	if err := scope(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetResolved marks a submission handled. Resolving twice is a no-op.
func (r *Repository) SetResolved(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	feedback, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback.IsResolved {
		return feedback, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("id = ?", id).
		UpdateColumn("is_resolved", true).Error; err != nil {
		return nil, err
	}
	feedback.IsResolved = true
	return feedback, nil
}

// AverageCourseRating computes the mean rating over qualifying feedback
// for one course. Qualifying means a non-null rating on a ratable type.
// Returns (0, 0, nil) when no qualifying rows exist.
func (r *Repository) AverageCourseRating(ctx context.Context, courseID uuid.UUID) (float64, int64, error) {
	return r.average(ctx, "course_id", courseID)
}

// AverageRecordedCourseRating mirrors AverageCourseRating for recorded courses.
func (r *Repository) AverageRecordedCourseRating(ctx context.Context, recordedCourseID uuid.UUID) (float64, int64, error) {
	return r.average(ctx, "recorded_course_id", recordedCourseID)
}

func (r *Repository) average(ctx context.Context, column string, id uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where(column+" = ?", id).
		Where("rating IS NOT NULL").
		Where("feedback_type IN ?", []enums.FeedbackType{enums.FeedbackTypeCourse, enums.FeedbackTypeModule}).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, row.Count, nil
	}
	return *row.Avg, row.Count, nil
}
