package recorded

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
)

// Repository exposes recorded-course persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a recorded-courses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new recorded course.
func (r *Repository) Create(ctx context.Context, course *models.RecordedCourse) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindByID loads one recorded course.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RecordedCourse, error) {
	var course models.RecordedCourse
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ListPage returns one newest-first page plus whether more rows remain.
// It fetches limit+1 rows so hasMore never needs a second count query.
func (r *Repository) ListPage(ctx context.Context, offset, limit int) ([]models.RecordedCourse, bool, error) {
	var rows []models.RecordedCourse
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit + 1).
		Find(&rows).Error; err != nil {
		return nil, false, err
	}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return rows, hasMore, nil
}

// Save persists the full recorded-course row.
func (r *Repository) Save(ctx context.Context, course *models.RecordedCourse) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete removes the recorded course. Feedback rows cascade at the
// database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.RecordedCourse{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// UpdateAvgRating writes the derived aggregate for one recorded course.
func (r *Repository) UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error {
	return r.db.WithContext(ctx).
		Model(&models.RecordedCourse{}).
		Where("id = ?", id).
		UpdateColumn("avg_rating", avg).Error
}
