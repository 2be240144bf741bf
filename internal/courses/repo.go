package courses

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
)

// Repository exposes course persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a courses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new course.
func (r *Repository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindByID loads one course.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ListAll returns the whole catalog, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Course, error) {
	var rows []models.Course
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RandomSample returns up to n courses in random order. Used by the
// landing page so repeat visits rotate the highlighted catalog.
func (r *Repository) RandomSample(ctx context.Context, n int) ([]models.Course, error) {
	var rows []models.Course
	if err := r.db.WithContext(ctx).
		Order("RANDOM()").
		Limit(n).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchByKeyword matches the keyword case-insensitively against title
// and category, newest first.
func (r *Repository) SearchByKeyword(ctx context.Context, keyword string) ([]models.Course, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var rows []models.Course
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists the full course row.
func (r *Repository) Save(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete removes the course. Feedback rows cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// UpdateAvgRating writes the derived aggregate for one course.
func (r *Repository) UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		UpdateColumn("avg_rating", avg).Error
}
