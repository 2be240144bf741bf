package recorded

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// RecordedCourseDTO is the public shape of a self-paced course.
type RecordedCourseDTO struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	ThumbnailURL *string         `json:"thumbnailUrl,omitempty"`
	AvgRating    float64         `json:"avgRating"`
	Price        decimal.Decimal `json:"price"`
	IsPaid       bool            `json:"isPaid"`
	Videos       types.Videos    `json:"videos"`
	CreatedBy    uuid.UUID       `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateRecordedCourseRequest is the admin payload for publishing a course.
type CreateRecordedCourseRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  *string         `json:"description,omitempty"`
	ThumbnailURL *string         `json:"thumbnailUrl,omitempty"`
	Price        decimal.Decimal `json:"price"`
	IsPaid       bool            `json:"isPaid"`
	Videos       types.Videos    `json:"videos"`
}

// UpdateRecordedCourseRequest carries partial edits. Nil fields are left
// untouched; sending videos replaces the whole ordered list.
type UpdateRecordedCourseRequest struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	ThumbnailURL *string          `json:"thumbnailUrl,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	IsPaid       *bool            `json:"isPaid,omitempty"`
	Videos       *types.Videos    `json:"videos,omitempty"`
}

// RecordedCourseResponse wraps a single course.
type RecordedCourseResponse struct {
	Success bool               `json:"success"`
	Course  *RecordedCourseDTO `json:"course"`
}

// ListRecordedCoursesResponse is one page of the catalog.
type ListRecordedCoursesResponse struct {
	Success bool                `json:"success"`
	Courses []RecordedCourseDTO `json:"courses"`
	HasMore bool                `json:"hasMore"`
	Page    int                 `json:"page"`
}

// DeleteRecordedCourseResponse acknowledges a removal.
type DeleteRecordedCourseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func FromModel(c *models.RecordedCourse) *RecordedCourseDTO {
	if c == nil {
		return nil
	}
	videos := c.Videos
	if videos == nil {
		videos = types.Videos{}
	}
	return &RecordedCourseDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ThumbnailURL: c.ThumbnailURL,
		AvgRating:    c.AvgRating,
		Price:        c.Price,
		IsPaid:       c.IsPaid,
		Videos:       videos,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromModels(rows []models.RecordedCourse) []RecordedCourseDTO {
	out := make([]RecordedCourseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
