package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
)

// FeedbackDTO is the public shape of a submission.
type FeedbackDTO struct {
	ID               uuid.UUID          `json:"id"`
	UserID           uuid.UUID          `json:"userId"`
	CourseID         *uuid.UUID         `json:"courseId,omitempty"`
	RecordedCourseID *uuid.UUID         `json:"recordedCourseId,omitempty"`
	FeedbackType     enums.FeedbackType `json:"feedbackType"`
	Rating           *int               `json:"rating,omitempty"`
	Message          string             `json:"message"`
	IsResolved       bool               `json:"isResolved"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// SubmitFeedbackRequest is the payload for a new submission. The user id
// comes from the access token, never from the body.
type SubmitFeedbackRequest struct {
	CourseID         *uuid.UUID `json:"courseId,omitempty"`
	RecordedCourseID *uuid.UUID `json:"recordedCourseId,omitempty"`
	FeedbackType     string     `json:"feedbackType" validate:"required"`
	Rating           *int       `json:"rating,omitempty"`
	Message          string     `json:"message" validate:"required"`
}

// SubmitFeedbackResponse wraps a created submission.
type SubmitFeedbackResponse struct {
	Success  bool         `json:"success"`
	Feedback *FeedbackDTO `json:"feedback"`
}

// ListFeedbackResponse is one page of submissions. Page metadata is
// flat on the envelope, the shape admin and course pages consume.
type ListFeedbackResponse struct {
	Success     bool          `json:"success"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalCount  int64         `json:"totalCount"`
	Feedbacks   []FeedbackDTO `json:"feedbacks"`
}

// ResolveFeedbackResponse acknowledges a resolution.
type ResolveFeedbackResponse struct {
	Success  bool         `json:"success"`
	Feedback *FeedbackDTO `json:"feedback"`
}

func FromModel(f *models.Feedback) *FeedbackDTO {
	if f == nil {
		return nil
	}
	return &FeedbackDTO{
		ID:               f.ID,
		UserID:           f.UserID,
		CourseID:         f.CourseID,
		RecordedCourseID: f.RecordedCourseID,
		FeedbackType:     f.FeedbackType,
		Rating:           f.Rating,
		Message:          f.Message,
		IsResolved:       f.IsResolved,
		CreatedAt:        f.CreatedAt,
	}
}

func FromModels(rows []models.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
