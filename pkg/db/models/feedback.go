package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/enums"
)

// Feedback is one submission from a user. A rating is only meaningful for
// course and module feedback.
type Feedback struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	CourseID         *uuid.UUID         `gorm:"column:course_id;type:uuid;index"`
	RecordedCourseID *uuid.UUID         `gorm:"column:recorded_course_id;type:uuid;index"`
	FeedbackType     enums.FeedbackType `gorm:"column:feedback_type;type:feedback_type;not null"`
	Rating           *int               `gorm:"column:rating"`
	Message          string             `gorm:"column:message;type:text;not null"`
	IsResolved       bool               `gorm:"column:is_resolved;not null;default:false"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
}
