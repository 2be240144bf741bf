package courses

import (
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// CourseDTO is the public catalog shape.
type CourseDTO struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Category         string           `json:"category"`
	About            *string          `json:"about,omitempty"`
	Description      *string          `json:"description,omitempty"`
	AvgRating        float64          `json:"avgRating"`
	EnrolledStudents int              `json:"enrolledStudents"`
	Language         *string          `json:"language,omitempty"`
	Instructor       *string          `json:"instructor,omitempty"`
	Curriculum       []string         `json:"curriculum"`
	WhatYouWillLearn []string         `json:"whatYouWillLearn"`
	DurationMonths   int              `json:"durationMonths"`
	Skill            enums.SkillLevel `json:"skill"`
	Certificate      bool             `json:"certificate"`
	LectureCount     int              `json:"lectureCount"`
	CoverImage       types.ImageRef   `json:"coverImage"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// CreateCourseRequest is the admin payload for adding a catalog entry.
type CreateCourseRequest struct {
	Title            string         `json:"title" validate:"required"`
	Category         string         `json:"category" validate:"required"`
	About            *string        `json:"about,omitempty"`
	Description      *string        `json:"description,omitempty"`
	EnrolledStudents int            `json:"enrolledStudents" validate:"gte=0"`
	Language         *string        `json:"language,omitempty"`
	Instructor       *string        `json:"instructor,omitempty"`
	Curriculum       []string       `json:"curriculum,omitempty"`
	WhatYouWillLearn []string       `json:"whatYouWillLearn,omitempty"`
	DurationMonths   int            `json:"durationMonths" validate:"gte=0"`
	Skill            string         `json:"skill,omitempty"`
	Certificate      bool           `json:"certificate"`
	LectureCount     int            `json:"lectureCount" validate:"gte=0"`
	CoverImage       types.ImageRef `json:"coverImage"`
}

// UpdateCourseRequest carries partial edits. Nil fields are left untouched.
type UpdateCourseRequest struct {
	Title            *string         `json:"title,omitempty"`
	Category         *string         `json:"category,omitempty"`
	About            *string         `json:"about,omitempty"`
	Description      *string         `json:"description,omitempty"`
	EnrolledStudents *int            `json:"enrolledStudents,omitempty"`
	Language         *string         `json:"language,omitempty"`
	Instructor       *string         `json:"instructor,omitempty"`
	Curriculum       []string        `json:"curriculum,omitempty"`
	WhatYouWillLearn []string        `json:"whatYouWillLearn,omitempty"`
	DurationMonths   *int            `json:"durationMonths,omitempty"`
	Skill            *string         `json:"skill,omitempty"`
	Certificate      *bool           `json:"certificate,omitempty"`
	LectureCount     *int            `json:"lectureCount,omitempty"`
	CoverImage       *types.ImageRef `json:"coverImage,omitempty"`
}

// CourseResponse wraps a single course.
type CourseResponse struct {
	Success bool       `json:"success"`
	Course  *CourseDTO `json:"course"`
}

// ListCoursesResponse wraps the full catalog.
type ListCoursesResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Courses []CourseDTO `json:"courses"`
}

// DeleteCourseResponse acknowledges a removal.
type DeleteCourseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func FromModel(c *models.Course) *CourseDTO {
	if c == nil {
		return nil
	}
	return &CourseDTO{
		ID:               c.ID,
		Title:            c.Title,
		Category:         c.Category,
		About:            c.About,
		Description:      c.Description,
		AvgRating:        c.AvgRating,
		EnrolledStudents: c.EnrolledStudents,
		Language:         c.Language,
		Instructor:       c.Instructor,
		Curriculum:       append([]string{}, c.Curriculum...),
		WhatYouWillLearn: append([]string{}, c.WhatYouWillLearn...),
		DurationMonths:   c.DurationMonths,
		Skill:            c.Skill,
		Certificate:      c.Certificate,
		LectureCount:     c.LectureCount,
		CoverImage:       c.CoverImage,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func FromModels(rows []models.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
