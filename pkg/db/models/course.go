package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nishantpawar/institute-backend/pkg/enums"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// Course is a catalog entry for an instructor-led program.
type Course struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title            string           `gorm:"column:title;not null"`
	Category         string           `gorm:"column:category;not null"`
	About            *string          `gorm:"column:about"`
	Description      *string          `gorm:"column:description"`
	AvgRating        float64          `gorm:"column:avg_rating;not null;default:0"`
	EnrolledStudents int              `gorm:"column:enrolled_students;not null;default:0"`
	Language         *string          `gorm:"column:language"`
	Instructor       *string          `gorm:"column:instructor"`
	Curriculum       pq.StringArray   `gorm:"column:curriculum;type:text[]"`
	WhatYouWillLearn pq.StringArray   `gorm:"column:what_you_will_learn;type:text[]"`
	DurationMonths   int              `gorm:"column:duration_months;not null;default:0"`
	Skill            enums.SkillLevel `gorm:"column:skill;type:skill_level;not null;default:'beginner'"`
	Certificate      bool             `gorm:"column:certificate;not null;default:false"`
	LectureCount     int              `gorm:"column:lecture_count;not null;default:0"`
	CoverImage       types.ImageRef   `gorm:"column:cover_image;type:jsonb"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
