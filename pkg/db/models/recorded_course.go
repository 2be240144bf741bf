package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantpawar/institute-backend/pkg/types"
)

// RecordedCourse is a self-paced video course.
type RecordedCourse struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string          `gorm:"column:title;not null"`
	Description  *string         `gorm:"column:description"`
	ThumbnailURL *string         `gorm:"column:thumbnail_url"`
	AvgRating    float64         `gorm:"column:avg_rating;not null;default:0"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	IsPaid       bool            `gorm:"column:is_paid;not null;default:false"`
	Videos       types.Videos    `gorm:"column:videos;type:jsonb"`
	CreatedBy    uuid.UUID       `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
