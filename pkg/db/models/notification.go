package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nishantpawar/institute-backend/pkg/types"
)

// Notification is an admin-authored broadcast. Recipients is the email
// snapshot captured at creation time and never rewritten afterwards.
type Notification struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string            `gorm:"column:title;not null"`
	Message     string            `gorm:"column:message;type:text;not null"`
	Image       types.ImageRef    `gorm:"column:image;type:jsonb"`
	MainLink    *string           `gorm:"column:main_link"`
	AnchorLinks types.AnchorLinks `gorm:"column:anchor_links;type:jsonb"`
	SentBy      uuid.UUID         `gorm:"column:sent_by;type:uuid;not null"`
	Recipients  pq.StringArray    `gorm:"column:recipients;type:text[];not null;default:ARRAY[]::text[]"`
	EmailSent   bool              `gorm:"column:email_sent;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
