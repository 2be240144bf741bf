package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

// NotificationDTO is the public shape of a broadcast.
type NotificationDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Image       types.ImageRef    `json:"image"`
	MainLink    *string           `json:"mainLink,omitempty"`
	AnchorLinks types.AnchorLinks `json:"anchorLinks"`
	SentBy      uuid.UUID         `json:"sentBy"`
	Recipients  []string          `json:"recipients"`
	EmailSent   bool              `json:"emailSent"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CreateNotificationRequest is the admin payload for a new broadcast.
type CreateNotificationRequest struct {
	Title       string            `json:"title" validate:"required"`
	Message     string            `json:"message" validate:"required"`
	Image       types.ImageRef    `json:"image"`
	MainLink    *string           `json:"mainLink,omitempty"`
	AnchorLinks types.AnchorLinks `json:"anchorLinks,omitempty"`
}

// NotificationResponse wraps a single broadcast.
type NotificationResponse struct {
	Success      bool             `json:"success"`
	Notification *NotificationDTO `json:"notification"`
}

// ListNotificationsResponse wraps the broadcast history.
type ListNotificationsResponse struct {
	Success       bool              `json:"success"`
	Count         int               `json:"count"`
	Notifications []NotificationDTO `json:"notifications"`
}

// DeleteNotificationResponse acknowledges a removal.
type DeleteNotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func FromModel(n *models.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	links := n.AnchorLinks
	if links == nil {
		links = types.AnchorLinks{}
	}
	return &NotificationDTO{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Image:       n.Image,
		MainLink:    n.MainLink,
		AnchorLinks: links,
		SentBy:      n.SentBy,
		Recipients:  append([]string{}, n.Recipients...),
		EmailSent:   n.EmailSent,
		CreatedAt:   n.CreatedAt,
	}
}

func FromModels(rows []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
