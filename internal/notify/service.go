package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

// Service defines broadcast notification operations.
type Service interface {
	CreateAndBroadcast(ctx context.Context, sentBy uuid.UUID, req CreateNotificationRequest) (*NotificationDTO, error)
	List(ctx context.Context) ([]NotificationDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*NotificationDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListAll(ctx context.Context) ([]models.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// recipientResolver snapshots the audience at creation time.
type recipientResolver interface {
	ListNonAdminEmails(ctx context.Context) ([]string, error)
}

// broadcastEnqueuer hands the persisted notification to the worker.
type broadcastEnqueuer interface {
	Enqueue(notification *models.Notification)
}

// objectRemover deletes an uploaded object by storage key.
type objectRemover interface {
	Remove(ctx context.Context, storageKey string) error
}

type service struct {
	repo       repository
	recipients recipientResolver
	queue      broadcastEnqueuer
	remover    objectRemover
	logg       *logger.Logger
}

// ServiceParams bundles the notify service dependencies.
type ServiceParams struct {
	Repo       repository
	Recipients recipientResolver
	Queue      broadcastEnqueuer
	Remover    objectRemover
	Logger     *logger.Logger
}

// NewService constructs the notify service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification repository required")
	}
	if params.Recipients == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recipient resolver required")
	}
	if params.Queue == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "broadcast queue required")
	}
	if params.Remover == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object remover required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:       params.Repo,
		recipients: params.Recipients,
		queue:      params.Queue,
		remover:    params.Remover,
		logg:       params.Logger,
	}, nil
}

// CreateAndBroadcast resolves the audience, persists the notification
// with its recipient snapshot, then enqueues it for dispatch. A failed
// recipient lookup aborts the whole operation; nothing is persisted.
// The response only acknowledges acceptance, never delivery.
func (s *service) CreateAndBroadcast(ctx context.Context, sentBy uuid.UUID, req CreateNotificationRequest) (*NotificationDTO, error) {
	if sentBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender id required")
	}
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and message are required")
	}

	emails, err := s.recipients.ListNonAdminEmails(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving recipients")
	}

	notification := &models.Notification{
		Title:       title,
		Message:     message,
		Image:       req.Image,
		MainLink:    req.MainLink,
		AnchorLinks: req.AnchorLinks,
		SentBy:      sentBy,
		Recipients:  pq.StringArray(emails),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating notification")
	}

	s.queue.Enqueue(notification)

	s.logg.Info(
		s.logg.WithFields(ctx, map[string]any{
			"notification_id": notification.ID.String(),
			"recipients":      len(emails),
		}),
		"notification accepted for broadcast",
	)
	return FromModel(notification), nil
}

func (s *service) List(ctx context.Context) ([]NotificationDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing notifications")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*NotificationDTO, error) {
	notification, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(notification), nil
}

// Delete removes the record after a best-effort delete of its image
// object. A failed image delete is logged and never blocks the record
// deletion.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	notification, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if notification.Image.StorageKey != "" {
		if err := s.remover.Remove(ctx, notification.Image.StorageKey); err != nil {
			s.logg.Warn(
				s.logg.WithField(ctx, "storage_key", notification.Image.StorageKey),
				"failed to delete notification image",
			)
		}
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting notification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading notification")
	}
	return notification, nil
}
