package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/types"
)

type stubNotifyRepo struct {
	byID      map[uuid.UUID]*models.Notification
	created   []*models.Notification
	createErr error
}

func newStubNotifyRepo() *stubNotifyRepo {
	return &stubNotifyRepo{byID: map[uuid.UUID]*models.Notification{}}
}

func (s *stubNotifyRepo) Create(ctx context.Context, notification *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	notification.ID = uuid.New()
	s.created = append(s.created, notification)
	s.byID[notification.ID] = notification
	return nil
}

func (s *stubNotifyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return notification, nil
}

func (s *stubNotifyRepo) ListAll(ctx context.Context) ([]models.Notification, error) {
	out := make([]models.Notification, 0, len(s.byID))
	for _, n := range s.byID {
		out = append(out, *n)
	}
	return out, nil
}

func (s *stubNotifyRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

type stubResolver struct {
	emails []string
	err    error
}

func (s *stubResolver) ListNonAdminEmails(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.emails, nil
}

type stubEnqueuer struct {
	enqueued []*models.Notification
}

func (s *stubEnqueuer) Enqueue(notification *models.Notification) {
	s.enqueued = append(s.enqueued, notification)
}

type stubObjectRemover struct {
	removed []string
	err     error
}

func (s *stubObjectRemover) Remove(ctx context.Context, storageKey string) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, storageKey)
	return nil
}

func newTestNotifyService(t *testing.T, repo *stubNotifyRepo, resolver *stubResolver, queue *stubEnqueuer, remover *stubObjectRemover) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:       repo,
		Recipients: resolver,
		Queue:      queue,
		Remover:    remover,
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func TestCreateAndBroadcastSnapshotsRecipients(t *testing.T) {
	repo := newStubNotifyRepo()
	resolver := &stubResolver{emails: []string{"ana@example.com", "bea@example.com"}}
	queue := &stubEnqueuer{}
	svc := newTestNotifyService(t, repo, resolver, queue, &stubObjectRemover{})

	dto, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{
		Title:   "Launch",
		Message: "New course is live.",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com", "bea@example.com"}, dto.Recipients)
	assert.False(t, dto.EmailSent)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, dto.ID, queue.enqueued[0].ID)

	// a later registration never changes the stored snapshot
	resolver.emails = append(resolver.emails, "late@example.com")
	stored := repo.byID[dto.ID]
	assert.Len(t, []string(stored.Recipients), 2)
}

func TestCreateAndBroadcastRecipientLookupFatal(t *testing.T) {
	repo := newStubNotifyRepo()
	resolver := &stubResolver{err: errors.New("users table gone")}
	queue := &stubEnqueuer{}
	svc := newTestNotifyService(t, repo, resolver, queue, &stubObjectRemover{})

	_, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{
		Title:   "Launch",
		Message: "msg",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	// nothing persisted, nothing enqueued
	assert.Empty(t, repo.created)
	assert.Empty(t, queue.enqueued)
}

func TestCreateAndBroadcastEmptyAudienceStillPersists(t *testing.T) {
	repo := newStubNotifyRepo()
	queue := &stubEnqueuer{}
	svc := newTestNotifyService(t, repo, &stubResolver{}, queue, &stubObjectRemover{})

	dto, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{
		Title:   "Quiet launch",
		Message: "nobody registered yet",
	})
	require.NoError(t, err)
	assert.Empty(t, dto.Recipients)
	assert.NotNil(t, dto.Recipients)
	require.Len(t, queue.enqueued, 1)
}

func TestCreateAndBroadcastValidation(t *testing.T) {
	svc := newTestNotifyService(t, newStubNotifyRepo(), &stubResolver{}, &stubEnqueuer{}, &stubObjectRemover{})

	_, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{Title: "  ", Message: "m"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.CreateAndBroadcast(context.Background(), uuid.Nil, CreateNotificationRequest{Title: "t", Message: "m"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteRemovesImageFirst(t *testing.T) {
	repo := newStubNotifyRepo()
	remover := &stubObjectRemover{}
	svc := newTestNotifyService(t, repo, &stubResolver{}, &stubEnqueuer{}, remover)

	dto, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{
		Title:   "With image",
		Message: "m",
		Image:   types.ImageRef{StorageKey: "notifications/img.png", URL: "https://cdn/img.png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), dto.ID))
	assert.Equal(t, []string{"notifications/img.png"}, remover.removed)
	assert.Empty(t, repo.byID)
}

func TestDeleteSurvivesImageRemovalFailure(t *testing.T) {
	repo := newStubNotifyRepo()
	remover := &stubObjectRemover{err: errors.New("bucket unavailable")}
	svc := newTestNotifyService(t, repo, &stubResolver{}, &stubEnqueuer{}, remover)

	dto, err := svc.CreateAndBroadcast(context.Background(), uuid.New(), CreateNotificationRequest{
		Title:   "With image",
		Message: "m",
		Image:   types.ImageRef{StorageKey: "notifications/img.png", URL: "https://cdn/img.png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), dto.ID))
	assert.Empty(t, repo.byID)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestNotifyService(t, newStubNotifyRepo(), &stubResolver{}, &stubEnqueuer{}, &stubObjectRemover{})

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
