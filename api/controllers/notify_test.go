package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/api/middleware"
	"github.com/nishantpawar/institute-backend/internal/notify"
)

type stubNotifyService struct {
	sentBy    uuid.UUID
	createReq *notify.CreateNotificationRequest
	deletedID uuid.UUID
}

func (s *stubNotifyService) CreateAndBroadcast(ctx context.Context, sentBy uuid.UUID, req notify.CreateNotificationRequest) (*notify.NotificationDTO, error) {
	s.sentBy = sentBy
	s.createReq = &req
	return &notify.NotificationDTO{ID: uuid.New(), Title: req.Title, Message: req.Message}, nil
}

func (s *stubNotifyService) List(ctx context.Context) ([]notify.NotificationDTO, error) {
	return nil, nil
}

func (s *stubNotifyService) Get(ctx context.Context, id uuid.UUID) (*notify.NotificationDTO, error) {
	return &notify.NotificationDTO{ID: id}, nil
}

func (s *stubNotifyService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

func TestCreateNotificationAcceptsAndReturns201(t *testing.T) {
	stub := &stubNotifyService{}
	adminID := uuid.New()

	body := `{"title":"Exam schedule","message":"Finals start Monday."}`
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUser(req.Context(), adminID.String(), "admin@example.com", true))
	rec := httptest.NewRecorder()
	CreateNotification(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.sentBy != adminID {
		t.Fatalf("expected sender %s, got %s", adminID, stub.sentBy)
	}
	if stub.createReq == nil || stub.createReq.Title != "Exam schedule" {
		t.Fatalf("service did not receive payload: %+v", stub.createReq)
	}
}

func TestCreateNotificationWithoutIdentity(t *testing.T) {
	stub := &stubNotifyService{}

	body := `{"title":"t","message":"m"}`
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CreateNotification(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if stub.createReq != nil {
		t.Fatal("service should not be called without an identity")
	}
}

func TestCreateNotificationRejectsMissingTitle(t *testing.T) {
	stub := &stubNotifyService{}
	adminID := uuid.New()

	body := `{"message":"m"}`
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUser(req.Context(), adminID.String(), "admin@example.com", true))
	rec := httptest.NewRecorder()
	CreateNotification(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
