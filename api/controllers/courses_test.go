package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/internal/courses"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

type stubCourseService struct {
	sample  []courses.CourseDTO
	search  []courses.CourseDTO
	created *courses.CourseDTO

	searchKeyword string
	createReq     *courses.CreateCourseRequest
	deletedID     uuid.UUID
}

func (s *stubCourseService) Create(ctx context.Context, req courses.CreateCourseRequest) (*courses.CourseDTO, error) {
	s.createReq = &req
	return s.created, nil
}

func (s *stubCourseService) Update(ctx context.Context, id uuid.UUID, req courses.UpdateCourseRequest) (*courses.CourseDTO, error) {
	return s.created, nil
}

func (s *stubCourseService) Get(ctx context.Context, id uuid.UUID) (*courses.CourseDTO, error) {
	return s.created, nil
}

func (s *stubCourseService) List(ctx context.Context) ([]courses.CourseDTO, error) {
	return s.sample, nil
}

func (s *stubCourseService) Sample(ctx context.Context) ([]courses.CourseDTO, error) {
	return s.sample, nil
}

func (s *stubCourseService) Search(ctx context.Context, keyword string) ([]courses.CourseDTO, error) {
	s.searchKeyword = keyword
	return s.search, nil
}

func (s *stubCourseService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestSampleCourses(t *testing.T) {
	stub := &stubCourseService{sample: []courses.CourseDTO{{ID: uuid.New(), Title: "Go Basics"}}}

	req := httptest.NewRequest(http.MethodGet, "/course/get", nil)
	rec := httptest.NewRecorder()
	SampleCourses(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body courses.ListCoursesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Count != 1 || len(body.Courses) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSearchCoursesPassesKeyword(t *testing.T) {
	stub := &stubCourseService{}

	req := httptest.NewRequest(http.MethodGet, "/course/search?keyword=%20data%20", nil)
	rec := httptest.NewRecorder()
	SearchCourses(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.searchKeyword != "data" {
		t.Fatalf("expected trimmed keyword, got %q", stub.searchKeyword)
	}
}

func TestCreateCourseReturns201(t *testing.T) {
	id := uuid.New()
	stub := &stubCourseService{created: &courses.CourseDTO{ID: id, Title: "Cloud Ops"}}

	body := `{"title":"Cloud Ops","category":"devops"}`
	req := httptest.NewRequest(http.MethodPost, "/course/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CreateCourse(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.createReq == nil || stub.createReq.Title != "Cloud Ops" {
		t.Fatalf("service did not receive payload: %+v", stub.createReq)
	}
}

func TestCreateCourseRejectsUnknownFields(t *testing.T) {
	stub := &stubCourseService{}

	body := `{"title":"x","category":"y","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/course/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CreateCourse(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if stub.createReq != nil {
		t.Fatal("service should not be called on a bad payload")
	}
}

func TestDeleteCourseInvalidID(t *testing.T) {
	stub := &stubCourseService{}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "not-a-uuid")
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodDelete, "/course/not-a-uuid/delete", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	DeleteCourse(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestDeleteCourseSuccess(t *testing.T) {
	stub := &stubCourseService{}
	id := uuid.New()

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id.String())
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodDelete, "/course/"+id.String()+"/delete", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	DeleteCourse(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.deletedID != id {
		t.Fatalf("expected delete of %s, got %s", id, stub.deletedID)
	}
}

func TestSampleCoursesNilService(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/course/get", nil)
	rec := httptest.NewRecorder()
	SampleCourses(nil, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
