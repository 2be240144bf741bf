package courses

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

type stubRepo struct {
	byID      map[uuid.UUID]*models.Course
	createErr error
	saveErr   error
	saved     []*models.Course
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]*models.Course{}}
}

func (s *stubRepo) Create(ctx context.Context, course *models.Course) error {
	if s.createErr != nil {
		return s.createErr
	}
	course.ID = uuid.New()
	s.byID[course.ID] = course
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *course
	return &clone, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]models.Course, error) {
	out := make([]models.Course, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubRepo) RandomSample(ctx context.Context, n int) ([]models.Course, error) {
	all, _ := s.ListAll(ctx)
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *stubRepo) SearchByKeyword(ctx context.Context, keyword string) ([]models.Course, error) {
	var out []models.Course
	for _, c := range s.byID {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(keyword)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubRepo) Save(ctx context.Context, course *models.Course) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, course)
	s.byID[course.ID] = course
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func TestCreateCourse(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateCourseRequest{
		Title:    "  Data Engineering  ",
		Category: "engineering",
		Skill:    "advanced",
	})
	require.NoError(t, err)
	assert.Equal(t, "Data Engineering", dto.Title)
	assert.Equal(t, enums.SkillLevelAdvanced, dto.Skill)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Zero(t, dto.AvgRating)
}

func TestCreateCourseDefaultsSkillToBeginner(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateCourseRequest{Title: "Intro", Category: "general"})
	require.NoError(t, err)
	assert.Equal(t, enums.SkillLevelBeginner, dto.Skill)
}

func TestCreateCourseRejectsUnknownSkill(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCourseRequest{Title: "Intro", Category: "general", Skill: "ninja"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateCourseAppliesPartialFields(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateCourseRequest{Title: "Intro", Category: "general"})
	require.NoError(t, err)

	title := "Intro to Go"
	lectures := 42
	updated, err := svc.Update(context.Background(), created.ID, UpdateCourseRequest{
		Title:        &title,
		LectureCount: &lectures,
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", updated.Title)
	assert.Equal(t, 42, updated.LectureCount)
	// untouched fields survive
	assert.Equal(t, "general", updated.Category)
}

func TestUpdateCourseNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	title := "x"
	_, err = svc.Update(context.Background(), uuid.New(), UpdateCourseRequest{Title: &title})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteCourse(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateCourseRequest{Title: "Intro", Category: "general"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err = svc.Delete(context.Background(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetCourseValidatesID(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSearchRequiresKeyword(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), "   ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSearchMatchesTitle(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCourseRequest{Title: "Go Fundamentals", Category: "programming"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateCourseRequest{Title: "Watercolor Basics", Category: "art"})
	require.NoError(t, err)

	found, err := svc.Search(context.Background(), "fundamentals")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Go Fundamentals", found[0].Title)
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}
