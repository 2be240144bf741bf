package courses

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	"github.com/nishantpawar/institute-backend/pkg/enums"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

// sampleSize is how many courses the landing page highlights.
const sampleSize = 5

// Service defines course catalog operations.
type Service interface {
	Create(ctx context.Context, req CreateCourseRequest) (*CourseDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCourseRequest) (*CourseDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CourseDTO, error)
	List(ctx context.Context) ([]CourseDTO, error)
	Sample(ctx context.Context) ([]CourseDTO, error)
	Search(ctx context.Context, keyword string) ([]CourseDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	RandomSample(ctx context.Context, n int) ([]models.Course, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]models.Course, error)
	Save(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo repository
}

// NewService wires the course catalog dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "courses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateCourseRequest) (*CourseDTO, error) {
	skill, err := resolveSkill(req.Skill)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:            strings.TrimSpace(req.Title),
		Category:         strings.TrimSpace(req.Category),
		About:            req.About,
		Description:      req.Description,
		EnrolledStudents: req.EnrolledStudents,
		Language:         req.Language,
		Instructor:       req.Instructor,
		Curriculum:       pq.StringArray(req.Curriculum),
		WhatYouWillLearn: pq.StringArray(req.WhatYouWillLearn),
		DurationMonths:   req.DurationMonths,
		Skill:            skill,
		Certificate:      req.Certificate,
		LectureCount:     req.LectureCount,
		CoverImage:       req.CoverImage,
	}
	if course.Title == "" || course.Category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and category are required")
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating course")
	}
	return FromModel(course), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCourseRequest) (*CourseDTO, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		course.Category = strings.TrimSpace(*req.Category)
	}
	if req.About != nil {
		course.About = req.About
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.EnrolledStudents != nil {
		course.EnrolledStudents = *req.EnrolledStudents
	}
	if req.Language != nil {
		course.Language = req.Language
	}
	if req.Instructor != nil {
		course.Instructor = req.Instructor
	}
	if req.Curriculum != nil {
		course.Curriculum = pq.StringArray(req.Curriculum)
	}
	if req.WhatYouWillLearn != nil {
		course.WhatYouWillLearn = pq.StringArray(req.WhatYouWillLearn)
	}
	if req.DurationMonths != nil {
		course.DurationMonths = *req.DurationMonths
	}
	if req.Skill != nil {
		skill, err := resolveSkill(*req.Skill)
		if err != nil {
			return nil, err
		}
		course.Skill = skill
	}
	if req.Certificate != nil {
		course.Certificate = *req.Certificate
	}
	if req.LectureCount != nil {
		course.LectureCount = *req.LectureCount
	}
	if req.CoverImage != nil {
		course.CoverImage = *req.CoverImage
	}

	if course.Title == "" || course.Category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and category cannot be blank")
	}

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating course")
	}
	return FromModel(course), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CourseDTO, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(course), nil
}

func (s *service) List(ctx context.Context) ([]CourseDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing courses")
	}
	return FromModels(rows), nil
}

// Sample serves the landing page with a rotating selection.
func (s *service) Sample(ctx context.Context) ([]CourseDTO, error) {
	rows, err := s.repo.RandomSample(ctx, sampleSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sampling courses")
	}
	return FromModels(rows), nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]CourseDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "keyword is required")
	}
	rows, err := s.repo.SearchByKeyword(ctx, keyword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "searching courses")
	}
	return FromModels(rows), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "course id required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting course")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "course not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "course id required")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "course not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading course")
	}
	return course, nil
}

func resolveSkill(raw string) (enums.SkillLevel, error) {
	if strings.TrimSpace(raw) == "" {
		return enums.SkillLevelBeginner, nil
	}
	skill, err := enums.ParseSkillLevel(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return skill, nil
}
