package feedback

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

// ratingSource reads the qualifying-rating aggregates for a course.
type ratingSource interface {
	AverageCourseRating(ctx context.Context, courseID uuid.UUID) (float64, int64, error)
	AverageRecordedCourseRating(ctx context.Context, recordedCourseID uuid.UUID) (float64, int64, error)
}

// ratingWriter persists the derived average onto the catalog row.
type ratingWriter interface {
	UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error
}

// Aggregator recomputes per-course average ratings from scratch. Each
// course key is serialized behind its own mutex so two concurrent
// submissions for the same course cannot interleave the read and the
// write; distinct courses recompute in parallel.
type Aggregator struct {
	source   ratingSource
	courses  ratingWriter
	recorded ratingWriter

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// AggregatorParams bundles the aggregator dependencies.
type AggregatorParams struct {
	Source          ratingSource
	Courses         ratingWriter
	RecordedCourses ratingWriter
}

// NewAggregator constructs the rating aggregator.
func NewAggregator(params AggregatorParams) (*Aggregator, error) {
	if params.Source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rating source required")
	}
	if params.Courses == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "course rating writer required")
	}
	if params.RecordedCourses == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recorded course rating writer required")
	}
	return &Aggregator{
		source:   params.Source,
		courses:  params.Courses,
		recorded: params.RecordedCourses,
		locks:    map[string]*sync.Mutex{},
	}, nil
}

// RecomputeCourse rereads every qualifying rating for the course and
// writes the rounded mean. No qualifying rows writes zero.
func (a *Aggregator) RecomputeCourse(ctx context.Context, courseID uuid.UUID) error {
	lock := a.lockFor("course:" + courseID.String())
	lock.Lock()
	defer lock.Unlock()

	avg, count, err := a.source.AverageCourseRating(ctx, courseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "averaging course ratings")
	}
	if err := a.courses.UpdateAvgRating(ctx, courseID, roundRating(avg, count)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing course rating")
	}
	return nil
}

// RecomputeRecordedCourse mirrors RecomputeCourse for recorded courses.
func (a *Aggregator) RecomputeRecordedCourse(ctx context.Context, recordedCourseID uuid.UUID) error {
	lock := a.lockFor("recorded:" + recordedCourseID.String())
	lock.Lock()
	defer lock.Unlock()

	avg, count, err := a.source.AverageRecordedCourseRating(ctx, recordedCourseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "averaging recorded course ratings")
	}
	if err := a.recorded.UpdateAvgRating(ctx, recordedCourseID, roundRating(avg, count)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing recorded course rating")
	}
	return nil
}

func (a *Aggregator) lockFor(key string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[key] = lock
	}
	return lock
}

func roundRating(avg float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(avg*10) / 10
}
