package memory

import (
	"context"
	"sync"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// CourseRepository is the in-memory course table.
type CourseRepository struct {
	mu      sync.RWMutex
	courses []models.Course
	byID    map[string]int // index into courses
}

// NewCourseRepository creates an empty course table.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		byID: make(map[string]int),
	}
}

// Create inserts a course at the end of the table.
func (r *CourseRepository) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[course.ID]; exists {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "duplicate course id")
	}

	r.byID[course.ID] = len(r.courses)
	r.courses = append(r.courses, *course)
	return nil
}

// List returns the catalog in insertion order.
func (r *CourseRepository) List(_ context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Course, len(r.courses))
	copy(out, r.courses)
	return out, nil
}

// GetByID returns a copy of the course with the given id.
func (r *CourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}

	course := r.courses[idx]
	return &course, nil
}

// AdjustEnrolledCount adds delta to the course's confirmed counter.
func (r *CourseRepository) AdjustEnrolledCount(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}

	next := r.courses[idx].EnrolledCount + delta
	if next < 0 {
		next = 0
	}
	r.courses[idx].EnrolledCount = next
	return nil
}
