package memory

import (
	"context"
	"sync"
	"time"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// EnrollmentRepository is the in-memory enrollment table.
type EnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments []models.Enrollment
}

// NewEnrollmentRepository creates an empty enrollment table.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{}
}

// Create appends an enrollment row.
func (r *EnrollmentRepository) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enrollments = append(r.enrollments, *enrollment)
	return nil
}

// ListByUser returns every row for the user in insertion order.
func (r *EnrollmentRepository) ListByUser(_ context.Context, userID string) ([]models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListByCourse returns every row for the course in insertion order.
func (r *EnrollmentRepository) ListByCourse(_ context.Context, courseID string) ([]models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Enrollment
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetByUserAndCourse returns the row for the pair, any status.
func (r *EnrollmentRepository) GetByUserAndCourse(_ context.Context, userID, courseID string) (*models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			row := e
			return &row, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

// UpdateStatus flips the row's status and refreshes UpdatedAt.
func (r *EnrollmentRepository) UpdateStatus(_ context.Context, id string, status models.EnrollmentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.enrollments {
		if r.enrollments[i].ID == id {
			r.enrollments[i].Status = status
			r.enrollments[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}
