// Package repositories defines the storage contracts for the domain tables.
//
// Each entity gets one table interface; the service layer is the only
// consumer and the only permitted mutator of stored state. Implementations
// live in the memory (default) and postgres subpackages, so a real database
// can replace the seeded in-memory tables without touching any service
// signature.
package repositories

import (
	"context"
	"time"

	"github.com/deniz/learnhub/internal/app/models"
)

// CourseRepository stores the course catalog.
type CourseRepository interface {
	// Create inserts a course. Used by seeding only; the catalog is
	// immutable afterwards except for the enrolled counter.
	Create(ctx context.Context, course *models.Course) error
	// List returns every course in stable insertion order.
	List(ctx context.Context) ([]models.Course, error)
	// GetByID returns apperrors.ErrCourseNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// AdjustEnrolledCount atomically adds delta to the course's confirmed
	// counter. The counter never drops below zero.
	AdjustEnrolledCount(ctx context.Context, id string, delta int) error
}

// EnrollmentRepository stores enrollment rows.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// ListByUser returns every row for the user, any status, insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	// ListByCourse returns every row for the course, any status.
	ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
	// GetByUserAndCourse returns apperrors.ErrEnrollmentNotFound when no row
	// exists for the pair.
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	// UpdateStatus flips the row's status and refreshes its UpdatedAt.
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, updatedAt time.Time) error
}

// MessageRepository stores the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// ListByCourseAndUser returns messages in the course where the user is
	// sender or recipient, in log order.
	ListByCourseAndUser(ctx context.Context, courseID, userID string) ([]models.Message, error)
	// ListByParticipant returns every message where the user is sender or
	// recipient, in log order.
	ListByParticipant(ctx context.Context, userID string) ([]models.Message, error)
	// CountUnread counts messages addressed to the user that are unread.
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead sets the read flag. Unknown ids are a no-op, not an error.
	MarkRead(ctx context.Context, id string) error
}

// UserRepository stores the user directory.
type UserRepository interface {
	// Create appends a directory entry. Returns
	// apperrors.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns apperrors.ErrUserNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns apperrors.ErrUserNotFound when no entry matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailExists reports whether the email is already in the directory.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Courses     CourseRepository
	Enrollments EnrollmentRepository
	Messages    MessageRepository
	Users       UserRepository
}
