package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// EnrollmentService handles the enrollment lifecycle for (user, course) pairs
type EnrollmentService interface {
	GetUserEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error)
	GetUserEnrolledCourses(ctx context.Context, userID string) ([]models.Course, error)
	EnrollInCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	CancelEnrollment(ctx context.Context, userID, courseID string) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	courseRepo     repositories.CourseRepository
	enrollmentRepo repositories.EnrollmentRepository
	logger         zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	courseRepo repositories.CourseRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// GetUserEnrollments returns every enrollment row for the user, any status.
func (s *enrollmentServiceImpl) GetUserEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

// GetUserEnrolledCourses joins the user's confirmed enrollments to the
// catalog. Rows whose course lookup fails are dropped rather than failing
// the whole view.
func (s *enrollmentServiceImpl) GetUserEnrolledCourses(ctx context.Context, userID string) ([]models.Course, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var courses []models.Course
	for _, e := range enrollments {
		if e.Status != models.EnrollmentConfirmed {
			continue
		}
		course, err := s.courseRepo.GetByID(ctx, e.CourseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				s.logger.Warn().
					Str("courseID", e.CourseID).
					Str("enrollmentID", e.ID).
					Msg("Enrollment references unknown course, skipping")
				continue
			}
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// EnrollInCourse creates a new enrollment row for the pair.
//
// The duplicate guard matches any existing row regardless of status,
// including cancelled ones, so a pair can enroll at most once ever. The row
// is confirmed while seats remain and waitlisted once the course is full;
// only confirmed rows count against capacity.
func (s *enrollmentServiceImpl) EnrollInCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, apperrors.ErrAlreadyEnrolled
	} else if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return nil, err
	}

	status := models.EnrollmentConfirmed
	if course.IsFull() {
		status = models.EnrollmentWaitlisted
	}

	now := s.now()
	enrollment := &models.Enrollment{
		ID:         s.newID(),
		CourseID:   courseID,
		UserID:     userID,
		Status:     status,
		EnrolledAt: now,
		UpdatedAt:  now,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	if status == models.EnrollmentConfirmed {
		if err := s.courseRepo.AdjustEnrolledCount(ctx, courseID, 1); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("userID", userID).
		Str("courseID", courseID).
		Str("status", string(status)).
		Msg("Enrollment created")

	return enrollment, nil
}

// CancelEnrollment marks the pair's enrollment cancelled.
//
// The seat is released only when the row was confirmed at the moment of
// cancellation; the prior status is captured before the row is mutated so a
// waitlisted or already-cancelled row never decrements the counter.
func (s *enrollmentServiceImpl) CancelEnrollment(ctx context.Context, userID, courseID string) error {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}

	wasConfirmed := enrollment.Status == models.EnrollmentConfirmed

	if err := s.enrollmentRepo.UpdateStatus(ctx, enrollment.ID, models.EnrollmentCancelled, s.now()); err != nil {
		return err
	}

	if wasConfirmed {
		if err := s.courseRepo.AdjustEnrolledCount(ctx, courseID, -1); err != nil {
			return err
		}
	}

	s.logger.Info().
		Str("userID", userID).
		Str("courseID", courseID).
		Bool("seatReleased", wasConfirmed).
		Msg("Enrollment cancelled")

	return nil
}
