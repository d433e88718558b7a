package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/app/repositories/memory"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

func newEnrollmentFixture(t *testing.T) (*enrollmentServiceImpl, *repositories.Repositories) {
	t.Helper()

	repos := memory.NewRepositories()
	svc := NewEnrollmentService(repos.Courses, repos.Enrollments, zerolog.Nop()).(*enrollmentServiceImpl)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("enrollment-%d", seq)
	}

	return svc, repos
}

func seedCourse(t *testing.T, repos *repositories.Repositories, id string, capacity, enrolled int) {
	t.Helper()

	err := repos.Courses.Create(context.Background(), &models.Course{
		ID:            id,
		Title:         "Course " + id,
		Capacity:      capacity,
		EnrolledCount: enrolled,
		Category:      "Programming",
		Level:         models.LevelBeginner,
	})
	require.NoError(t, err)
}

func TestEnrollInCourse_ConfirmedWhileSeatsRemain(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 2, 0)

	enrollment, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentConfirmed, enrollment.Status)
	assert.Equal(t, "course-1", enrollment.CourseID)
	assert.Equal(t, "user-1", enrollment.UserID)

	course, err := repos.Courses.GetByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, course.EnrolledCount)
}

func TestEnrollInCourse_WaitlistedWhenFull(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 1, 0)

	first, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentConfirmed, first.Status)

	second, err := svc.EnrollInCourse(context.Background(), "user-2", "course-1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentWaitlisted, second.Status)

	// The waitlisted row must not count against capacity.
	course, err := repos.Courses.GetByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, course.EnrolledCount)
}

func TestEnrollInCourse_UnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture(t)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollInCourse_DuplicateGuard(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 5, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)

	_, err = svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollInCourse_DuplicateGuardAfterCancel(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 5, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-1"))

	// A cancelled row still blocks re-enrollment for the pair.
	_, err = svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestCancelEnrollment_ReleasesConfirmedSeat(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 2, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-1"))

	course, err := repos.Courses.GetByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, course.EnrolledCount)

	enrollment, err := repos.Enrollments.GetByUserAndCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCancelled, enrollment.Status)
}

func TestCancelEnrollment_WaitlistedDoesNotTouchCounter(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 1, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	waitlisted, err := svc.EnrollInCourse(context.Background(), "user-2", "course-1")
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentWaitlisted, waitlisted.Status)

	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-2", "course-1"))

	course, err := repos.Courses.GetByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, course.EnrolledCount)
}

func TestCancelEnrollment_SecondCancelIsNoOpOnCounter(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 2, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-1"))
	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-1"))

	course, err := repos.Courses.GetByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, course.EnrolledCount)
}

func TestCancelEnrollment_UnknownPair(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 2, 0)

	err := svc.CancelEnrollment(context.Background(), "user-1", "course-1")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestGetUserEnrolledCourses_ConfirmedOnly(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 5, 0)
	seedCourse(t, repos, "course-2", 1, 0)
	seedCourse(t, repos, "course-3", 5, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)

	// Fill course-2 so user-1 lands on its waitlist.
	_, err = svc.EnrollInCourse(context.Background(), "other", "course-2")
	require.NoError(t, err)
	_, err = svc.EnrollInCourse(context.Background(), "user-1", "course-2")
	require.NoError(t, err)

	_, err = svc.EnrollInCourse(context.Background(), "user-1", "course-3")
	require.NoError(t, err)
	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-3"))

	courses, err := svc.GetUserEnrolledCourses(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "course-1", courses[0].ID)
}

func TestGetUserEnrollments_AllStatuses(t *testing.T) {
	svc, repos := newEnrollmentFixture(t)
	seedCourse(t, repos, "course-1", 5, 0)
	seedCourse(t, repos, "course-2", 5, 0)

	_, err := svc.EnrollInCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	_, err = svc.EnrollInCourse(context.Background(), "user-1", "course-2")
	require.NoError(t, err)
	require.NoError(t, svc.CancelEnrollment(context.Background(), "user-1", "course-2"))

	enrollments, err := svc.GetUserEnrollments(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, models.EnrollmentConfirmed, enrollments[0].Status)
	assert.Equal(t, models.EnrollmentCancelled, enrollments[1].Status)
}
