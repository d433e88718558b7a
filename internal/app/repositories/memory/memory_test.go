package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

func TestCourseRepository_ListIsStableAndCopied(t *testing.T) {
	repo := NewCourseRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Course{ID: "c1", Title: "Go"}))
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "c2", Title: "SQL"}))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Mutating a returned slice must not leak into the table.
	first[0].Title = "mutated"
	again, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Title)
}

func TestCourseRepository_GetByIDUnknown(t *testing.T) {
	repo := NewCourseRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseRepository_AdjustEnrolledCountIsAtomic(t *testing.T) {
	repo := NewCourseRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "c1", Capacity: 1000}))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.AdjustEnrolledCount(ctx, "c1", 1)
		}()
	}
	wg.Wait()

	course, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 100, course.EnrolledCount)
}

func TestCourseRepository_AdjustEnrolledCountFloorsAtZero(t *testing.T) {
	repo := NewCourseRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "c1", Capacity: 5}))

	require.NoError(t, repo.AdjustEnrolledCount(ctx, "c1", -3))

	course, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, course.EnrolledCount)
}

func TestEnrollmentRepository_PairLookup(t *testing.T) {
	repo := NewEnrollmentRepository()
	ctx := context.Background()

	row := &models.Enrollment{ID: "e1", UserID: "u1", CourseID: "c1", Status: models.EnrollmentConfirmed}
	require.NoError(t, repo.Create(ctx, row))

	found, err := repo.GetByUserAndCourse(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "e1", found.ID)

	_, err = repo.GetByUserAndCourse(ctx, "u1", "c2")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestEnrollmentRepository_UpdateStatus(t *testing.T) {
	repo := NewEnrollmentRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Enrollment{ID: "e1", UserID: "u1", CourseID: "c1", Status: models.EnrollmentConfirmed}))

	stamp := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, "e1", models.EnrollmentCancelled, stamp))

	row, err := repo.GetByUserAndCourse(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCancelled, row.Status)
	assert.Equal(t, stamp, row.UpdatedAt)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.EnrollmentCancelled, stamp), apperrors.ErrEnrollmentNotFound)
}

func TestMessageRepository_FiltersAndUnread(t *testing.T) {
	repo := NewMessageRepository()
	ctx := context.Background()

	msgs := []models.Message{
		{ID: "m1", CourseID: "c1", SenderID: "s", RecipientID: "i", Read: false},
		{ID: "m2", CourseID: "c1", SenderID: "i", RecipientID: "s", Read: true},
		{ID: "m3", CourseID: "c2", SenderID: "s", RecipientID: "i", Read: false},
		{ID: "m4", CourseID: "c1", SenderID: "x", RecipientID: "y", Read: false},
	}
	for i := range msgs {
		require.NoError(t, repo.Create(ctx, &msgs[i]))
	}

	inCourse, err := repo.ListByCourseAndUser(ctx, "c1", "s")
	require.NoError(t, err)
	require.Len(t, inCourse, 2)
	assert.Equal(t, "m1", inCourse[0].ID)
	assert.Equal(t, "m2", inCourse[1].ID)

	all, err := repo.ListByParticipant(ctx, "i")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unread, err := repo.CountUnread(ctx, "i")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, repo.MarkRead(ctx, "m1"))
	require.NoError(t, repo.MarkRead(ctx, "m1")) // idempotent
	require.NoError(t, repo.MarkRead(ctx, "does-not-exist"))

	unread, err = repo.CountUnread(ctx, "i")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "a@x.com"}))
	err := repo.Create(ctx, &models.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	exists, err := repo.EmailExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
