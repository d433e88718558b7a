package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/app/repositories/memory"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

func newCatalogFixture(t *testing.T) (CatalogService, *repositories.Repositories) {
	t.Helper()

	repos := memory.NewRepositories()
	svc := NewCatalogService(repos.Courses, zerolog.Nop())

	courses := []models.Course{
		{
			ID:          "go-101",
			Title:       "Go Fundamentals",
			Description: "Concurrency, interfaces and the standard library.",
			Price:       49,
			Capacity:    30,
			Category:    "Programming",
			Level:       models.LevelBeginner,
			Rating:      4.5,
			Instructor:  models.CourseInstructor{ID: "inst-1", Name: "Ada"},
		},
		{
			ID:            "go-201",
			Title:         "Advanced Go Services",
			Description:   "Building production HTTP services.",
			Price:         99,
			Capacity:      20,
			EnrolledCount: 12,
			Category:      "Programming",
			Level:         models.LevelAdvanced,
			Rating:        4.9,
			Instructor:    models.CourseInstructor{ID: "inst-1", Name: "Ada"},
		},
		{
			ID:            "ux-101",
			Title:         "Design Thinking",
			Description:   "User research and prototyping.",
			Price:         149,
			Capacity:      25,
			EnrolledCount: 8,
			Category:      "Design",
			Level:         models.LevelBeginner,
			Rating:        4.1,
			Instructor:    models.CourseInstructor{ID: "inst-2", Name: "Grace"},
		},
	}
	for i := range courses {
		require.NoError(t, repos.Courses.Create(context.Background(), &courses[i]))
	}

	return svc, repos
}

func TestGetAllCourses_StableOrder(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	first, err := svc.GetAllCourses(context.Background())
	require.NoError(t, err)
	second, err := svc.GetAllCourses(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "go-101", first[0].ID)
	assert.Equal(t, "ux-101", first[2].ID)
}

func TestGetCourseByID(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	course, err := svc.GetCourseByID(context.Background(), "go-201")
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go Services", course.Title)

	_, err = svc.GetCourseByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGetCoursesByCategory_ExactMatch(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	programming, err := svc.GetCoursesByCategory(context.Background(), "Programming")
	require.NoError(t, err)
	assert.Len(t, programming, 2)

	// Category matching is exact, not case-insensitive.
	lower, err := svc.GetCoursesByCategory(context.Background(), "programming")
	require.NoError(t, err)
	assert.Empty(t, lower)
}

func TestGetCoursesByInstructor(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	courses, err := svc.GetCoursesByInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "go-101", courses[0].ID)
	assert.Equal(t, "go-201", courses[1].ID)
}

func TestGetCategories_DistinctInCatalogOrder(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	categories, err := svc.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Programming", "Design"}, categories)
}

func TestSearchCourses_CaseInsensitiveSubstring(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	byTitle, err := svc.SearchCourses(context.Background(), "GO")
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byDescription, err := svc.SearchCourses(context.Background(), "prototyping")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "ux-101", byDescription[0].ID)

	none, err := svc.SearchCourses(context.Background(), "blockchain")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilterCourses_Conjunctive(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	min, max := 40.0, 100.0
	courses, err := svc.FilterCourses(context.Background(), FilterOptions{
		Category: "Programming",
		Level:    models.LevelAdvanced,
		MinPrice: &min,
		MaxPrice: &max,
	})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "go-201", courses[0].ID)

	// Same predicates plus a query that only matches the other category.
	courses, err = svc.FilterCourses(context.Background(), FilterOptions{
		Category: "Programming",
		Query:    "prototyping",
	})
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestFilterCourses_PriceBoundsInclusive(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	exact := 49.0
	courses, err := svc.FilterCourses(context.Background(), FilterOptions{
		MinPrice: &exact,
		MaxPrice: &exact,
	})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "go-101", courses[0].ID)
}

func TestFilterCourses_EmptyOptionsReturnsAll(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	courses, err := svc.FilterCourses(context.Background(), FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestGetInstructorStats(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	stats, err := svc.GetInstructorStats(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CourseCount)
	assert.Equal(t, 12, stats.TotalStudents)
	assert.InDelta(t, 4.7, stats.AverageRating, 0.0001)
}

func TestGetInstructorStats_NoCourses(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	stats, err := svc.GetInstructorStats(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CourseCount)
	assert.Equal(t, 0, stats.TotalStudents)
	assert.Zero(t, stats.AverageRating)
}
