package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
)

// FilterOptions narrows a catalog query. Every supplied predicate must hold;
// omitted fields impose no constraint. Price bounds are inclusive.
type FilterOptions struct {
	Category string
	Level    models.CourseLevel
	MinPrice *float64
	MaxPrice *float64
	Query    string
}

// InstructorStats aggregates an instructor's catalog footprint.
type InstructorStats struct {
	CourseCount   int     `json:"courseCount"`
	TotalStudents int     `json:"totalStudents"`
	AverageRating float64 `json:"averageRating"`
}

// CatalogService defines the read and query operations over the course catalog
type CatalogService interface {
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error)
	GetCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	GetCategories(ctx context.Context) ([]string, error)
	SearchCourses(ctx context.Context, query string) ([]models.Course, error)
	FilterCourses(ctx context.Context, options FilterOptions) ([]models.Course, error)
	GetInstructorStats(ctx context.Context, instructorID string) (*InstructorStats, error)
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl struct {
	courseRepo repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(courseRepo repositories.CourseRepository, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// GetAllCourses returns every seeded course in stable order.
func (s *catalogServiceImpl) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.List(ctx)
}

// GetCourseByID looks up one course. Absent ids surface as
// apperrors.ErrCourseNotFound.
func (s *catalogServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetCoursesByCategory returns courses whose category matches exactly.
func (s *catalogServiceImpl) GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Course
	for _, c := range courses {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCoursesByInstructor returns the courses taught by the instructor.
func (s *catalogServiceImpl) GetCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Course
	for _, c := range courses {
		if c.Instructor.ID == instructorID {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCategories returns the distinct categories in catalog order.
func (s *catalogServiceImpl) GetCategories(ctx context.Context) ([]string, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range courses {
		if !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out, nil
}

// SearchCourses matches the query as a case-insensitive substring of the
// title or description.
func (s *catalogServiceImpl) SearchCourses(ctx context.Context, query string) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var out []models.Course
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), query) ||
			strings.Contains(strings.ToLower(c.Description), query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// FilterCourses applies every supplied predicate conjunctively.
func (s *catalogServiceImpl) FilterCourses(ctx context.Context, options FilterOptions) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(options.Query)
	var out []models.Course
	for _, c := range courses {
		if options.Category != "" && c.Category != options.Category {
			continue
		}
		if options.Level != "" && c.Level != options.Level {
			continue
		}
		if options.MinPrice != nil && c.Price < *options.MinPrice {
			continue
		}
		if options.MaxPrice != nil && c.Price > *options.MaxPrice {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Title), query) &&
			!strings.Contains(strings.ToLower(c.Description), query) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// GetInstructorStats aggregates enrolled students and average rating over
// the instructor's courses.
func (s *catalogServiceImpl) GetInstructorStats(ctx context.Context, instructorID string) (*InstructorStats, error) {
	courses, err := s.GetCoursesByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	stats := &InstructorStats{CourseCount: len(courses)}
	for _, c := range courses {
		stats.TotalStudents += c.EnrolledCount
		stats.AverageRating += c.Rating
	}
	if len(courses) > 0 {
		stats.AverageRating /= float64(len(courses))
	}
	return stats, nil
}
