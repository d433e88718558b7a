// Package seed populates a fresh store with the demo catalog, directory and
// sample conversations. Seeding is idempotent: an already populated store is
// left untouched.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/pkg/auth"
)

func strPtr(s string) *string { return &s }

// CreateDefaultData seeds the user directory, course catalog and sample
// messages when the store is empty.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	existing, err := repos.Courses.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Int("courses", len(existing)).Msg("Store already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default data...")

	var finalErr error
	if err := seedUsers(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedCourses(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedEnrollments(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedMessages(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data seeded")
	}
	return finalErr
}

func seedUsers(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	type account struct {
		user     models.User
		password string
	}

	accounts := []account{
		{
			user: models.User{
				ID:        "user-1",
				Email:     "student@learnhub.app",
				Name:      "Sam Carter",
				Role:      models.RoleStudent,
				Phone:     strPtr("+1 555 0101"),
				CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
			},
			password: "student123",
		},
		{
			user: models.User{
				ID:        "user-2",
				Email:     "instructor@learnhub.app",
				Name:      "Ada Brooks",
				Role:      models.RoleInstructor,
				Bio:       strPtr("Backend engineer, teaching Go and systems design."),
				CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
			},
			password: "instructor123",
		},
		{
			user: models.User{
				ID:        "user-3",
				Email:     "admin@learnhub.app",
				Name:      "Riley Quinn",
				Role:      models.RoleAdmin,
				CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
			},
			password: "admin123",
		},
	}

	for _, a := range accounts {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return err
		}
		a.user.PasswordHash = hash

		user := a.user
		if err := repos.Users.Create(ctx, &user); err != nil {
			lgr.Error().Err(err).Str("email", user.Email).Msg("Error seeding user")
			return err
		}
	}
	return nil
}

func seedCourses(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	instructor := models.CourseInstructor{ID: "user-2", Name: "Ada Brooks"}

	courses := []models.Course{
		{
			ID:               "course-1",
			Title:            "Go Fundamentals",
			Description:      "A ground-up introduction to Go: syntax, tooling, interfaces, error handling and the concurrency primitives that make the language what it is.",
			ShortDescription: "Learn Go from scratch",
			Image:            "/images/courses/go-fundamentals.jpg",
			Price:            49,
			Duration:         24,
			Capacity:         30,
			EnrolledCount:    1,
			Category:         "Programming",
			Level:            models.LevelBeginner,
			Schedule: models.Schedule{
				StartDate: "2026-09-07",
				EndDate:   "2026-11-30",
				Days:      []string{"Monday", "Wednesday"},
				TimeStart: "18:00",
				TimeEnd:   "20:00",
			},
			Instructor:  instructor,
			Tags:        []string{"go", "backend", "beginner"},
			Rating:      4.6,
			ReviewCount: 128,
		},
		{
			ID:               "course-2",
			Title:            "Building Production Services in Go",
			Description:      "HTTP services the way they run in production: configuration, structured logging, graceful shutdown, storage layers and the tests that keep them honest.",
			ShortDescription: "Production-grade Go services",
			Image:            "/images/courses/go-services.jpg",
			Price:            99,
			Duration:         32,
			Capacity:         20,
			EnrolledCount:    0,
			Category:         "Programming",
			Level:            models.LevelAdvanced,
			Schedule: models.Schedule{
				StartDate: "2026-09-14",
				EndDate:   "2026-12-14",
				Days:      []string{"Tuesday", "Thursday"},
				TimeStart: "19:00",
				TimeEnd:   "21:00",
			},
			Instructor:  instructor,
			Tags:        []string{"go", "http", "production"},
			Rating:      4.9,
			ReviewCount: 87,
		},
		{
			ID:               "course-3",
			Title:            "SQL and Data Modeling",
			Description:      "Relational fundamentals for application developers: schema design, indexes, joins and the query patterns that keep a service fast.",
			ShortDescription: "Practical SQL for developers",
			Image:            "/images/courses/sql.jpg",
			Price:            79,
			Duration:         20,
			Capacity:         25,
			EnrolledCount:    0,
			Category:         "Databases",
			Level:            models.LevelIntermediate,
			Schedule: models.Schedule{
				StartDate: "2026-09-21",
				EndDate:   "2026-11-23",
				Days:      []string{"Wednesday"},
				TimeStart: "18:30",
				TimeEnd:   "21:30",
			},
			Instructor:  instructor,
			Tags:        []string{"sql", "postgres", "data"},
			Rating:      4.4,
			ReviewCount: 53,
		},
		{
			ID:               "course-4",
			Title:            "Design Thinking Workshop",
			Description:      "User research, rapid prototyping and usability testing, run as a hands-on workshop over real product briefs.",
			ShortDescription: "Hands-on design thinking",
			Image:            "/images/courses/design.jpg",
			Price:            149,
			Duration:         16,
			Capacity:         15,
			EnrolledCount:    0,
			Category:         "Design",
			Level:            models.LevelBeginner,
			Schedule: models.Schedule{
				StartDate: "2026-10-03",
				EndDate:   "2026-11-21",
				Days:      []string{"Saturday"},
				TimeStart: "10:00",
				TimeEnd:   "14:00",
			},
			Instructor:  models.CourseInstructor{ID: "user-4", Name: "Grace Lin", Avatar: strPtr("/images/instructors/grace.jpg")},
			Tags:        []string{"design", "ux", "workshop"},
			Rating:      4.2,
			ReviewCount: 31,
		},
		{
			ID:               "course-5",
			Title:            "Digital Marketing Essentials",
			Description:      "Channels, funnels and measurement. Build a campaign end to end and learn to read the numbers it produces.",
			ShortDescription: "Marketing that can be measured",
			Image:            "/images/courses/marketing.jpg",
			Price:            59,
			Duration:         12,
			Capacity:         40,
			EnrolledCount:    0,
			Category:         "Marketing",
			Level:            models.LevelBeginner,
			Schedule: models.Schedule{
				StartDate: "2026-09-10",
				EndDate:   "2026-10-29",
				Days:      []string{"Thursday"},
				TimeStart: "17:00",
				TimeEnd:   "19:00",
			},
			Instructor:  models.CourseInstructor{ID: "user-5", Name: "Noor Haddad"},
			Tags:        []string{"marketing", "analytics"},
			Rating:      4.0,
			ReviewCount: 44,
		},
		{
			ID:               "course-6",
			Title:            "Concurrency Patterns in Go",
			Description:      "Goroutines, channels, contexts and the patterns that compose them: pipelines, fan-out, worker pools and cancellation done right.",
			ShortDescription: "Master Go concurrency",
			Image:            "/images/courses/go-concurrency.jpg",
			Price:            89,
			Duration:         18,
			Capacity:         2,
			EnrolledCount:    0,
			Category:         "Programming",
			Level:            models.LevelIntermediate,
			Schedule: models.Schedule{
				StartDate: "2026-10-05",
				EndDate:   "2026-11-16",
				Days:      []string{"Monday"},
				TimeStart: "19:00",
				TimeEnd:   "21:30",
			},
			Instructor:  instructor,
			Tags:        []string{"go", "concurrency"},
			Rating:      4.8,
			ReviewCount: 19,
		},
	}

	for i := range courses {
		if err := repos.Courses.Create(ctx, &courses[i]); err != nil {
			lgr.Error().Err(err).Str("courseID", courses[i].ID).Msg("Error seeding course")
			return err
		}
	}
	return nil
}

// seedEnrollments mirrors the seeded enrolled counters: course-1 ships with
// one confirmed seat taken, held by the demo student.
func seedEnrollments(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	enrolledAt := time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC)
	enrollment := &models.Enrollment{
		ID:         "enrollment-1",
		CourseID:   "course-1",
		UserID:     "user-1",
		Status:     models.EnrollmentConfirmed,
		EnrolledAt: enrolledAt,
		UpdatedAt:  enrolledAt,
	}

	if err := repos.Enrollments.Create(ctx, enrollment); err != nil {
		lgr.Error().Err(err).Msg("Error seeding enrollment")
		return err
	}
	return nil
}

func seedMessages(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	messages := []models.Message{
		{
			ID:          "message-1",
			SenderID:    "user-1",
			RecipientID: "user-2",
			CourseID:    "course-1",
			Content:     "Hi Ada, will the session recordings be available afterwards?",
			Timestamp:   time.Date(2026, 2, 2, 10, 15, 0, 0, time.UTC),
			Read:        true,
		},
		{
			ID:          "message-2",
			SenderID:    "user-2",
			RecipientID: "user-1",
			CourseID:    "course-1",
			Content:     "Yes, recordings go up within a day of each session.",
			Timestamp:   time.Date(2026, 2, 2, 11, 40, 0, 0, time.UTC),
			Read:        false,
		},
	}

	for i := range messages {
		if err := repos.Messages.Create(ctx, &messages[i]); err != nil {
			lgr.Error().Err(err).Str("messageID", messages[i].ID).Msg("Error seeding message")
			return err
		}
	}
	return nil
}
