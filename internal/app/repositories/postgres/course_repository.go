package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `
	id, title, description, short_description, image, price, duration,
	capacity, enrolled_count, category, level, start_date, end_date, days,
	time_start, time_end, instructor_id, instructor_name, instructor_avatar,
	tags, rating, review_count
`

// Create inserts a new course into the database
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (
			id, title, description, short_description, image, price, duration,
			capacity, enrolled_count, category, level, start_date, end_date,
			days, time_start, time_end, instructor_id, instructor_name,
			instructor_avatar, tags, rating, review_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.ShortDescription,
		course.Image,
		course.Price,
		course.Duration,
		course.Capacity,
		course.EnrolledCount,
		course.Category,
		course.Level,
		course.Schedule.StartDate,
		course.Schedule.EndDate,
		course.Schedule.Days,
		course.Schedule.TimeStart,
		course.Schedule.TimeEnd,
		course.Instructor.ID,
		course.Instructor.Name,
		course.Instructor.Avatar,
		course.Tags,
		course.Rating,
		course.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.ShortDescription,
		&course.Image,
		&course.Price,
		&course.Duration,
		&course.Capacity,
		&course.EnrolledCount,
		&course.Category,
		&course.Level,
		&course.Schedule.StartDate,
		&course.Schedule.EndDate,
		&course.Schedule.Days,
		&course.Schedule.TimeStart,
		&course.Schedule.TimeEnd,
		&course.Instructor.ID,
		&course.Instructor.Name,
		&course.Instructor.Avatar,
		&course.Tags,
		&course.Rating,
		&course.ReviewCount,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List retrieves every course in seeded order
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by its ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// AdjustEnrolledCount atomically adds delta to the confirmed counter
func (r *CourseRepository) AdjustEnrolledCount(ctx context.Context, id string, delta int) error {
	query := `
		UPDATE courses
		SET enrolled_count = GREATEST(enrolled_count + $2, 0)
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("error adjusting enrolled count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
