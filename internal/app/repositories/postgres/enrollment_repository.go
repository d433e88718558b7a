package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment row
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, course_id, user_id, status, enrolled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		enrollment.ID,
		enrollment.CourseID,
		enrollment.UserID,
		enrollment.Status,
		enrollment.EnrolledAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) list(ctx context.Context, where string, arg any) ([]models.Enrollment, error) {
	query := `
		SELECT id, course_id, user_id, status, enrolled_at, updated_at
		FROM enrollments
		WHERE ` + where + `
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.CourseID, &e.UserID, &e.Status, &e.EnrolledAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return enrollments, nil
}

// ListByUser returns every row for the user, any status
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return r.list(ctx, "user_id = $1", userID)
}

// ListByCourse returns every row for the course, any status
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	return r.list(ctx, "course_id = $1", courseID)
}

// GetByUserAndCourse retrieves the row for the pair
func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	query := `
		SELECT id, course_id, user_id, status, enrolled_at, updated_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`

	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(
		&e.ID, &e.CourseID, &e.UserID, &e.Status, &e.EnrolledAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &e, nil
}

// UpdateStatus flips the row's status and refreshes updated_at
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, updatedAt time.Time) error {
	query := `UPDATE enrollments SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
