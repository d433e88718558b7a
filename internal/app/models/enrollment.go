package models

import "time"

// Enrollment is one record of a user's relationship to a course.
//
// There is at most one row per (user, course) pair; status transitions are
// confirmed|waitlisted -> cancelled only, and cancelled is terminal.
type Enrollment struct {
	ID         string           `json:"id" db:"id"`
	CourseID   string           `json:"courseId" db:"course_id"`
	UserID     string           `json:"userId" db:"user_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}
