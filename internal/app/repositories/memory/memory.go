// Package memory implements the repository contracts over process-wide
// in-memory tables. This is the default store: it mirrors the mock data
// arrays the platform started from, guarded by locks so mutations stay
// atomic under concurrent handlers.
package memory

import (
	"github.com/deniz/learnhub/internal/app/repositories"
)

// NewRepositories builds the full in-memory repository set.
func NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Courses:     NewCourseRepository(),
		Enrollments: NewEnrollmentRepository(),
		Messages:    NewMessageRepository(),
		Users:       NewUserRepository(),
	}
}
