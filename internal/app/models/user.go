package models

import "time"

// User defines a member of the platform directory.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`                // Unique within the directory
	PasswordHash string    `json:"-" db:"password_hash"`            // Bcrypt hash, excluded from JSON
	Name         string    `json:"name" db:"name"`                  // Display name
	Role         Role      `json:"role" db:"role" example:"student"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Sanitized returns a copy of the user with credential material removed.
// This is the shape that gets persisted as the session record and returned
// to callers.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
