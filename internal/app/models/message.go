package models

import "time"

// Message is a single entry in the append-only message log.
//
// Messages are never edited or deleted; Read flips false -> true once via
// the mark-read operation.
type Message struct {
	ID          string    `json:"id" db:"id"`
	SenderID    string    `json:"senderId" db:"sender_id"`
	RecipientID string    `json:"recipientId" db:"recipient_id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	Content     string    `json:"content" db:"content"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	Read        bool      `json:"read" db:"read"`
}
