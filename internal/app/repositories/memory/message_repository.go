package memory

import (
	"context"
	"sync"

	"github.com/deniz/learnhub/internal/app/models"
)

// MessageRepository is the in-memory append-only message log.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewMessageRepository creates an empty message log.
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// Create appends a message to the log.
func (r *MessageRepository) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, *message)
	return nil
}

// ListByCourseAndUser returns the user's messages in the course, log order.
func (r *MessageRepository) ListByCourseAndUser(_ context.Context, courseID, userID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, m := range r.messages {
		if m.CourseID == courseID && (m.SenderID == userID || m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListByParticipant returns every message touching the user, log order.
func (r *MessageRepository) ListByParticipant(_ context.Context, userID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// CountUnread counts unread messages addressed to the user.
func (r *MessageRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.messages {
		if m.RecipientID == userID && !m.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead sets the read flag once; unknown ids are ignored.
func (r *MessageRepository) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Read = true
			return nil
		}
	}
	return nil
}
