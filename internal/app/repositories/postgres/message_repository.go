package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/learnhub/internal/app/models"
)

// MessageRepository handles database operations for the message log
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to the log
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, recipient_id, course_id, content, ts, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.SenderID,
		message.RecipientID,
		message.CourseID,
		message.Content,
		message.Timestamp,
		message.Read,
	)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

func (r *MessageRepository) list(ctx context.Context, where string, args ...any) ([]models.Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, course_id, content, ts, read
		FROM messages
		WHERE ` + where + `
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.CourseID, &m.Content, &m.Timestamp, &m.Read); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// ListByCourseAndUser returns the user's messages in the course, log order
func (r *MessageRepository) ListByCourseAndUser(ctx context.Context, courseID, userID string) ([]models.Message, error) {
	return r.list(ctx, "course_id = $1 AND (sender_id = $2 OR recipient_id = $2)", courseID, userID)
}

// ListByParticipant returns every message touching the user, log order
func (r *MessageRepository) ListByParticipant(ctx context.Context, userID string) ([]models.Message, error) {
	return r.list(ctx, "sender_id = $1 OR recipient_id = $1", userID)
}

// CountUnread counts unread messages addressed to the user
func (r *MessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read = FALSE`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}

	return count, nil
}

// MarkRead sets the read flag; unknown ids are a no-op
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE messages SET read = TRUE WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}

	return nil
}
