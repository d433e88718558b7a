package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
	"github.com/deniz/learnhub/internal/pkg/email"
)

const messagePreviewLength = 50

// SendMessageInput carries the fields of a new message.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	CourseID    string
	Content     string
}

// MessageService handles the message log and its derived views
type MessageService interface {
	GetMessages(ctx context.Context, courseID, userID string) ([]models.Message, error)
	SendMessage(ctx context.Context, input SendMessageInput) (*models.Message, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, messageID string) error
	GetInstructorThreads(ctx context.Context, instructorID string) ([]models.Message, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	notifier    email.Notifier
	logger      zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	notifier email.Notifier,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// GetMessages returns the user's messages in the course, unfiltered by read
// state, in log order. Consumers poll this on their own interval; the
// service has no push capability.
func (s *messageServiceImpl) GetMessages(ctx context.Context, courseID, userID string) ([]models.Message, error) {
	return s.messageRepo.ListByCourseAndUser(ctx, courseID, userID)
}

// SendMessage appends a new message to the log and notifies the recipient.
// Notification failures are logged and never fail the send.
func (s *messageServiceImpl) SendMessage(ctx context.Context, input SendMessageInput) (*models.Message, error) {
	if input.Content == "" {
		return nil, apperrors.NewBadRequestError("message content is required")
	}

	message := &models.Message{
		ID:          s.newID(),
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		CourseID:    input.CourseID,
		Content:     input.Content,
		Timestamp:   s.now(),
		Read:        false,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if input.RecipientID != input.SenderID {
		s.notifyRecipient(ctx, message)
	}

	return message, nil
}

func (s *messageServiceImpl) notifyRecipient(ctx context.Context, message *models.Message) {
	recipient, err := s.userRepo.GetByID(ctx, message.RecipientID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("recipientID", message.RecipientID).
			Msg("Recipient lookup failed, notification skipped")
		return
	}

	sender, err := s.userRepo.GetByID(ctx, message.SenderID)
	senderName := message.SenderID
	if err == nil {
		senderName = sender.Name
	}

	preview := message.Content
	if len(preview) > messagePreviewLength {
		preview = preview[:messagePreviewLength] + "..."
	}

	if err := s.notifier.NotifyNewMessage(recipient.Email, recipient.Name, senderName, preview); err != nil {
		s.logger.Warn().Err(err).
			Str("recipientID", message.RecipientID).
			Str("messageID", message.ID).
			Msg("Message notification failed")
	}
}

// GetUnreadCount counts unread messages addressed to the user.
func (s *messageServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}

// MarkAsRead flags the message as read. Unknown ids are a no-op.
func (s *messageServiceImpl) MarkAsRead(ctx context.Context, messageID string) error {
	return s.messageRepo.MarkRead(ctx, messageID)
}

// GetInstructorThreads summarizes the instructor's conversations: for every
// distinct (course, counterpart) pair it keeps the most recent message. On
// an exact timestamp tie the earlier log entry wins. The summary is sorted
// newest-first.
func (s *messageServiceImpl) GetInstructorThreads(ctx context.Context, instructorID string) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByParticipant(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	type threadKey struct {
		courseID      string
		counterpartID string
	}

	latest := make(map[threadKey]models.Message)
	var order []threadKey
	for _, m := range messages {
		counterpart := m.SenderID
		if m.SenderID == instructorID {
			counterpart = m.RecipientID
		}
		key := threadKey{courseID: m.CourseID, counterpartID: counterpart}

		existing, ok := latest[key]
		if !ok {
			latest[key] = m
			order = append(order, key)
			continue
		}
		if m.Timestamp.After(existing.Timestamp) {
			latest[key] = m
		}
	}

	threads := make([]models.Message, 0, len(order))
	for _, key := range order {
		threads = append(threads, latest[key])
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].Timestamp.After(threads[j].Timestamp)
	})
	return threads, nil
}
