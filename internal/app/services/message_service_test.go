package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/repositories"
	"github.com/deniz/learnhub/internal/app/repositories/memory"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

type notification struct {
	toEmail  string
	fromName string
	preview  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
	fail bool
}

func (f *fakeNotifier) NotifyNewMessage(toEmail, toName, fromName, preview string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, notification{toEmail: toEmail, fromName: fromName, preview: preview})
	return nil
}

func (f *fakeNotifier) notifications() []notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification(nil), f.sent...)
}

func newMessageFixture(t *testing.T) (*messageServiceImpl, *repositories.Repositories, *fakeNotifier) {
	t.Helper()

	repos := memory.NewRepositories()
	notifier := &fakeNotifier{}
	svc := NewMessageService(repos.Messages, repos.Users, notifier, zerolog.Nop()).(*messageServiceImpl)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("msg-%d", seq)
	}

	for _, u := range []models.User{
		{ID: "instructor-1", Email: "ada@learnhub.dev", Name: "Ada", Role: models.RoleInstructor},
		{ID: "student-1", Email: "sam@learnhub.dev", Name: "Sam", Role: models.RoleStudent},
		{ID: "student-2", Email: "kim@learnhub.dev", Name: "Kim", Role: models.RoleStudent},
	} {
		user := u
		require.NoError(t, repos.Users.Create(context.Background(), &user))
	}

	return svc, repos, notifier
}

func send(t *testing.T, svc MessageService, senderID, recipientID, courseID, content string) *models.Message {
	t.Helper()

	message, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderID:    senderID,
		RecipientID: recipientID,
		CourseID:    courseID,
		Content:     content,
	})
	require.NoError(t, err)
	return message
}

func TestSendMessage_AppendsAndNotifies(t *testing.T) {
	svc, repos, notifier := newMessageFixture(t)

	message := send(t, svc, "student-1", "instructor-1", "go-101", "Hi, a question about slices")

	assert.Equal(t, "msg-1", message.ID)
	assert.False(t, message.Read)

	stored, err := repos.Messages.ListByCourseAndUser(context.Background(), "go-101", "student-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Hi, a question about slices", stored[0].Content)

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@learnhub.dev", sent[0].toEmail)
	assert.Equal(t, "Sam", sent[0].fromName)
	assert.Equal(t, "Hi, a question about slices", sent[0].preview)
}

func TestSendMessage_EmptyContentRejected(t *testing.T) {
	svc, _, _ := newMessageFixture(t)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderID:    "student-1",
		RecipientID: "instructor-1",
		CourseID:    "go-101",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSendMessage_NotifierFailureDoesNotFailSend(t *testing.T) {
	svc, repos, notifier := newMessageFixture(t)
	notifier.fail = true

	message := send(t, svc, "student-1", "instructor-1", "go-101", "still delivered")

	stored, err := repos.Messages.ListByCourseAndUser(context.Background(), "go-101", "student-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, message.ID, stored[0].ID)
}

func TestSendMessage_LongContentPreviewTruncated(t *testing.T) {
	svc, _, notifier := newMessageFixture(t)

	content := ""
	for i := 0; i < 20; i++ {
		content += "abcde"
	}
	send(t, svc, "student-1", "instructor-1", "go-101", content)

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].preview, messagePreviewLength+3)
	assert.Equal(t, content[:messagePreviewLength]+"...", sent[0].preview)
}

func TestSendMessage_SelfMessageSkipsNotification(t *testing.T) {
	svc, _, notifier := newMessageFixture(t)

	send(t, svc, "student-1", "student-1", "go-101", "note to self")

	assert.Empty(t, notifier.notifications())
}

func TestGetMessages_FiltersByCourseAndParticipant(t *testing.T) {
	svc, _, _ := newMessageFixture(t)

	send(t, svc, "student-1", "instructor-1", "go-101", "first")
	send(t, svc, "instructor-1", "student-1", "go-101", "second")
	send(t, svc, "student-2", "instructor-1", "go-101", "not for student-1")
	send(t, svc, "student-1", "instructor-1", "ux-101", "other course")

	messages, err := svc.GetMessages(context.Background(), "go-101", "student-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestUnreadCountAndMarkAsRead(t *testing.T) {
	svc, _, _ := newMessageFixture(t)

	m1 := send(t, svc, "student-1", "instructor-1", "go-101", "one")
	send(t, svc, "student-2", "instructor-1", "go-101", "two")
	send(t, svc, "instructor-1", "student-1", "go-101", "reply")

	count, err := svc.GetUnreadCount(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkAsRead(context.Background(), m1.ID))

	count, err = svc.GetUnreadCount(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Marking again, or marking an unknown id, changes nothing.
	require.NoError(t, svc.MarkAsRead(context.Background(), m1.ID))
	require.NoError(t, svc.MarkAsRead(context.Background(), "missing"))

	count, err = svc.GetUnreadCount(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetInstructorThreads_OnePerCoursePair(t *testing.T) {
	svc, _, _ := newMessageFixture(t)

	send(t, svc, "student-1", "instructor-1", "go-101", "s1 opening")
	send(t, svc, "instructor-1", "student-1", "go-101", "s1 reply")
	send(t, svc, "student-2", "instructor-1", "go-101", "s2 opening")
	send(t, svc, "student-1", "instructor-1", "ux-101", "s1 other course")

	threads, err := svc.GetInstructorThreads(context.Background(), "instructor-1")
	require.NoError(t, err)
	require.Len(t, threads, 3)

	// Newest-first: ux thread, then s2, then the s1 go-101 reply.
	assert.Equal(t, "s1 other course", threads[0].Content)
	assert.Equal(t, "s2 opening", threads[1].Content)
	assert.Equal(t, "s1 reply", threads[2].Content)
}

func TestGetInstructorThreads_TimestampTieKeepsEarlierEntry(t *testing.T) {
	svc, repos, _ := newMessageFixture(t)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i, content := range []string{"earlier entry", "later entry"} {
		require.NoError(t, repos.Messages.Create(context.Background(), &models.Message{
			ID:          fmt.Sprintf("tie-%d", i),
			SenderID:    "student-1",
			RecipientID: "instructor-1",
			CourseID:    "go-101",
			Content:     content,
			Timestamp:   at,
		}))
	}

	threads, err := svc.GetInstructorThreads(context.Background(), "instructor-1")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "earlier entry", threads[0].Content)
}

func TestGetInstructorThreads_NoMessages(t *testing.T) {
	svc, _, _ := newMessageFixture(t)

	threads, err := svc.GetInstructorThreads(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Empty(t, threads)
}
