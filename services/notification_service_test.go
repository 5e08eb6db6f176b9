package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func notifyConfig() *config.Config {
	return &config.Config{
		EmailFrom:   "portal@example.com",
		LawyerEmail: "lawyer@example.com",
		AppURL:      "https://portal.example.com/",
	}
}

func TestNotifyLawyer(t *testing.T) {
	db := setupTestDB(t)
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
		return len(e.To) == 1 && e.To[0] == "lawyer@example.com" &&
			e.Subject == "New Client Intake Submitted: Jane Doe" &&
			strings.Contains(e.TextBody, "Name: Jane Doe") &&
			strings.Contains(e.TextBody, "Email: jane@example.com")
	})).Return(nil).Once()
	bus := NewMemoryBus()
	defer bus.Close()

	events, cancel, err := bus.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel()

	svc := NewNotificationService(db, notifyConfig(), mailer, bus)
	event, err := svc.NotifyLawyer(context.Background(), " Jane Doe ", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New client added: Jane Doe", event.Message)
	assert.Equal(t, "jane@example.com", event.ClientEmail)
	assert.Equal(t, models.NotificationTypeIntakeSubmission, event.Type)
	assert.False(t, event.Read)
	assert.NotEmpty(t, event.ID)

	select {
	case got := <-events:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("notification was not published")
	}

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, event.ID, latest.ID)

	mailer.AssertExpectations(t)
}

func TestNotifyLawyer_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	mailer := new(mockMailer)
	svc := NewNotificationService(db, notifyConfig(), mailer, nil)

	_, err := svc.NotifyLawyer(context.Background(), "", "jane@example.com")
	assert.ErrorIs(t, err, ErrMissingNotifyFields)
	_, err = svc.NotifyLawyer(context.Background(), "Jane", "  ")
	assert.ErrorIs(t, err, ErrMissingNotifyFields)

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotifyLawyer_NotConfigured(t *testing.T) {
	db := setupTestDB(t)
	mailer := new(mockMailer)
	cfg := notifyConfig()
	cfg.LawyerEmail = ""
	svc := NewNotificationService(db, cfg, mailer, nil)

	_, err := svc.NotifyLawyer(context.Background(), "Jane", "jane@example.com")
	assert.ErrorIs(t, err, ErrMailNotConfigured)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	var count int64
	db.Model(&models.NotificationEvent{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotifyLawyer_SendFailureStoresNothing(t *testing.T) {
	db := setupTestDB(t)
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider rejected"))
	svc := NewNotificationService(db, notifyConfig(), mailer, nil)

	_, err := svc.NotifyLawyer(context.Background(), "Jane", "jane@example.com")
	require.Error(t, err)

	var count int64
	db.Model(&models.NotificationEvent{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotificationService_Latest(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, notifyConfig(), new(mockMailer), nil)
	ctx := context.Background()

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	older := models.NotificationEvent{Message: "New client added: A", ClientEmail: "a@example.com"}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Model(&older).Update("timestamp", time.Now().Add(-time.Hour)).Error)
	newer := models.NotificationEvent{Message: "New client added: B", ClientEmail: "b@example.com"}
	require.NoError(t, db.Create(&newer).Error)

	latest, err = svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestNotificationService_Unread(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, notifyConfig(), new(mockMailer), nil)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, db.Create(&models.NotificationEvent{Message: "New client added: " + name}).Error)
	}

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	unread, err := svc.GetUnread(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	require.NoError(t, svc.MarkAllAsRead(ctx))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
