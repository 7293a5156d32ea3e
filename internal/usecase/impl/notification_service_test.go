package impl

import (
	"context"
	"testing"

	"minex/internal/domain/entity"
	"minex/internal/domain/service"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Notify(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	ada := f.register(t, "Ada", "a@x.com", entity.RoleMiner)
	ctx := context.Background()

	require.NoError(t, f.notifications.Notify(ctx, nil))
	require.NoError(t, f.notifications.Notify(ctx, &usecase.NotifyInput{Title: "nobody"}))
	require.NoError(t, f.notifications.Notify(ctx, &usecase.NotifyInput{UserID: uuid.New(), Title: "stranger"}))
	f.publisher.AssertNotCalled(t, "PublishNotificationEvent", mock.Anything, mock.Anything)

	for _, title := range []string{"first", "second"} {
		require.NoError(t, f.notifications.Notify(ctx, &usecase.NotifyInput{
			UserID: ada.ID,
			Kind:   entity.NotificationNewPost,
			Title:  title,
			Body:   "body",
		}))
	}

	notifications, err := f.notifications.ListNotifications(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "second", notifications[0].Title, "notifications are most recent first")
	assert.False(t, notifications[0].Read)

	f.publisher.AssertNumberOfCalls(t, "PublishNotificationEvent", 2)
	f.publisher.AssertCalled(t, "PublishNotificationEvent", mock.Anything, mock.MatchedBy(func(e *service.NotificationEvent) bool {
		return e.Title == "second" && e.NotificationID == notifications[0].ID.String()
	}))
}

func TestNotificationService_MarkAllRead_Idempotent(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	ada := f.register(t, "Ada", "a@x.com", entity.RoleMiner)
	ben := f.register(t, "Ben", "b@x.com", entity.RoleBuyer)
	ctx := context.Background()

	for _, userID := range []uuid.UUID{ada.ID, ada.ID, ben.ID} {
		require.NoError(t, f.notifications.Notify(ctx, &usecase.NotifyInput{UserID: userID, Title: "t"}))
	}

	changed, err := f.notifications.MarkAllRead(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = f.notifications.MarkAllRead(ctx, ada.ID)
	require.NoError(t, err)
	assert.Zero(t, changed)

	adaNotes, err := f.notifications.ListNotifications(ctx, ada.ID)
	require.NoError(t, err)
	for _, n := range adaNotes {
		assert.True(t, n.Read)
	}

	benNotes, err := f.notifications.ListNotifications(ctx, ben.ID)
	require.NoError(t, err)
	require.Len(t, benNotes, 1)
	assert.False(t, benNotes[0].Read, "other users are untouched")
}
