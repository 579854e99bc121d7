package service

import (
	"context"
	"errors"
	"testing"

	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationInboxNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, svc.Push(&model.Notification{
			UserID: 1, Type: model.NotificationSystem, Title: title,
		}))
	}

	items, total, err := svc.List(1, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
}

func TestMarkReadOnlyByAddressee(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	n := &model.Notification{UserID: 1, Type: model.NotificationSystem, Title: "hello"}
	require.NoError(t, svc.Push(n))

	err := svc.MarkRead(2, n.ID)
	assert.True(t, errors.Is(err, util.ErrForbidden))

	require.NoError(t, svc.MarkRead(1, n.ID))

	count, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = svc.MarkRead(1, n.ID+99)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestUnreadCountWithoutRedis(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	require.NoError(t, svc.Push(&model.Notification{UserID: 1, Type: model.NotificationSubmission, Title: "a"}))
	require.NoError(t, svc.Push(&model.Notification{UserID: 1, Type: model.NotificationAssessment, Title: "b"}))
	require.NoError(t, svc.Push(&model.Notification{UserID: 2, Type: model.NotificationSystem, Title: "c"}))

	count, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
