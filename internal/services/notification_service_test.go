package services

import (
	"context"
	"testing"

	"charitybridge/internal/models"
	"charitybridge/internal/repositories"
	repomocks "charitybridge/internal/repositories/mocks"
	"charitybridge/internal/services/dto"
	"charitybridge/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestNotificationService_ListNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockNotificationRepository(ctrl)
	svc := NewNotificationService(repo)

	unreadOnly := false
	repo.EXPECT().List(gomock.Any(), donor.ID, gomock.Any()).DoAndReturn(
		func(_ *gorm.DB, _ string, c repositories.NotificationCriteria) ([]models.Notification, int64, error) {
			assert.Equal(t, models.NotificationTypeNewMessage, c.Type)
			require.NotNil(t, c.Read)
			assert.False(t, *c.Read)
			assert.Equal(t, 1, c.Page)
			return []models.Notification{
				{BaseModel: models.BaseModel{ID: "n1"}, UserID: donor.ID, Type: models.NotificationTypeNewMessage, Title: "New message"},
			}, 21, nil
		})
	repo.EXPECT().CountUnread(gomock.Any(), donor.ID).Return(int64(4), nil)

	resp, err := svc.ListNotifications(context.Background(), dryRunDB(t), donor, &dto.ListNotificationsRequest{
		Type: models.NotificationTypeNewMessage,
		Read: &unreadOnly,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 1)
	assert.EqualValues(t, 4, resp.UnreadCount)
	assert.EqualValues(t, 21, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestNotificationService_ForeignIDReadsAsNotFound(t *testing.T) {
	ctx := context.Background()
	db := dryRunDB(t)

	t.Run("mark read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockNotificationRepository(ctrl)
		repo.EXPECT().MarkRead(gomock.Any(), "n1", charity.ID, gomock.Any()).Return(repositories.ErrNotificationNotFound)

		err := NewNotificationService(repo).MarkAsRead(ctx, db, charity, "n1")
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockNotificationRepository(ctrl)
		repo.EXPECT().Delete(gomock.Any(), "n1", charity.ID).Return(repositories.ErrNotificationNotFound)

		err := NewNotificationService(repo).DeleteNotification(ctx, db, charity, "n1")
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	})
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockNotificationRepository(ctrl)
	repo.EXPECT().MarkAllRead(gomock.Any(), donor.ID, gomock.Any()).Return(int64(7), nil)

	n, err := NewNotificationService(repo).MarkAllAsRead(context.Background(), dryRunDB(t), donor)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}
