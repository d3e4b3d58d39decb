package services

import (
	"context"
	"errors"
	"time"

	"charitybridge/internal/policy"
	"charitybridge/internal/repositories"
	"charitybridge/internal/services/dto"
	"charitybridge/pkg/apperrors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mocks/notification_service_mock.go -package=mocks

// NotificationService serves the in-app feed. A user only ever sees their own
// notifications; anybody else's id reads as NotFound.
type NotificationService interface {
	ListNotifications(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListNotificationsRequest) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, actor policy.Actor, notificationID string) error
	MarkAllAsRead(ctx context.Context, db *gorm.DB, actor policy.Actor) (int64, error)
	DeleteNotification(ctx context.Context, db *gorm.DB, actor policy.Actor, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListNotificationsRequest) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		Type:       req.Type,
		Read:       req.Read,
		Pagination: repositories.Pagination{Page: req.Page, PageSize: req.PageSize}.Normalize(),
	}

	items, total, err := s.notificationRepo.List(db.WithContext(ctx), actor.ID, criteria)
	if err != nil {
		return nil, handleNotificationError(err)
	}
	unread, err := s.notificationRepo.CountUnread(db.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, handleNotificationError(err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]*dto.NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
		TotalPages:    dto.TotalPages(total, criteria.PageSize),
	}
	for i := range items {
		resp.Notifications = append(resp.Notifications, dto.NewNotificationResponse(&items[i]))
	}
	return resp, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, actor policy.Actor, notificationID string) error {
	if err := s.notificationRepo.MarkRead(db.WithContext(ctx), notificationID, actor.ID, time.Now()); err != nil {
		return handleNotificationError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, db *gorm.DB, actor policy.Actor) (int64, error) {
	n, err := s.notificationRepo.MarkAllRead(db.WithContext(ctx), actor.ID, time.Now())
	if err != nil {
		return 0, handleNotificationError(err)
	}
	return n, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, db *gorm.DB, actor policy.Actor, notificationID string) error {
	if err := s.notificationRepo.Delete(db.WithContext(ctx), notificationID, actor.ID); err != nil {
		return handleNotificationError(err)
	}
	return nil
}

func handleNotificationError(err error) error {
	if errors.Is(err, repositories.ErrNotificationNotFound) || isRecordNotFound(err) {
		return apperrors.ErrNotificationNotFound.WithError(err)
	}
	return apperrors.InternalError(err)
}
