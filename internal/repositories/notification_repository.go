package repositories

import (
	"errors"
	"time"

	"charitybridge/internal/models"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repository.go -destination=mocks/notification_repository_mock.go -package=mocks

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindForUser(db *gorm.DB, id, userID string) (*models.Notification, error)
	List(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, id, userID string, at time.Time) error
	MarkAllRead(db *gorm.DB, userID string, at time.Time) (int64, error)
	Delete(db *gorm.DB, id, userID string) error
}

// NotificationCriteria filters a user's feed. Read nil means both.
type NotificationCriteria struct {
	Type string
	Read *bool
	Pagination
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

// FindForUser treats another user's notification as missing.
func (r *NotificationRepositoryImpl) FindForUser(db *gorm.DB, id, userID string) (*models.Notification, error) {
	var n models.Notification
	err := db.First(&n, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) List(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Read != nil {
		query = query.Where("is_read = ?", *criteria.Read)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	err := query.Order("created_at DESC").
		Order("id DESC").
		Limit(criteria.Limit()).
		Offset(criteria.Offset()).
		Find(&items).Error
	return items, total, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, id, userID string, at time.Time) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, userID string, at time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
