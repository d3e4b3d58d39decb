package repositories

import (
	"errors"
	"time"

	"charitybridge/internal/models"

	"gorm.io/gorm"
)

//go:generate mockgen -source=message_repository.go -destination=mocks/message_repository_mock.go -package=mocks

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	// ListThread returns the claim's messages ordered by (created_at, id).
	ListThread(db *gorm.DB, claimID string) ([]models.Message, error)
	// MarkThreadRead marks unread messages in the thread not authored by
	// readerID and returns the number updated.
	MarkThreadRead(db *gorm.DB, claimID, readerID string, at time.Time) (int64, error)
	MarkRead(db *gorm.DB, id string, at time.Time) error
	CountUnread(db *gorm.DB, claimID, readerID string) (int64, error)
	CountUnreadForUser(db *gorm.DB, userID string) (int64, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Omit("Sender").Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) ListThread(db *gorm.DB, claimID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Preload("Sender").Preload("Sender.CharityProfile").
		Where("claim_id = ?", claimID).
		Order("seq ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkThreadRead(db *gorm.DB, claimID, readerID string, at time.Time) (int64, error) {
	result := db.Model(&models.Message{}).
		Where("claim_id = ? AND sender_id <> ? AND is_read = ?", claimID, readerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) MarkRead(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.Error
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, claimID, readerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("claim_id = ? AND sender_id <> ? AND is_read = ?", claimID, readerID, false).
		Count(&count).Error
	return count, err
}

// CountUnreadForUser counts unread messages across every thread the user is a
// counterparty of.
func (r *MessageRepositoryImpl) CountUnreadForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Joins("JOIN claims ON claims.id = messages.claim_id").
		Joins("JOIN donations ON donations.id = claims.donation_id").
		Where("(claims.charity_id = ? OR donations.user_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
