package repositories

import (
	"time"

	"charitybridge/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=outbox_repository.go -destination=mocks/outbox_repository_mock.go -package=mocks

type OutboxRepository interface {
	Enqueue(db *gorm.DB, event *models.OutboxEvent) error
	// ClaimDue locks up to limit pending events whose next attempt is due.
	// Concurrent dispatchers skip rows another one holds.
	ClaimDue(db *gorm.DB, now time.Time, limit int) ([]models.OutboxEvent, error)
	Save(db *gorm.DB, event *models.OutboxEvent) error
	PurgeDelivered(db *gorm.DB, before time.Time) (int64, error)
	CountByStatus(db *gorm.DB) (map[models.OutboxStatus]int64, error)
}

type OutboxRepositoryImpl struct{}

func NewOutboxRepository() OutboxRepository {
	return &OutboxRepositoryImpl{}
}

func (r *OutboxRepositoryImpl) Enqueue(db *gorm.DB, event *models.OutboxEvent) error {
	if event.Status == "" {
		event.Status = models.OutboxStatusPending
	}
	if event.NextAttemptAt.IsZero() {
		event.NextAttemptAt = time.Now()
	}
	if event.DeliveredChannels == nil {
		event.DeliveredChannels = []string{}
	}
	return db.Create(event).Error
}

func (r *OutboxRepositoryImpl) ClaimDue(db *gorm.DB, now time.Time, limit int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := db.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND next_attempt_at <= ?", models.OutboxStatusPending, now).
		Order("next_attempt_at ASC").
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *OutboxRepositoryImpl) Save(db *gorm.DB, event *models.OutboxEvent) error {
	return db.Model(&models.OutboxEvent{}).Where("id = ?", event.ID).Updates(map[string]interface{}{
		"status":             event.Status,
		"attempts":           event.Attempts,
		"delivered_channels": event.DeliveredChannels,
		"last_error":         event.LastError,
		"next_attempt_at":    event.NextAttemptAt,
		"processed_at":       event.ProcessedAt,
	}).Error
}

func (r *OutboxRepositoryImpl) PurgeDelivered(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("status = ? AND processed_at < ?", models.OutboxStatusDelivered, before).
		Delete(&models.OutboxEvent{})
	return result.RowsAffected, result.Error
}

func (r *OutboxRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.OutboxStatus]int64, error) {
	var rows []struct {
		Status models.OutboxStatus
		Count  int64
	}
	err := db.Model(&models.OutboxEvent{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OutboxStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
