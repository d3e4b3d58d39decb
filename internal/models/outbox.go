package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OutboxEvent is a notification waiting to be fanned out to delivery channels.
// It is written after the business transaction commits and processed by the
// outbox worker.
type OutboxEvent struct {
	ID                string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Type              string                      `gorm:"not null;index" json:"type"`
	AggregateID       string                      `gorm:"type:uuid;not null;index" json:"aggregate_id"`
	RecipientID       string                      `gorm:"type:uuid;not null" json:"recipient_id"`
	Payload           datatypes.JSON              `gorm:"type:jsonb;not null" json:"payload"`
	Status            OutboxStatus                `gorm:"type:varchar(20);not null;default:'pending';index:idx_outbox_due,priority:1" json:"status"`
	Attempts          int                         `gorm:"not null;default:0" json:"attempts"`
	DeliveredChannels datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"delivered_channels"`
	LastError         string                      `gorm:"type:text" json:"last_error,omitempty"`
	NextAttemptAt     time.Time                   `gorm:"not null;default:now();index:idx_outbox_due,priority:2" json:"next_attempt_at"`
	CreatedAt         time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	ProcessedAt       *time.Time                  `json:"processed_at,omitempty"`
}

func (e *OutboxEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e *OutboxEvent) Delivered(channel string) bool {
	return slices.Contains(e.DeliveredChannels, channel)
}

func (e *OutboxEvent) MarkChannel(channel string) {
	if !e.Delivered(channel) {
		e.DeliveredChannels = append(e.DeliveredChannels, channel)
	}
}
