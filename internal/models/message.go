package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message rows are append-only. Only IsRead/ReadAt ever change.
// Seq and CreatedAt are assigned by Postgres; Seq is the thread order.
type Message struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Seq       int64      `gorm:"->;column:seq;index:idx_messages_thread,priority:2" json:"-"`
	ClaimID   string     `gorm:"type:uuid;not null;index:idx_messages_thread,priority:1" json:"claim_id"`
	SenderID  string     `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now();autoCreateTime:false" json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
