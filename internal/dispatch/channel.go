package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"charitybridge/internal/models"

	"gorm.io/gorm"
)

// Channel names accepted in notifier.channels.
const (
	ChannelDatabase  = "database"
	ChannelMail      = "mail"
	ChannelBroadcast = "broadcast"
)

//go:generate mockgen -source=channel.go -destination=mocks/channel_mock.go -package=mocks

// Channel delivers one rendered notification. db is the dispatcher's
// transaction; channels that do not touch the database ignore it.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, db *gorm.DB, d *Delivery) error
}

// Delivery is an outbox event rendered for its recipient.
type Delivery struct {
	Event     *models.OutboxEvent
	Recipient *models.User
	Title     string
	Body      string
	Link      string
	// Template data for the mail channel.
	Vars map[string]any
}

// pushPayload is what websocket clients receive.
type pushPayload struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Link      string          `json:"link,omitempty"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

func (d *Delivery) push() ([]byte, error) {
	data := json.RawMessage(d.Event.Payload)
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return json.Marshal(pushPayload{
		ID:        d.Event.ID,
		Type:      d.Event.Type,
		Title:     d.Title,
		Message:   d.Body,
		Link:      d.Link,
		Data:      data,
		CreatedAt: d.Event.CreatedAt,
	})
}
