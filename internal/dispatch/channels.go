package dispatch

import (
	"context"
	"errors"
	"fmt"

	"charitybridge/internal/email"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNoAddress is returned by the mail channel for recipients without an
// email. The dispatcher treats it as delivered.
var ErrNoAddress = errors.New("recipient has no email address")

// DatabaseChannel writes the in-app feed row.
type DatabaseChannel struct {
	repo repositories.NotificationRepository
}

func NewDatabaseChannel(repo repositories.NotificationRepository) *DatabaseChannel {
	return &DatabaseChannel{repo: repo}
}

func (c *DatabaseChannel) Name() string { return ChannelDatabase }

// Deliver runs in a savepoint so a failed insert does not abort the
// dispatcher's transaction.
func (c *DatabaseChannel) Deliver(ctx context.Context, db *gorm.DB, d *Delivery) error {
	n := &models.Notification{
		UserID:  d.Recipient.ID,
		Type:    d.Event.Type,
		Title:   d.Title,
		Message: d.Body,
		Data:    datatypes.JSON(d.Event.Payload),
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return c.repo.Create(tx, n)
	})
}

// MailChannel sends the templated email.
type MailChannel struct {
	provider email.Provider
}

func NewMailChannel(provider email.Provider) *MailChannel {
	return &MailChannel{provider: provider}
}

func (c *MailChannel) Name() string { return ChannelMail }

func (c *MailChannel) Deliver(ctx context.Context, _ *gorm.DB, d *Delivery) error {
	if d.Recipient.Email == "" {
		return ErrNoAddress
	}

	tpl := email.TemplateClaimStatus
	if d.Event.Type == models.NotificationTypeNewMessage {
		tpl = email.TemplateNewMessage
	}
	if err := c.provider.SendTemplate(ctx, []string{d.Recipient.Email}, d.Title, tpl, email.TemplateData(d.Vars)); err != nil {
		return fmt.Errorf("send %s mail: %w", d.Event.Type, err)
	}
	return nil
}

// Broadcaster pushes a payload to a user's live connections. The websocket
// hub and the NATS fan-out both satisfy it.
type Broadcaster interface {
	Broadcast(ctx context.Context, userID string, payload []byte) error
}

// BroadcastChannel pushes to connected clients of the recipient.
type BroadcastChannel struct {
	target Broadcaster
}

func NewBroadcastChannel(target Broadcaster) *BroadcastChannel {
	return &BroadcastChannel{target: target}
}

func (c *BroadcastChannel) Name() string { return ChannelBroadcast }

func (c *BroadcastChannel) Deliver(ctx context.Context, _ *gorm.DB, d *Delivery) error {
	payload, err := d.push()
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}
	return c.target.Broadcast(ctx, d.Recipient.ID, payload)
}
