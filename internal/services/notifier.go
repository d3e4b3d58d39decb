package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"charitybridge/internal/logger"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrRecipientUnresolved means the counterparty of a message could not be
// determined. It is logged and never surfaced to the sender.
var ErrRecipientUnresolved = errors.New("notification recipient could not be resolved")

//go:generate mockgen -source=notifier.go -destination=mocks/notifier_mock.go -package=mocks

// Notifier turns domain events into outbox rows. It always runs after the
// originating transaction has committed.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, db *gorm.DB, message *models.Message, claim *models.Claim) error
	NotifyClaimStatus(ctx context.Context, db *gorm.DB, claim *models.Claim) error
}

// NewMessagePayload is the outbox payload of a new_message event.
type NewMessagePayload struct {
	Message    string `json:"message"`
	MessageID  string `json:"message_id"`
	ClaimID    string `json:"claim_id"`
	ClaimTitle string `json:"claim_title"`
	SenderID   string `json:"sender_id"`
}

// ClaimStatusPayload is the outbox payload of a claim_status event.
type ClaimStatusPayload struct {
	ClaimID    string             `json:"claim_id"`
	DonationID string             `json:"donation_id"`
	ClaimTitle string             `json:"claim_title"`
	Status     models.ClaimStatus `json:"status"`
}

type outboxNotifier struct {
	outboxRepo repositories.OutboxRepository
	wake       func()
}

// NewNotifier returns a Notifier backed by the outbox table. wake, when not
// nil, nudges the dispatcher so delivery does not wait for the next tick.
func NewNotifier(outboxRepo repositories.OutboxRepository, wake func()) Notifier {
	return &outboxNotifier{outboxRepo: outboxRepo, wake: wake}
}

// ResolveRecipient returns the counterparty who did not send the message.
func ResolveRecipient(message *models.Message, claim *models.Claim) (string, error) {
	if message == nil || claim == nil || claim.Donation == nil {
		return "", ErrRecipientUnresolved
	}
	switch message.SenderID {
	case claim.CharityID:
		return claim.Donation.UserID, nil
	case claim.Donation.UserID:
		return claim.CharityID, nil
	default:
		return "", ErrRecipientUnresolved
	}
}

func (n *outboxNotifier) NotifyNewMessage(ctx context.Context, db *gorm.DB, message *models.Message, claim *models.Claim) error {
	recipientID, err := ResolveRecipient(message, claim)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(NewMessagePayload{
		Message:    message.Content,
		MessageID:  message.ID,
		ClaimID:    claim.ID,
		ClaimTitle: claim.Donation.Title,
		SenderID:   message.SenderID,
	})
	if err != nil {
		return fmt.Errorf("encode new_message payload: %w", err)
	}

	return n.enqueue(ctx, db, &models.OutboxEvent{
		Type:        models.NotificationTypeNewMessage,
		AggregateID: claim.ID,
		RecipientID: recipientID,
		Payload:     datatypes.JSON(payload),
	})
}

func (n *outboxNotifier) NotifyClaimStatus(ctx context.Context, db *gorm.DB, claim *models.Claim) error {
	if claim == nil {
		return ErrRecipientUnresolved
	}

	title := ""
	if claim.Donation != nil {
		title = claim.Donation.Title
	}
	payload, err := json.Marshal(ClaimStatusPayload{
		ClaimID:    claim.ID,
		DonationID: claim.DonationID,
		ClaimTitle: title,
		Status:     claim.Status,
	})
	if err != nil {
		return fmt.Errorf("encode claim_status payload: %w", err)
	}

	return n.enqueue(ctx, db, &models.OutboxEvent{
		Type:        models.NotificationTypeClaimStatus,
		AggregateID: claim.ID,
		RecipientID: claim.CharityID,
		Payload:     datatypes.JSON(payload),
	})
}

func (n *outboxNotifier) enqueue(ctx context.Context, db *gorm.DB, event *models.OutboxEvent) error {
	if err := n.outboxRepo.Enqueue(db.WithContext(ctx), event); err != nil {
		return fmt.Errorf("enqueue %s event: %w", event.Type, err)
	}
	logger.CtxDebug(ctx, "outbox event enqueued", "event_id", event.ID, "type", event.Type, "recipient_id", event.RecipientID)
	if n.wake != nil {
		n.wake()
	}
	return nil
}
