package dispatch

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"charitybridge/internal/models"
)

const previewLength = 140

// eventPayload is the union of the new_message and claim_status payloads.
type eventPayload struct {
	Message    string             `json:"message"`
	MessageID  string             `json:"message_id"`
	ClaimID    string             `json:"claim_id"`
	DonationID string             `json:"donation_id"`
	ClaimTitle string             `json:"claim_title"`
	SenderID   string             `json:"sender_id"`
	Status     models.ClaimStatus `json:"status"`
}

func decodePayload(event *models.OutboxEvent) (*eventPayload, error) {
	var p eventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	if p.ClaimID == "" {
		p.ClaimID = event.AggregateID
	}
	return &p, nil
}

// render builds the user-facing text of an event. sender may be nil.
func render(event *models.OutboxEvent, recipient, sender *models.User, publicURL string) (*Delivery, error) {
	p, err := decodePayload(event)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(publicURL, "/")

	d := &Delivery{Event: event, Recipient: recipient}
	switch event.Type {
	case models.NotificationTypeNewMessage:
		senderName := "Someone"
		if sender != nil && sender.DisplayName() != "" {
			senderName = sender.DisplayName()
		}
		d.Title = fmt.Sprintf("New message from %s", senderName)
		d.Body = preview(p.Message)
		d.Link = fmt.Sprintf("%s/claims/%s/messages", base, p.ClaimID)
		d.Vars = map[string]any{
			"RecipientName": recipient.DisplayName(),
			"SenderName":    senderName,
			"ClaimTitle":    p.ClaimTitle,
			"Message":       p.Message,
			"Link":          d.Link,
		}

	case models.NotificationTypeClaimStatus:
		d.Title = fmt.Sprintf("Claim %s", p.Status)
		d.Body = fmt.Sprintf("Your claim for %q is now %s.", p.ClaimTitle, p.Status)
		d.Link = fmt.Sprintf("%s/claims/%s", base, p.ClaimID)
		d.Vars = map[string]any{
			"RecipientName": recipient.DisplayName(),
			"ClaimTitle":    p.ClaimTitle,
			"Status":        string(p.Status),
			"Link":          d.Link,
		}

	default:
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}
	return d, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLength {
		return s
	}
	r := []rune(s)
	return string(r[:previewLength-1]) + "…"
}
