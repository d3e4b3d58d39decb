package dto

import "time"

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	ID        string       `json:"id"`
	ClaimID   string       `json:"claim_id"`
	SenderID  string       `json:"sender_id"`
	Sender    *UserSummary `json:"sender,omitempty"`
	Content   string       `json:"content"`
	IsRead    bool         `json:"is_read"`
	ReadAt    *time.Time   `json:"read_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type ThreadResponse struct {
	ClaimID     string             `json:"claim_id"`
	ClaimTitle  string             `json:"claim_title"`
	Messages    []*MessageResponse `json:"messages"`
	UnreadCount int64              `json:"unread_count"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
