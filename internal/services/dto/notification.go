package dto

import "time"

type ListNotificationsRequest struct {
	Type     string `form:"type" json:"type" validate:"omitempty,oneof=new_message claim_status"`
	Read     *bool  `form:"read" json:"read"`
	Page     int    `form:"page" json:"page" validate:"min=0"`
	PageSize int    `form:"page_size" json:"page_size" validate:"min=0,max=100"`
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int64                   `json:"unread_count"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
	TotalPages    int                     `json:"total_pages"`
}
