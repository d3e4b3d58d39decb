package dto

import (
	"encoding/json"

	"charitybridge/internal/models"
)

const dateLayout = "2006-01-02"

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{
		ID:    u.ID,
		Name:  u.DisplayName(),
		Email: u.Email,
		Role:  u.Role,
	}
	if u.CharityProfile != nil {
		s.OrganizationName = u.CharityProfile.OrganizationName
		s.Verified = u.CharityProfile.Verified
	}
	return s
}

func NewDonationResponse(d *models.Donation) *DonationResponse {
	if d == nil {
		return nil
	}
	resp := &DonationResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		Quantity:      d.Quantity,
		Location:      d.Location,
		MonetaryValue: d.MonetaryValue,
		IsUrgent:      d.IsUrgent,
		Status:        d.Status,
		Owner:         NewUserSummary(d.Owner),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.ExpiryDate != nil {
		s := d.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &s
	}
	return resp
}

func NewClaimResponse(c *models.Claim) *ClaimResponse {
	if c == nil {
		return nil
	}
	resp := &ClaimResponse{
		ID:         c.ID,
		DonationID: c.DonationID,
		CharityID:  c.CharityID,
		Status:     c.Status,
		Notes:      c.Notes,
		Donation:   NewDonationResponse(c.Donation),
		Charity:    NewUserSummary(c.Charity),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.PickupDate != nil {
		s := c.PickupDate.Format(dateLayout)
		resp.PickupDate = &s
	}
	return resp
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:        m.ID,
		ClaimID:   m.ClaimID,
		SenderID:  m.SenderID,
		Sender:    NewUserSummary(m.Sender),
		Content:   m.Content,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		_ = json.Unmarshal(n.Data, &resp.Data)
	}
	return resp
}
