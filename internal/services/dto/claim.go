package dto

import (
	"time"

	"charitybridge/internal/models"
)

// ---------------- Requests ----------------

type CreateClaimRequest struct {
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PickupDate *string `json:"pickup_date,omitempty" validate:"omitempty,is-date"`
}

type ListClaimsRequest struct {
	Status   string `form:"status" json:"status" validate:"omitempty,is-claim-status"`
	Page     int    `form:"page" json:"page" validate:"min=0"`
	PageSize int    `form:"page_size" json:"page_size" validate:"min=0,max=100"`
}

// ---------------- Responses ----------------

type ClaimResponse struct {
	ID         string             `json:"id"`
	DonationID string             `json:"donation_id"`
	CharityID  string             `json:"charity_id"`
	Status     models.ClaimStatus `json:"status"`
	Notes      *string            `json:"notes,omitempty"`
	PickupDate *string            `json:"pickup_date,omitempty"`
	Donation   *DonationResponse  `json:"donation,omitempty"`
	Charity    *UserSummary       `json:"charity,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type ClaimListResponse struct {
	Claims     []*ClaimResponse `json:"claims"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

type CharityStatsResponse struct {
	Submitted          int64 `json:"submitted"`
	Pending            int64 `json:"pending"`
	Approved           int64 `json:"approved"`
	Rejected           int64 `json:"rejected"`
	Completed          int64 `json:"completed"`
	AvailableDonations int64 `json:"available_donations"`
}
