package dto

import (
	"time"

	"charitybridge/internal/models"
)

// ---------------- Requests ----------------

// CreateDonationRequest bounds quantity and monetary_value by their columns,
// integer and decimal(10,2).
type CreateDonationRequest struct {
	Title         string   `json:"title" validate:"required,notblank,max=255"`
	Description   string   `json:"description" validate:"required,notblank"`
	Category      string   `json:"category" validate:"required,is-category"`
	Quantity      *int     `json:"quantity,omitempty" validate:"omitempty,min=1,max=2147483647"`
	Location      string   `json:"location" validate:"required,notblank,max=255"`
	MonetaryValue *float64 `json:"monetary_value,omitempty" validate:"omitempty,min=0,max=99999999.99"`
	ExpiryDate    *string  `json:"expiry_date,omitempty" validate:"omitempty,is-date"`
	IsUrgent      bool     `json:"is_urgent"`
}

// UpdateDonationRequest carries only the editable fields. Category, quantity
// and monetary value are fixed once a donation is listed.
type UpdateDonationRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,notblank"`
	Location    *string `json:"location,omitempty" validate:"omitempty,notblank,max=255"`
	IsUrgent    *bool   `json:"is_urgent,omitempty"`
	ExpiryDate  *string `json:"expiry_date,omitempty" validate:"omitempty,is-date"`
}

type ListDonationsRequest struct {
	Query    string `form:"q" json:"q" validate:"max=255"`
	Category string `form:"category" json:"category" validate:"omitempty,is-category-filter"`
	Page     int    `form:"page" json:"page" validate:"min=0"`
	PageSize int    `form:"page_size" json:"page_size" validate:"min=0,max=100"`
}

// ---------------- Responses ----------------

type UserSummary struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email,omitempty"`
	Role             models.UserRole `json:"role"`
	OrganizationName string          `json:"organization_name,omitempty"`
	Verified         bool            `json:"verified,omitempty"`
}

type DonationResponse struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Category      models.DonationCategory `json:"category"`
	Quantity      *int                    `json:"quantity,omitempty"`
	Location      string                  `json:"location"`
	MonetaryValue *float64                `json:"monetary_value,omitempty"`
	ExpiryDate    *string                 `json:"expiry_date,omitempty"`
	IsUrgent      bool                    `json:"is_urgent"`
	Status        models.DonationStatus   `json:"status"`
	Owner         *UserSummary            `json:"owner,omitempty"`
	ClaimCount    *int64                  `json:"claim_count,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type DonationListResponse struct {
	Donations  []*DonationResponse `json:"donations"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

type DonorStatsResponse struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Claimed   int64 `json:"claimed"`
	Completed int64 `json:"completed"`
}
