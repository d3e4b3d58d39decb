package models

import "time"

type Donation struct {
	BaseModel
	UserID        string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Category      DonationCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Quantity      *int             `json:"quantity,omitempty"`
	Location      string           `gorm:"size:255;not null" json:"location"`
	MonetaryValue *float64         `gorm:"type:decimal(10,2)" json:"monetary_value,omitempty"`
	ExpiryDate    *time.Time       `gorm:"type:date" json:"expiry_date,omitempty"`
	IsUrgent      bool             `gorm:"default:false" json:"is_urgent"`
	Status        DonationStatus   `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`

	Owner  *User   `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Claims []Claim `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"claims,omitempty"`
}

// DonationWithClaimCount is the row shape of the donor's own listing.
type DonationWithClaimCount struct {
	Donation
	ClaimCount int64 `json:"claim_count"`
}
