package models

import "time"

type Claim struct {
	BaseModel
	DonationID string      `gorm:"type:uuid;not null;index" json:"donation_id"`
	CharityID  string      `gorm:"type:uuid;not null;index" json:"charity_id"`
	Status     ClaimStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes      *string     `gorm:"type:text" json:"notes,omitempty"`
	PickupDate *time.Time  `gorm:"type:date" json:"pickup_date,omitempty"`

	Donation *Donation `gorm:"foreignKey:DonationID" json:"donation,omitempty"`
	Charity  *User     `gorm:"foreignKey:CharityID" json:"charity,omitempty"`
}

// DonorID returns the donation owner when the donation relation is loaded.
func (c *Claim) DonorID() string {
	if c == nil || c.Donation == nil {
		return ""
	}
	return c.Donation.UserID
}
