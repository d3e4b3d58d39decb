package models

type UserRole string
type DonationStatus string
type DonationCategory string
type ClaimStatus string
type OutboxStatus string

const (
	UserRoleDonor   UserRole = "donor"
	UserRoleCharity UserRole = "charity"
	UserRoleAdmin   UserRole = "admin"

	DonationStatusAvailable DonationStatus = "available"
	DonationStatusClaimed   DonationStatus = "claimed"
	DonationStatusCompleted DonationStatus = "completed"

	CategoryFood    DonationCategory = "food"
	CategoryClothes DonationCategory = "clothes"
	CategoryMoney   DonationCategory = "money"
	CategoryOther   DonationCategory = "other"

	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCompleted ClaimStatus = "completed"

	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// CategoryAll is the listing filter value meaning "no category filter".
const CategoryAll = "all"

var DonationCategories = []DonationCategory{CategoryFood, CategoryClothes, CategoryMoney, CategoryOther}

var ClaimStatuses = []ClaimStatus{ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCompleted}

func (c DonationCategory) Valid() bool {
	for _, v := range DonationCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (s ClaimStatus) Valid() bool {
	for _, v := range ClaimStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Active claims block a second claim by the same charity on the same donation.
func (s ClaimStatus) Active() bool {
	return s == ClaimStatusPending || s == ClaimStatusApproved
}

func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusRejected || s == ClaimStatusCompleted
}

func (r UserRole) Valid() bool {
	return r == UserRoleDonor || r == UserRoleCharity || r == UserRoleAdmin
}
