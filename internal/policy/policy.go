// Package policy holds the access rules of the marketplace. Every function is
// pure: callers load the records (with their Donation relation) first.
package policy

import "charitybridge/internal/models"

// Actor is the authenticated caller as read from the bearer token.
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a Actor) IsAdmin() bool   { return a.Role == models.UserRoleAdmin }
func (a Actor) IsCharity() bool { return a.Role == models.UserRoleCharity }
func (a Actor) IsDonor() bool   { return a.Role == models.UserRoleDonor }

// IsCounterparty reports whether the actor is the claim's charity or the
// owner of the claimed donation.
func IsCounterparty(actor Actor, claim *models.Claim) bool {
	if claim == nil || actor.ID == "" {
		return false
	}
	if claim.CharityID == actor.ID {
		return true
	}
	return claim.DonorID() != "" && claim.DonorID() == actor.ID
}

func CanView(actor Actor, claim *models.Claim) bool {
	return IsCounterparty(actor, claim)
}

// CanMessage does not look at the claim status: a thread stays open after
// rejection or completion.
func CanMessage(actor Actor, claim *models.Claim) bool {
	return CanView(actor, claim)
}

func CanMarkMessageRead(actor Actor, claim *models.Claim) bool {
	return IsCounterparty(actor, claim)
}

func CanManageDonation(actor Actor, donation *models.Donation) bool {
	if donation == nil {
		return false
	}
	return actor.IsAdmin() || (actor.ID != "" && donation.UserID == actor.ID)
}

func CanCreateDonation(actor Actor) bool {
	return actor.IsDonor() || actor.IsAdmin()
}

func CanCancelClaim(actor Actor, claim *models.Claim) bool {
	return claim != nil && actor.ID != "" && claim.CharityID == actor.ID
}

func CanCompleteClaim(actor Actor, claim *models.Claim) bool {
	return actor.IsAdmin() || IsCounterparty(actor, claim)
}

// CanInspectClaim covers the read-only claim endpoints.
func CanInspectClaim(actor Actor, claim *models.Claim) bool {
	return actor.IsAdmin() || IsCounterparty(actor, claim)
}

func CanArbitrate(actor Actor) bool {
	return actor.IsAdmin()
}

func CanRequestClaim(actor Actor) bool {
	return actor.IsCharity()
}
