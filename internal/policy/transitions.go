package policy

import (
	"errors"

	"charitybridge/internal/models"
)

// ClaimEvent names an edge of the claim lifecycle.
type ClaimEvent string

const (
	EventRequest  ClaimEvent = "request"
	EventCancel   ClaimEvent = "cancel"
	EventApprove  ClaimEvent = "approve"
	EventReject   ClaimEvent = "reject"
	EventComplete ClaimEvent = "complete"
)

var ErrIllegalTransition = errors.New("illegal claim transition")

// statusDeleted marks the cancel edge: the row is removed.
const statusDeleted models.ClaimStatus = ""

var claimTransitions = map[ClaimEvent]struct {
	from models.ClaimStatus
	to   models.ClaimStatus
}{
	EventCancel:   {models.ClaimStatusPending, statusDeleted},
	EventApprove:  {models.ClaimStatusPending, models.ClaimStatusApproved},
	EventReject:   {models.ClaimStatusPending, models.ClaimStatusRejected},
	EventComplete: {models.ClaimStatusApproved, models.ClaimStatusCompleted},
}

// NextClaimStatus returns the status a claim in current moves to on ev.
// For EventCancel the returned status is empty, meaning the claim is deleted.
// EventRequest only creates claims and is never valid on an existing one.
func NextClaimStatus(current models.ClaimStatus, ev ClaimEvent) (models.ClaimStatus, error) {
	t, ok := claimTransitions[ev]
	if !ok || t.from != current {
		return current, ErrIllegalTransition
	}
	return t.to, nil
}

// DonationStatusAfter returns the donation status implied by a claim edge, and
// whether the edge touches the donation at all.
func DonationStatusAfter(ev ClaimEvent) (from, to models.DonationStatus, ok bool) {
	switch ev {
	case EventApprove:
		return models.DonationStatusAvailable, models.DonationStatusClaimed, true
	case EventComplete:
		return models.DonationStatusClaimed, models.DonationStatusCompleted, true
	}
	return "", "", false
}
