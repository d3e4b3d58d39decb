package policy

import (
	"testing"

	"charitybridge/internal/models"

	"github.com/stretchr/testify/assert"
)

func fixtureClaim(status models.ClaimStatus) *models.Claim {
	return &models.Claim{
		BaseModel:  models.BaseModel{ID: "claim-1"},
		DonationID: "don-1",
		CharityID:  "charity-1",
		Status:     status,
		Donation: &models.Donation{
			BaseModel: models.BaseModel{ID: "don-1"},
			UserID:    "donor-1",
			Status:    models.DonationStatusAvailable,
		},
	}
}

var (
	donor    = Actor{ID: "donor-1", Role: models.UserRoleDonor}
	charity  = Actor{ID: "charity-1", Role: models.UserRoleCharity}
	stranger = Actor{ID: "charity-2", Role: models.UserRoleCharity}
	admin    = Actor{ID: "admin-1", Role: models.UserRoleAdmin}
)

func TestCanView(t *testing.T) {
	claim := fixtureClaim(models.ClaimStatusPending)

	assert.True(t, CanView(donor, claim))
	assert.True(t, CanView(charity, claim))
	assert.False(t, CanView(stranger, claim))
	assert.False(t, CanView(admin, claim), "admins are not thread participants")
	assert.False(t, CanView(Actor{}, claim))
}

func TestCanView_WithoutDonationRelation(t *testing.T) {
	claim := fixtureClaim(models.ClaimStatusPending)
	claim.Donation = nil

	assert.True(t, CanView(charity, claim))
	assert.False(t, CanView(donor, claim))
}

func TestCanMessage_AnyStatus(t *testing.T) {
	for _, status := range models.ClaimStatuses {
		claim := fixtureClaim(status)
		assert.True(t, CanMessage(donor, claim), status)
		assert.True(t, CanMessage(charity, claim), status)
		assert.False(t, CanMessage(stranger, claim), status)
	}
}

func TestCanManageDonation(t *testing.T) {
	d := fixtureClaim(models.ClaimStatusPending).Donation

	assert.True(t, CanManageDonation(donor, d))
	assert.True(t, CanManageDonation(admin, d))
	assert.False(t, CanManageDonation(charity, d))
	assert.False(t, CanManageDonation(donor, nil))
}

func TestClaimActors(t *testing.T) {
	claim := fixtureClaim(models.ClaimStatusApproved)

	assert.True(t, CanCancelClaim(charity, claim))
	assert.False(t, CanCancelClaim(donor, claim))
	assert.False(t, CanCancelClaim(admin, claim))

	assert.True(t, CanCompleteClaim(donor, claim))
	assert.True(t, CanCompleteClaim(charity, claim))
	assert.True(t, CanCompleteClaim(admin, claim))
	assert.False(t, CanCompleteClaim(stranger, claim))

	assert.True(t, CanArbitrate(admin))
	assert.False(t, CanArbitrate(donor))
	assert.True(t, CanRequestClaim(charity))
	assert.False(t, CanRequestClaim(donor))
	assert.False(t, CanRequestClaim(admin))

	assert.True(t, CanCreateDonation(donor))
	assert.True(t, CanCreateDonation(admin))
	assert.False(t, CanCreateDonation(charity))
}

func TestNextClaimStatus(t *testing.T) {
	tests := []struct {
		from    models.ClaimStatus
		ev      ClaimEvent
		want    models.ClaimStatus
		wantErr bool
	}{
		{models.ClaimStatusPending, EventApprove, models.ClaimStatusApproved, false},
		{models.ClaimStatusPending, EventReject, models.ClaimStatusRejected, false},
		{models.ClaimStatusPending, EventCancel, "", false},
		{models.ClaimStatusApproved, EventComplete, models.ClaimStatusCompleted, false},
		{models.ClaimStatusPending, EventComplete, models.ClaimStatusPending, true},
		{models.ClaimStatusRejected, EventReject, models.ClaimStatusRejected, true},
		{models.ClaimStatusApproved, EventCancel, models.ClaimStatusApproved, true},
		{models.ClaimStatusApproved, EventApprove, models.ClaimStatusApproved, true},
		{models.ClaimStatusCompleted, EventComplete, models.ClaimStatusCompleted, true},
		{models.ClaimStatusPending, EventRequest, models.ClaimStatusPending, true},
	}

	for _, tt := range tests {
		got, err := NextClaimStatus(tt.from, tt.ev)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s on %s", tt.ev, tt.from)
		} else {
			assert.NoError(t, err, "%s on %s", tt.ev, tt.from)
		}
		assert.Equal(t, tt.want, got, "%s on %s", tt.ev, tt.from)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	events := []ClaimEvent{EventRequest, EventCancel, EventApprove, EventReject, EventComplete}
	for _, status := range []models.ClaimStatus{models.ClaimStatusRejected, models.ClaimStatusCompleted} {
		for _, ev := range events {
			_, err := NextClaimStatus(status, ev)
			assert.Error(t, err, "%s on %s", ev, status)
		}
	}
}
