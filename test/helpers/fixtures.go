//go:build integration

package helpers

import (
	"net/http"
	"testing"

	"charitybridge/internal/models"
	"charitybridge/internal/services/dto"

	"github.com/stretchr/testify/require"
)

// CreateDonation lists a food donation through the API.
func (ts *TestServer) CreateDonation(t *testing.T, donor Actor, title string) *dto.DonationResponse {
	t.Helper()
	qty := 10
	var resp dto.DonationResponse
	ts.DoJSON(t, http.MethodPost, "/api/v1/donations", donor, map[string]any{
		"title":       title,
		"description": "Fresh produce from the weekend market",
		"category":    "food",
		"quantity":    qty,
		"location":    "Almaty, Abay 10",
		"is_urgent":   true,
	}, http.StatusCreated, &resp)
	return &resp
}

// RequestClaim files a claim on behalf of the charity.
func (ts *TestServer) RequestClaim(t *testing.T, charity Actor, donationID string) *dto.ClaimResponse {
	t.Helper()
	var resp dto.ClaimResponse
	ts.DoJSON(t, http.MethodPost, "/api/v1/donations/"+donationID+"/claims", charity, map[string]any{
		"notes": "We can pick up tomorrow morning",
	}, http.StatusCreated, &resp)
	return &resp
}

// InsertClaim writes a claim row directly, bypassing the ledger guards. Used to
// stage states the API would never produce on its own, such as a pending claim
// left on an already claimed donation.
func (ts *TestServer) InsertClaim(t *testing.T, donationID, charityID string, status models.ClaimStatus) string {
	t.Helper()
	claim := &models.Claim{DonationID: donationID, CharityID: charityID, Status: status}
	require.NoError(t, ts.DB.Create(claim).Error)
	return claim.ID
}

// ClaimStatus reads the stored status, skipping the API and its access rules.
func (ts *TestServer) ClaimStatus(t *testing.T, id string) models.ClaimStatus {
	t.Helper()
	var claim models.Claim
	require.NoError(t, ts.DB.Select("status").Where("id = ?", id).Take(&claim).Error)
	return claim.Status
}

func (ts *TestServer) DonationStatus(t *testing.T, id string) models.DonationStatus {
	t.Helper()
	var donation models.Donation
	require.NoError(t, ts.DB.Select("status").Where("id = ?", id).Take(&donation).Error)
	return donation.Status
}
