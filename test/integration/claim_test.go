//go:build integration

package integration_test

import (
	"net/http"
	"sync"
	"testing"

	"charitybridge/internal/models"
	"charitybridge/internal/services/dto"
	"charitybridge/pkg/apperrors"
	"charitybridge/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimLifecycle(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	foodBank := helpers.NewActor(t, models.UserRoleCharity, "foodbank")
	shelter := helpers.NewActor(t, models.UserRoleCharity, "shelter")
	admin := helpers.NewActor(t, models.UserRoleAdmin, "admin")

	donation := ts.CreateDonation(t, donor, "Vegetables")
	assert.Equal(t, models.DonationStatusAvailable, donation.Status)

	first := ts.RequestClaim(t, foodBank, donation.ID)
	second := ts.RequestClaim(t, shelter, donation.ID)
	assert.Equal(t, models.ClaimStatusPending, first.Status)

	t.Run("duplicate active claim is rejected", func(t *testing.T) {
		code := ts.ExpectError(t, http.MethodPost, "/api/v1/donations/"+donation.ID+"/claims", foodBank, nil, http.StatusConflict)
		assert.Equal(t, apperrors.CodeConflict, code)
	})

	t.Run("donor cannot approve", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/claims/"+first.ID+"/approve", donor.Token, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	var approved dto.ClaimResponse
	ts.DoJSON(t, http.MethodPost, "/api/v1/admin/claims/"+first.ID+"/approve", admin, nil, http.StatusOK, &approved)
	assert.Equal(t, models.ClaimStatusApproved, approved.Status)

	var sibling dto.ClaimResponse
	ts.DoJSON(t, http.MethodGet, "/api/v1/claims/"+second.ID, shelter, nil, http.StatusOK, &sibling)
	assert.Equal(t, models.ClaimStatusRejected, sibling.Status)

	var claimed dto.DonationResponse
	ts.DoJSON(t, http.MethodGet, "/api/v1/donations/"+donation.ID, donor, nil, http.StatusOK, &claimed)
	assert.Equal(t, models.DonationStatusClaimed, claimed.Status)

	t.Run("claimed donation takes no new claims", func(t *testing.T) {
		late := helpers.NewActor(t, models.UserRoleCharity, "late")
		code := ts.ExpectError(t, http.MethodPost, "/api/v1/donations/"+donation.ID+"/claims", late, nil, http.StatusConflict)
		assert.Equal(t, apperrors.CodeInvalidState, code)
	})

	t.Run("rejected sibling cannot be approved afterwards", func(t *testing.T) {
		code := ts.ExpectError(t, http.MethodPost, "/api/v1/admin/claims/"+second.ID+"/approve", admin, nil, http.StatusConflict)
		assert.Equal(t, apperrors.CodeInvalidState, code)

		assert.Equal(t, models.ClaimStatusRejected, ts.ClaimStatus(t, second.ID))
		assert.Equal(t, models.ClaimStatusApproved, ts.ClaimStatus(t, first.ID))
		assert.Equal(t, models.DonationStatusClaimed, ts.DonationStatus(t, donation.ID))
	})

	t.Run("stale pending claim on a claimed donation", func(t *testing.T) {
		stale := helpers.NewActor(t, models.UserRoleCharity, "stale")
		// первый запрос синхронизирует пользователя, нужен для внешнего ключа
		ts.DoJSON(t, http.MethodGet, "/api/v1/charity/claims", stale, nil, http.StatusOK, nil)
		staleID := ts.InsertClaim(t, donation.ID, stale.ID, models.ClaimStatusPending)

		code := ts.ExpectError(t, http.MethodPost, "/api/v1/admin/claims/"+staleID+"/approve", admin, nil, http.StatusConflict)
		assert.Equal(t, apperrors.CodeInvalidState, code)

		assert.Equal(t, models.ClaimStatusPending, ts.ClaimStatus(t, staleID))
		assert.Equal(t, models.ClaimStatusApproved, ts.ClaimStatus(t, first.ID))
		assert.Equal(t, models.DonationStatusClaimed, ts.DonationStatus(t, donation.ID))

		require.NoError(t, ts.DB.Delete(&models.Claim{}, "id = ?", staleID).Error)
	})

	var completed dto.ClaimResponse
	ts.DoJSON(t, http.MethodPost, "/api/v1/claims/"+first.ID+"/complete", donor, nil, http.StatusOK, &completed)
	assert.Equal(t, models.ClaimStatusCompleted, completed.Status)

	ts.DoJSON(t, http.MethodGet, "/api/v1/donations/"+donation.ID, donor, nil, http.StatusOK, &claimed)
	assert.Equal(t, models.DonationStatusCompleted, claimed.Status)

	// approve: one for the winner, one for the rejected sibling
	waitForOutbox(t, ts, models.NotificationTypeClaimStatus, 2)
}

func TestCompletePendingClaimIsInvalid(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	charity := helpers.NewActor(t, models.UserRoleCharity, "charity")
	admin := helpers.NewActor(t, models.UserRoleAdmin, "admin")
	donation := ts.CreateDonation(t, donor, "Blankets")
	claim := ts.RequestClaim(t, charity, donation.ID)

	for _, actor := range []helpers.Actor{donor, charity, admin} {
		code := ts.ExpectError(t, http.MethodPost, "/api/v1/claims/"+claim.ID+"/complete", actor, nil, http.StatusConflict)
		assert.Equal(t, apperrors.CodeInvalidState, code, "actor role %s", actor.Role)
	}

	assert.Equal(t, models.ClaimStatusPending, ts.ClaimStatus(t, claim.ID))
	assert.Equal(t, models.DonationStatusAvailable, ts.DonationStatus(t, donation.ID))

	// отклонённую тоже нельзя завершить
	ts.DoJSON(t, http.MethodPost, "/api/v1/admin/claims/"+claim.ID+"/reject", admin, nil, http.StatusOK, nil)
	code := ts.ExpectError(t, http.MethodPost, "/api/v1/claims/"+claim.ID+"/complete", donor, nil, http.StatusConflict)
	assert.Equal(t, apperrors.CodeInvalidState, code)
	assert.Equal(t, models.ClaimStatusRejected, ts.ClaimStatus(t, claim.ID))
	assert.Equal(t, models.DonationStatusAvailable, ts.DonationStatus(t, donation.ID))
}

func TestConcurrentApproveHasOneWinner(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	admin := helpers.NewActor(t, models.UserRoleAdmin, "admin")
	donation := ts.CreateDonation(t, donor, "Winter coats")

	const charities = 5
	claimIDs := make([]string, 0, charities)
	for i := 0; i < charities; i++ {
		charity := helpers.NewActor(t, models.UserRoleCharity, "charity")
		claimIDs = append(claimIDs, ts.RequestClaim(t, charity, donation.ID).ID)
	}

	// первый запрос создаёт пользователя, гонка должна быть только за заявку
	ts.DoJSON(t, http.MethodGet, "/api/v1/admin/claims", admin, nil, http.StatusOK, nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	for _, id := range claimIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/claims/"+id+"/approve", admin.Token, nil)
			mu.Lock()
			statuses[res.StatusCode]++
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, statuses[http.StatusOK], "statuses: %v", statuses)
	assert.Equal(t, charities-1, statuses[http.StatusConflict], "statuses: %v", statuses)
	assert.Equal(t, models.DonationStatusClaimed, ts.DonationStatus(t, donation.ID))

	var approved int64
	require.NoError(t, ts.DB.Model(&models.Claim{}).
		Where("donation_id = ? AND status = ?", donation.ID, models.ClaimStatusApproved).
		Count(&approved).Error)
	assert.EqualValues(t, 1, approved)
}

func TestCancelClaim(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	charity := helpers.NewActor(t, models.UserRoleCharity, "charity")
	other := helpers.NewActor(t, models.UserRoleCharity, "other")
	donation := ts.CreateDonation(t, donor, "Rice")
	claim := ts.RequestClaim(t, charity, donation.ID)

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/claims/"+claim.ID, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/claims/"+claim.ID, charity.Token, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	// отменённую заявку можно подать заново
	again := ts.RequestClaim(t, charity, donation.ID)
	assert.NotEqual(t, claim.ID, again.ID)
}
