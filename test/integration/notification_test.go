//go:build integration

package integration_test

import (
	"net/http"
	"testing"

	"charitybridge/internal/models"
	"charitybridge/internal/services/dto"
	"charitybridge/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxDeliversToFeed(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	charity := helpers.NewActor(t, models.UserRoleCharity, "charity")

	donation := ts.CreateDonation(t, donor, "Baby formula")
	claim := ts.RequestClaim(t, charity, donation.ID)

	ts.DoJSON(t, http.MethodPost, "/api/v1/claims/"+claim.ID+"/messages", charity,
		map[string]any{"content": "We would love to take this"}, http.StatusCreated, nil)
	waitForOutbox(t, ts, models.NotificationTypeNewMessage, 1)

	res := ts.DrainOutbox(t)
	assert.Equal(t, 1, res.Claimed)
	assert.Equal(t, 1, res.Delivered)

	var event models.OutboxEvent
	require.NoError(t, ts.DB.Where("aggregate_id = ?", claim.ID).First(&event).Error)
	assert.Equal(t, models.OutboxStatusDelivered, event.Status)
	assert.Equal(t, donor.ID, event.RecipientID)

	// повторный проход ничего не забирает
	assert.Zero(t, ts.DrainOutbox(t).Claimed)

	var feed dto.NotificationListResponse
	ts.DoJSON(t, http.MethodGet, "/api/v1/notifications", donor, nil, http.StatusOK, &feed)
	require.Len(t, feed.Notifications, 1)
	assert.EqualValues(t, 1, feed.UnreadCount)
	n := feed.Notifications[0]
	assert.Equal(t, models.NotificationTypeNewMessage, n.Type)
	assert.Contains(t, n.Title, "charity")
	assert.Equal(t, "We would love to take this", n.Message)

	t.Run("the sender gets nothing", func(t *testing.T) {
		var own dto.NotificationListResponse
		ts.DoJSON(t, http.MethodGet, "/api/v1/notifications", charity, nil, http.StatusOK, &own)
		assert.Empty(t, own.Notifications)
	})

	t.Run("other users cannot touch it", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/"+n.ID+"/read", charity.Token, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	ts.DoJSON(t, http.MethodPost, "/api/v1/notifications/"+n.ID+"/read", donor, nil, http.StatusNoContent, nil)
	ts.DoJSON(t, http.MethodGet, "/api/v1/notifications", donor, nil, http.StatusOK, &feed)
	assert.Zero(t, feed.UnreadCount)

	ts.DoJSON(t, http.MethodDelete, "/api/v1/notifications/"+n.ID, donor, nil, http.StatusNoContent, nil)
	ts.DoJSON(t, http.MethodGet, "/api/v1/notifications", donor, nil, http.StatusOK, &feed)
	assert.Empty(t, feed.Notifications)
}

func TestClaimStatusNotifiesCharity(t *testing.T) {
	ts := setup(t)

	donor := helpers.NewActor(t, models.UserRoleDonor, "donor")
	charity := helpers.NewActor(t, models.UserRoleCharity, "charity")
	admin := helpers.NewActor(t, models.UserRoleAdmin, "admin")

	donation := ts.CreateDonation(t, donor, "School supplies")
	claim := ts.RequestClaim(t, charity, donation.ID)
	ts.DoJSON(t, http.MethodPost, "/api/v1/admin/claims/"+claim.ID+"/approve", admin, nil, http.StatusOK, nil)

	waitForOutbox(t, ts, models.NotificationTypeClaimStatus, 1)
	ts.DrainOutbox(t)

	var feed dto.NotificationListResponse
	ts.DoJSON(t, http.MethodGet, "/api/v1/notifications?type=claim_status", charity, nil, http.StatusOK, &feed)
	require.Len(t, feed.Notifications, 1)
	assert.Equal(t, "Claim approved", feed.Notifications[0].Title)

	var marked map[string]int64
	ts.DoJSON(t, http.MethodPost, "/api/v1/notifications/read-all", charity, nil, http.StatusOK, &marked)
	assert.EqualValues(t, 1, marked["updated"])
}
