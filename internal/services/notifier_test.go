package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"charitybridge/internal/models"
	repomocks "charitybridge/internal/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestResolveRecipient(t *testing.T) {
	claim := testClaim(models.ClaimStatusApproved)

	tests := []struct {
		name    string
		sender  string
		claim   *models.Claim
		want    string
		wantErr bool
	}{
		{name: "charity writes to donor", sender: charity.ID, claim: claim, want: donor.ID},
		{name: "donor writes to charity", sender: donor.ID, claim: claim, want: charity.ID},
		{name: "stranger", sender: outsider.ID, claim: claim, wantErr: true},
		{name: "donation not loaded", sender: charity.ID, claim: &models.Claim{CharityID: charity.ID}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRecipient(&models.Message{SenderID: tt.sender}, tt.claim)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRecipientUnresolved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotifier_NotifyNewMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := repomocks.NewMockOutboxRepository(ctrl)
	woken := 0
	n := NewNotifier(outbox, func() { woken++ })

	claim := testClaim(models.ClaimStatusPending)
	msg := &models.Message{ID: "m1", ClaimID: claim.ID, SenderID: charity.ID, Content: "When can we collect?"}

	outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ *gorm.DB, ev *models.OutboxEvent) error {
		assert.Equal(t, models.NotificationTypeNewMessage, ev.Type)
		assert.Equal(t, donor.ID, ev.RecipientID)
		assert.Equal(t, claim.ID, ev.AggregateID)

		var p NewMessagePayload
		require.NoError(t, json.Unmarshal(ev.Payload, &p))
		assert.Equal(t, NewMessagePayload{
			Message:    "When can we collect?",
			MessageID:  "m1",
			ClaimID:    claim.ID,
			ClaimTitle: "Vegetables",
			SenderID:   charity.ID,
		}, p)
		return nil
	})

	require.NoError(t, n.NotifyNewMessage(context.Background(), dryRunDB(t), msg, claim))
	assert.Equal(t, 1, woken)
}

func TestNotifier_NotifyNewMessage_UnresolvedSkipsOutbox(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := NewNotifier(repomocks.NewMockOutboxRepository(ctrl), nil)

	claim := testClaim(models.ClaimStatusPending)
	err := n.NotifyNewMessage(context.Background(), dryRunDB(t), &models.Message{SenderID: admin.ID}, claim)
	assert.ErrorIs(t, err, ErrRecipientUnresolved)
}

func TestNotifier_NotifyClaimStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := repomocks.NewMockOutboxRepository(ctrl)
	n := NewNotifier(outbox, nil)

	claim := testClaim(models.ClaimStatusRejected)

	outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ *gorm.DB, ev *models.OutboxEvent) error {
		assert.Equal(t, models.NotificationTypeClaimStatus, ev.Type)
		assert.Equal(t, charity.ID, ev.RecipientID)

		var p ClaimStatusPayload
		require.NoError(t, json.Unmarshal(ev.Payload, &p))
		assert.Equal(t, models.ClaimStatusRejected, p.Status)
		assert.Equal(t, claim.DonationID, p.DonationID)
		return nil
	})

	require.NoError(t, n.NotifyClaimStatus(context.Background(), dryRunDB(t), claim))
}

func TestNotifier_EnqueueFailureDoesNotWake(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := repomocks.NewMockOutboxRepository(ctrl)
	woken := false
	n := NewNotifier(outbox, func() { woken = true })

	outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	err := n.NotifyClaimStatus(context.Background(), dryRunDB(t), testClaim(models.ClaimStatusApproved))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue claim_status event")
	assert.False(t, woken)
}
