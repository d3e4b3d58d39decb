package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"charitybridge/internal/models"
	repomocks "charitybridge/internal/repositories/mocks"
	"charitybridge/internal/services/dto"
	"charitybridge/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type messageFixture struct {
	messages *repomocks.MockMessageRepository
	claims   *repomocks.MockClaimRepository
	svc      MessageService
}

func newMessageFixture(t *testing.T) *messageFixture {
	ctrl := gomock.NewController(t)
	f := &messageFixture{
		messages: repomocks.NewMockMessageRepository(ctrl),
		claims:   repomocks.NewMockClaimRepository(ctrl),
	}
	svc := NewMessageService(f.messages, f.claims, nil, nil)
	svc.(*messageService).now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func TestMessageService_PostMessage_ContentValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace", content: " \n\t "},
		{name: "too long", content: strings.Repeat("ы", MaxMessageLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture(t)
			_, err := f.svc.PostMessage(context.Background(), dryRunDB(t), charity, "c1", &dto.PostMessageRequest{Content: tt.content})
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
		})
	}
}

func TestMessageService_ListMessages(t *testing.T) {
	ctx := context.Background()
	db := dryRunDB(t)

	t.Run("outsider", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusPending)
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)

		_, err := f.svc.ListMessages(ctx, db, outsider, claim.ID)
		assert.ErrorIs(t, err, apperrors.ErrThreadAccessDenied)
	})

	t.Run("admin is not a thread party", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusApproved)
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)

		_, err := f.svc.ListMessages(ctx, db, admin, claim.ID)
		assert.ErrorIs(t, err, apperrors.ErrThreadAccessDenied)
	})

	t.Run("donor reads thread of a rejected claim", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusRejected)
		thread := []models.Message{
			{ID: "m1", ClaimID: claim.ID, SenderID: charity.ID, Content: "Can we pick up Friday?"},
			{ID: "m2", ClaimID: claim.ID, SenderID: donor.ID, Content: "Sure"},
		}
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)
		f.messages.EXPECT().ListThread(gomock.Any(), claim.ID).Return(thread, nil)
		f.messages.EXPECT().CountUnread(gomock.Any(), claim.ID, donor.ID).Return(int64(1), nil)

		resp, err := f.svc.ListMessages(ctx, db, donor, claim.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vegetables", resp.ClaimTitle)
		assert.Len(t, resp.Messages, 2)
		assert.EqualValues(t, 1, resp.UnreadCount)
	})
}

func TestMessageService_MarkMessageRead(t *testing.T) {
	ctx := context.Background()
	db := dryRunDB(t)

	t.Run("sender is a no-op", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusPending)
		msg := &models.Message{ID: "m1", ClaimID: claim.ID, SenderID: charity.ID, Content: "hi"}
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(msg, nil)
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)

		resp, err := f.svc.MarkMessageRead(ctx, db, charity, "m1")
		require.NoError(t, err)
		assert.False(t, resp.IsRead)
		assert.Nil(t, resp.ReadAt)
	})

	t.Run("recipient marks read", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusPending)
		msg := &models.Message{ID: "m1", ClaimID: claim.ID, SenderID: charity.ID, Content: "hi"}
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(msg, nil)
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)
		f.messages.EXPECT().MarkRead(gomock.Any(), "m1", fixedNow).Return(nil)

		resp, err := f.svc.MarkMessageRead(ctx, db, donor, "m1")
		require.NoError(t, err)
		assert.True(t, resp.IsRead)
		require.NotNil(t, resp.ReadAt)
		assert.True(t, fixedNow.Equal(*resp.ReadAt))
	})

	t.Run("outsider", func(t *testing.T) {
		f := newMessageFixture(t)
		claim := testClaim(models.ClaimStatusPending)
		msg := &models.Message{ID: "m1", ClaimID: claim.ID, SenderID: charity.ID}
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(msg, nil)
		f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)

		_, err := f.svc.MarkMessageRead(ctx, db, outsider, "m1")
		assert.ErrorIs(t, err, apperrors.ErrThreadAccessDenied)
	})
}

func TestMessageService_MarkThreadRead(t *testing.T) {
	f := newMessageFixture(t)
	claim := testClaim(models.ClaimStatusApproved)
	f.claims.EXPECT().FindByID(gomock.Any(), claim.ID).Return(claim, nil)
	f.messages.EXPECT().MarkThreadRead(gomock.Any(), claim.ID, charity.ID, fixedNow).Return(int64(3), nil)

	n, err := f.svc.MarkThreadRead(context.Background(), dryRunDB(t), charity, claim.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
