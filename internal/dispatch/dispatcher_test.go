package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"charitybridge/internal/dispatch"
	"charitybridge/internal/dispatch/mocks"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"
	repomocks "charitybridge/internal/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	outbox   *repomocks.MockOutboxRepository
	users    *repomocks.MockUserRepository
	database *mocks.MockChannel
	mail     *mocks.MockChannel
	d        *dispatch.Dispatcher
	saved    []models.OutboxEvent
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		outbox:   repomocks.NewMockOutboxRepository(ctrl),
		users:    repomocks.NewMockUserRepository(ctrl),
		database: mocks.NewMockChannel(ctrl),
		mail:     mocks.NewMockChannel(ctrl),
	}
	f.database.EXPECT().Name().Return(dispatch.ChannelDatabase).AnyTimes()
	f.mail.EXPECT().Name().Return(dispatch.ChannelMail).AnyTimes()

	f.d = dispatch.NewDispatcher(f.outbox, f.users, []dispatch.Channel{f.database, f.mail}, nil, dispatch.Options{
		MaxAttempts: 3,
		BaseBackoff: 30 * time.Second,
		MaxBackoff:  10 * time.Minute,
		PublicURL:   "https://app.example.org/",
	})
	f.d.SetClock(func() time.Time { return fixedNow })
	f.d.RunWithoutTx()

	f.outbox.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ *gorm.DB, e *models.OutboxEvent) error {
		f.saved = append(f.saved, *e)
		return nil
	}).AnyTimes()
	return f
}

func (f *fixture) due(events ...models.OutboxEvent) {
	f.outbox.EXPECT().ClaimDue(gomock.Any(), fixedNow, 10).Return(events, nil)
}

func claimStatusEvent(t *testing.T) models.OutboxEvent {
	payload, err := json.Marshal(map[string]any{
		"claim_id":    "claim-1",
		"donation_id": "donation-1",
		"claim_title": "Winter coats",
		"status":      "approved",
	})
	require.NoError(t, err)
	return models.OutboxEvent{
		ID:                "event-1",
		Type:              models.NotificationTypeClaimStatus,
		AggregateID:       "claim-1",
		RecipientID:       "charity-1",
		Payload:           datatypes.JSON(payload),
		Status:            models.OutboxStatusPending,
		DeliveredChannels: []string{},
	}
}

func charity() *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: "charity-1"}, Name: "Food Bank", Email: "bank@example.org", Role: models.UserRoleCharity}
}

func TestDispatchBatch_AllChannelsDelivered(t *testing.T) {
	f := newFixture(t)
	f.due(claimStatusEvent(t))
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(charity(), nil)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *gorm.DB, d *dispatch.Delivery) error {
			assert.Equal(t, "Claim approved", d.Title)
			assert.Equal(t, "https://app.example.org/claims/claim-1", d.Link)
			return nil
		})
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Result{Claimed: 1, Delivered: 1}, res)

	require.Len(t, f.saved, 1)
	saved := f.saved[0]
	assert.Equal(t, models.OutboxStatusDelivered, saved.Status)
	assert.ElementsMatch(t, []string{dispatch.ChannelDatabase, dispatch.ChannelMail}, []string(saved.DeliveredChannels))
	require.NotNil(t, saved.ProcessedAt)
	assert.Equal(t, fixedNow, *saved.ProcessedAt)
}

func TestDispatchBatch_PartialFailureSchedulesRetry(t *testing.T) {
	f := newFixture(t)
	f.due(claimStatusEvent(t))
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(charity(), nil)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp: connection refused"))

	res, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Retried)

	saved := f.saved[0]
	assert.Equal(t, models.OutboxStatusPending, saved.Status)
	assert.Equal(t, 1, saved.Attempts)
	assert.Equal(t, fixedNow.Add(30*time.Second), saved.NextAttemptAt)
	assert.Contains(t, saved.LastError, "mail: smtp: connection refused")
	assert.Equal(t, []string{dispatch.ChannelDatabase}, []string(saved.DeliveredChannels))
	assert.Nil(t, saved.ProcessedAt)
}

func TestDispatchBatch_RetrySkipsDeliveredChannels(t *testing.T) {
	f := newFixture(t)
	event := claimStatusEvent(t)
	event.Attempts = 1
	event.DeliveredChannels = []string{dispatch.ChannelDatabase}
	f.due(event)
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(charity(), nil)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusDelivered, f.saved[0].Status)
	assert.Equal(t, 1, f.saved[0].Attempts)
}

func TestDispatchBatch_FailsAfterMaxAttempts(t *testing.T) {
	f := newFixture(t)
	event := claimStatusEvent(t)
	event.Attempts = 2
	f.due(event)
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(charity(), nil)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	res, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, models.OutboxStatusFailed, f.saved[0].Status)
	assert.Equal(t, 3, f.saved[0].Attempts)
	assert.NotNil(t, f.saved[0].ProcessedAt)
}

func TestDispatchBatch_MissingAddressCountsAsDelivered(t *testing.T) {
	f := newFixture(t)
	f.due(claimStatusEvent(t))
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(nil, repositories.ErrUserNotFound)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *gorm.DB, d *dispatch.Delivery) error {
			assert.Equal(t, "charity-1", d.Recipient.ID)
			return nil
		})
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(dispatch.ErrNoAddress)

	_, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusDelivered, f.saved[0].Status)
}

func TestDispatchBatch_UnknownTypeFailsWithoutDelivery(t *testing.T) {
	f := newFixture(t)
	event := claimStatusEvent(t)
	event.Type = "mystery"
	f.due(event)
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(charity(), nil)

	f.database.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.mail.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusFailed, f.saved[0].Status)
	assert.Equal(t, 1, f.saved[0].Attempts)
}

func TestDispatchBatch_RecipientLookupErrorIsRetried(t *testing.T) {
	f := newFixture(t)
	f.due(claimStatusEvent(t))
	f.users.EXPECT().FindByID(gomock.Any(), "charity-1").Return(nil, errors.New("connection reset"))

	_, err := f.d.DispatchBatch(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusPending, f.saved[0].Status)
	assert.Contains(t, f.saved[0].LastError, "load recipient")
}

func TestDispatchBatch_ClaimDueError(t *testing.T) {
	f := newFixture(t)
	f.outbox.EXPECT().ClaimDue(gomock.Any(), fixedNow, 10).Return(nil, errors.New("db down"))

	_, err := f.d.DispatchBatch(context.Background(), nil, 10)
	assert.ErrorContains(t, err, "db down")
	assert.Empty(t, f.saved)
}

func TestDispatcher_Backoff(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 30*time.Second, f.d.Backoff(1))
	assert.Equal(t, time.Minute, f.d.Backoff(2))
	assert.Equal(t, 4*time.Minute, f.d.Backoff(4))
	assert.Equal(t, 10*time.Minute, f.d.Backoff(10))
	assert.Equal(t, []string{dispatch.ChannelDatabase, dispatch.ChannelMail}, f.d.Channels())
}

func TestRender_NewMessage(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"message":     "Can you pick up tomorrow?",
		"message_id":  "m-1",
		"claim_id":    "claim-9",
		"claim_title": "Rice",
		"sender_id":   "donor-1",
	})
	event := &models.OutboxEvent{ID: "e", Type: models.NotificationTypeNewMessage, AggregateID: "claim-9", Payload: datatypes.JSON(payload)}
	sender := &models.User{BaseModel: models.BaseModel{ID: "donor-1"}, Name: "Dana"}

	d, err := dispatch.Render(event, charity(), sender, "http://localhost:4000")
	require.NoError(t, err)
	assert.Equal(t, "New message from Dana", d.Title)
	assert.Equal(t, "Can you pick up tomorrow?", d.Body)
	assert.Equal(t, "http://localhost:4000/claims/claim-9/messages", d.Link)
	assert.Equal(t, "Rice", d.Vars["ClaimTitle"])

	d, err = dispatch.Render(event, charity(), nil, "http://localhost:4000")
	require.NoError(t, err)
	assert.Equal(t, "New message from Someone", d.Title)
}

func TestRender_MalformedPayload(t *testing.T) {
	event := &models.OutboxEvent{Type: models.NotificationTypeNewMessage, Payload: datatypes.JSON(`{`)}
	_, err := dispatch.Render(event, charity(), nil, "")
	assert.Error(t, err)
}
