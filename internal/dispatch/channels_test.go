package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"charitybridge/internal/dispatch"
	"charitybridge/internal/email"
	"charitybridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	userID  string
	payload []byte
	err     error
}

func (b *fakeBroadcaster) Broadcast(_ context.Context, userID string, payload []byte) error {
	b.userID, b.payload = userID, payload
	return b.err
}

type fakeMailer struct {
	to       []string
	subject  string
	template string
	data     email.TemplateData
	err      error
}

func (m *fakeMailer) Send(context.Context, *email.Email) error { return m.err }
func (m *fakeMailer) Validate() error                          { return nil }
func (m *fakeMailer) SendTemplate(_ context.Context, to []string, subject, name string, data email.TemplateData) error {
	m.to, m.subject, m.template, m.data = to, subject, name, data
	return m.err
}

func delivery(t *testing.T) *dispatch.Delivery {
	event := claimStatusEvent(t)
	d, err := dispatch.Render(&event, charity(), nil, "http://localhost:4000")
	require.NoError(t, err)
	return d
}

func TestBroadcastChannel_PushesRenderedPayload(t *testing.T) {
	b := &fakeBroadcaster{}
	ch := dispatch.NewBroadcastChannel(b)

	require.NoError(t, ch.Deliver(context.Background(), nil, delivery(t)))
	assert.Equal(t, "charity-1", b.userID)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b.payload, &got))
	assert.Equal(t, models.NotificationTypeClaimStatus, got["type"])
	assert.Equal(t, "Claim approved", got["title"])
	assert.Equal(t, "approved", got["data"].(map[string]any)["status"])
}

func TestBroadcastChannel_PropagatesError(t *testing.T) {
	ch := dispatch.NewBroadcastChannel(&fakeBroadcaster{err: errors.New("nats: timeout")})
	assert.Error(t, ch.Deliver(context.Background(), nil, delivery(t)))
}

func TestMailChannel_UsesStatusTemplate(t *testing.T) {
	m := &fakeMailer{}
	ch := dispatch.NewMailChannel(m)

	require.NoError(t, ch.Deliver(context.Background(), nil, delivery(t)))
	assert.Equal(t, []string{"bank@example.org"}, m.to)
	assert.Equal(t, email.TemplateClaimStatus, m.template)
	assert.Equal(t, "Claim approved", m.subject)
	assert.Equal(t, "approved", m.data["Status"])
}

func TestMailChannel_NoAddress(t *testing.T) {
	d := delivery(t)
	d.Recipient = &models.User{BaseModel: models.BaseModel{ID: "charity-1"}}

	err := dispatch.NewMailChannel(&fakeMailer{}).Deliver(context.Background(), nil, d)
	assert.ErrorIs(t, err, dispatch.ErrNoAddress)
}
