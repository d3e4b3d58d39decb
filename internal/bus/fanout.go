package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"charitybridge/internal/logger"
)

// LocalBroadcaster pushes a payload to the user's connections on this
// instance. The websocket hub implements it.
type LocalBroadcaster interface {
	Broadcast(ctx context.Context, userID string, payload []byte) error
}

// Publisher is the subset of *Bus the fan-out needs.
type Publisher interface {
	Publish(ctx context.Context, subj string, data []byte) error
}

type envelope struct {
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// Fanout makes a user push visible to every instance: Broadcast publishes on
// the subject and Listen delivers what arrives to the local hub.
type Fanout struct {
	pub     Publisher
	subject string
	local   LocalBroadcaster
}

func NewFanout(pub Publisher, subject string, local LocalBroadcaster) *Fanout {
	return &Fanout{pub: pub, subject: subject, local: local}
}

func (f *Fanout) Broadcast(ctx context.Context, userID string, payload []byte) error {
	data, err := json.Marshal(envelope{UserID: userID, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode fanout envelope: %w", err)
	}
	return f.pub.Publish(ctx, f.subject, data)
}

// Handle is the subscription callback. Malformed envelopes are dropped, not
// redelivered.
func (f *Fanout) Handle(ctx context.Context, data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.CtxWarn(ctx, "dropping malformed fanout envelope", "error", err)
		return nil
	}
	if env.UserID == "" {
		return nil
	}
	return f.local.Broadcast(ctx, env.UserID, env.Payload)
}

// Listen subscribes with an ephemeral consumer and blocks until ctx ends.
func (f *Fanout) Listen(ctx context.Context, b *Bus) error {
	sub, err := b.Subscribe(ctx, f.subject, "", f.Handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", f.subject, err)
	}
	logger.Info("fanout listener started", "subject", f.subject)

	<-ctx.Done()
	return sub.Close()
}
