package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"
	"charitybridge/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const (
	DefaultMaxAttempts = 5
	DefaultBaseBackoff = 30 * time.Second
	DefaultMaxBackoff  = 10 * time.Minute
)

type Options struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	PublicURL   string
}

// Result summarizes one batch.
type Result struct {
	Claimed   int
	Delivered int
	Retried   int
	Failed    int
}

type Dispatcher struct {
	outboxRepo repositories.OutboxRepository
	userRepo   repositories.UserRepository
	channels   []Channel
	metrics    *metrics.Metrics
	opts       Options

	now  func() time.Time
	inTx func(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewDispatcher(
	outboxRepo repositories.OutboxRepository,
	userRepo repositories.UserRepository,
	channels []Channel,
	m *metrics.Metrics,
	opts Options,
) *Dispatcher {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = DefaultBaseBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = DefaultMaxBackoff
	}
	return &Dispatcher{
		outboxRepo: outboxRepo,
		userRepo:   userRepo,
		channels:   channels,
		metrics:    m,
		opts:       opts,
		now:        time.Now,
		inTx: func(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
	}
}

// Channels returns the names of the configured channels in delivery order.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// DispatchBatch locks up to limit due events, delivers each one on the
// channels it has not reached yet and records the outcome. Rows locked by
// another dispatcher are skipped.
func (d *Dispatcher) DispatchBatch(ctx context.Context, db *gorm.DB, limit int) (Result, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "outbox.dispatch")
	defer span.End()

	start := d.now()
	var res Result

	err := d.inTx(ctx, db, func(tx *gorm.DB) error {
		events, err := d.outboxRepo.ClaimDue(tx, d.now(), limit)
		if err != nil {
			return fmt.Errorf("claim due events: %w", err)
		}
		res.Claimed = len(events)

		for i := range events {
			event := &events[i]
			d.process(ctx, tx, event)

			switch event.Status {
			case models.OutboxStatusDelivered:
				res.Delivered++
			case models.OutboxStatusFailed:
				res.Failed++
			default:
				res.Retried++
			}

			if err := d.outboxRepo.Save(tx, event); err != nil {
				return fmt.Errorf("save outbox event %s: %w", event.ID, err)
			}
		}
		return nil
	})

	span.SetAttributes(
		attribute.Int("outbox.claimed", res.Claimed),
		attribute.Int("outbox.delivered", res.Delivered),
		attribute.Int("outbox.failed", res.Failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	if res.Claimed > 0 {
		d.metrics.ObserveDispatchBatch(d.now().Sub(start))
	}
	return res, nil
}

// process mutates event in place; it never returns an error because every
// failure becomes a retry or a terminal failure on the row itself.
func (d *Dispatcher) process(ctx context.Context, tx *gorm.DB, event *models.OutboxEvent) {
	log := logger.FromContext(ctx).With("event_id", event.ID, "type", event.Type)

	delivery, permanent, err := d.prepare(tx, event)
	if err != nil {
		d.finish(event, err, permanent)
		log.Error("outbox event not prepared", "permanent", permanent, "error", err)
		return
	}

	var errs []error
	for _, ch := range d.channels {
		if event.Delivered(ch.Name()) {
			continue
		}
		err := ch.Deliver(ctx, tx, delivery)
		switch {
		case err == nil:
			event.MarkChannel(ch.Name())
			d.metrics.IncDispatch(ch.Name(), "ok")
		case errors.Is(err, ErrNoAddress):
			event.MarkChannel(ch.Name())
			d.metrics.IncDispatch(ch.Name(), "skipped")
		default:
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			d.metrics.IncDispatch(ch.Name(), "error")
		}
	}

	d.finish(event, errors.Join(errs...), false)
	switch event.Status {
	case models.OutboxStatusDelivered:
		log.Debug("outbox event delivered", "attempts", event.Attempts)
	case models.OutboxStatusFailed:
		log.Error("outbox event failed permanently", "attempts", event.Attempts, "error", event.LastError)
	default:
		log.Warn("outbox event delivery failed, will retry",
			"attempts", event.Attempts, "next_attempt_at", event.NextAttemptAt, "error", event.LastError)
	}
}

// prepare reports permanent=true when the event itself is malformed and no
// retry can help.
func (d *Dispatcher) prepare(tx *gorm.DB, event *models.OutboxEvent) (*Delivery, bool, error) {
	recipient, err := d.userRepo.FindByID(tx, event.RecipientID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, false, fmt.Errorf("load recipient: %w", err)
		}
		// Users are materialized lazily from tokens; an unknown recipient
		// still gets the in-app and push channels.
		recipient = &models.User{BaseModel: models.BaseModel{ID: event.RecipientID}}
	}

	var sender *models.User
	if event.Type == models.NotificationTypeNewMessage {
		if p, err := decodePayload(event); err == nil && p.SenderID != "" {
			sender, _ = d.userRepo.FindByID(tx, p.SenderID)
		}
	}

	delivery, err := render(event, recipient, sender, d.opts.PublicURL)
	if err != nil {
		return nil, true, err
	}
	return delivery, false, nil
}

func (d *Dispatcher) finish(event *models.OutboxEvent, err error, permanent bool) {
	now := d.now()
	if err == nil {
		event.Status = models.OutboxStatusDelivered
		event.LastError = ""
		event.ProcessedAt = &now
		return
	}

	event.Attempts++
	event.LastError = truncate(err.Error(), 1000)
	if permanent || event.Attempts >= d.opts.MaxAttempts {
		event.Status = models.OutboxStatusFailed
		event.ProcessedAt = &now
		return
	}
	event.Status = models.OutboxStatusPending
	event.NextAttemptAt = now.Add(d.backoff(event.Attempts))
}

// backoff is base·2^(attempts-1), capped.
func (d *Dispatcher) backoff(attempts int) time.Duration {
	delay := d.opts.BaseBackoff
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= d.opts.MaxBackoff {
			return d.opts.MaxBackoff
		}
	}
	return delay
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
