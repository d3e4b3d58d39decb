package dispatch

import (
	"context"
	"time"

	"gorm.io/gorm"
)

func (d *Dispatcher) SetClock(now func() time.Time) { d.now = now }

// RunWithoutTx makes DispatchBatch call its body directly on the given db.
func (d *Dispatcher) RunWithoutTx() {
	d.inTx = func(_ context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
		return fn(db)
	}
}

func (d *Dispatcher) Backoff(attempts int) time.Duration { return d.backoff(attempts) }

var Render = render
