package console

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer lets through only the last of a burst of calls sharing a key.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration

	mu  sync.Mutex
	seq map[string]uint64
}

func NewDebouncer(clock clockwork.Clock, window time.Duration) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, window: window, seq: make(map[string]uint64)}
}

// Wait blocks for the quiescence window and reports whether the caller is still the
// latest for key. A superseded or cancelled caller gets false.
func (d *Debouncer) Wait(ctx context.Context, key string) bool {
	d.mu.Lock()
	d.seq[key]++
	mine := d.seq[key]
	d.mu.Unlock()

	if d.window > 0 {
		timer := d.clock.NewTimer(d.window)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.Chan():
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq[key] == mine
}
