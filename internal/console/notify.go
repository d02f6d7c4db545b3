package console

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jacksonlee411/medcover-console/pkg/uuidv7"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Phase string

const (
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseLeaving  Phase = "leaving"
	PhaseRemoved  Phase = "removed"
)

const (
	EntryDelay      = 100 * time.Millisecond
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
	ExitDuration    = 300 * time.Millisecond
)

type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Phase is measured from creation: visible after EntryDelay, leaving once the level's
// duration has elapsed, removed ExitDuration later.
func (n Notification) Phase(now time.Time) Phase {
	age := now.Sub(n.CreatedAt)
	hideAt := SuccessDuration
	if n.Level == LevelError {
		hideAt = ErrorDuration
	}
	switch {
	case age < EntryDelay:
		return PhaseEntering
	case age < hideAt:
		return PhaseVisible
	case age < hideAt+ExitDuration:
		return PhaseLeaving
	default:
		return PhaseRemoved
	}
}

type ActiveNotification struct {
	Notification
	Phase Phase `json:"phase"`
}

// Notifier keeps transient operator messages. Notifications never block and are
// dropped once removed.
type Notifier struct {
	clock clockwork.Clock

	mu    sync.Mutex
	items []Notification
}

func NewNotifier(clock clockwork.Clock) *Notifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Notifier{clock: clock}
}

func (n *Notifier) Success(msg string) Notification { return n.push(LevelSuccess, msg) }

func (n *Notifier) Error(msg string) Notification { return n.push(LevelError, msg) }

func (n *Notifier) push(level Level, msg string) Notification {
	note := Notification{ID: uuidv7.NewString(), Level: level, Message: msg, CreatedAt: n.clock.Now()}
	n.mu.Lock()
	n.items = append(n.items, note)
	n.mu.Unlock()
	return note
}

// Active returns every notification not yet removed, oldest first, with its phase.
func (n *Notifier) Active() []ActiveNotification {
	now := n.clock.Now()
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.items[:0]
	out := make([]ActiveNotification, 0, len(n.items))
	for _, item := range n.items {
		phase := item.Phase(now)
		if phase == PhaseRemoved {
			continue
		}
		kept = append(kept, item)
		out = append(out, ActiveNotification{Notification: item, Phase: phase})
	}
	n.items = kept
	return out
}
