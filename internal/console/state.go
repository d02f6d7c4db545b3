package console

import (
	"time"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// State is a JSON snapshot of the console for the status endpoint.
type State struct {
	Section       types.Section       `json:"section"`
	Nav           []NavItem           `json:"nav"`
	Loading       bool                `json:"loading"`
	ModalOpen     bool                `json:"modalOpen"`
	ModalTitle    string              `json:"modalTitle,omitempty"`
	HasReport     bool                `json:"hasReport"`
	Degraded      []types.Kind        `json:"degraded"`
	Notifications []NotificationState `json:"notifications"`
	Loaded        map[types.Kind]bool `json:"loaded"`
	At            time.Time           `json:"at"`
}

type NotificationState struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Phase   Phase  `json:"phase"`
}

func (a *App) State() State {
	m := a.Modal()
	_, hasReport := a.Report()
	s := State{
		Section:       a.Section(),
		Nav:           a.Nav(),
		Loading:       a.Loading(),
		ModalOpen:     m.Open,
		ModalTitle:    m.Title,
		HasReport:     hasReport,
		Degraded:      []types.Kind{},
		Notifications: []NotificationState{},
		Loaded:        make(map[types.Kind]bool),
		At:            a.clock.Now().UTC(),
	}
	for _, k := range types.Kinds() {
		s.Loaded[k] = a.cache.Loaded(k)
		if a.isDegraded(k) {
			s.Degraded = append(s.Degraded, k)
		}
	}
	for _, n := range a.notes.Active() {
		s.Notifications = append(s.Notifications, NotificationState{
			ID: n.ID, Level: n.Level, Message: n.Message, Phase: n.Phase,
		})
	}
	return s
}
