// Package console is the view controller of the coverage console. App owns every piece
// of client-side state (active section, modal, notifications, current report) and
// turns operator events into Gateway calls and view descriptors.
package console

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/ports"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultSearchDebounce = 300 * time.Millisecond
)

type Options struct {
	Clock          clockwork.Clock
	Logger         *logger.Logger
	RequestTimeout time.Duration
	SearchDebounce time.Duration
}

type NavItem struct {
	Section types.Section `json:"section"`
	Title   string        `json:"title"`
	Active  bool          `json:"active"`
}

type App struct {
	gw       ports.Gateway
	cache    *services.Cache
	clock    clockwork.Clock
	log      *logger.Logger
	timeout  time.Duration
	validate *validator.Validate
	notes    *Notifier
	debounce *Debouncer
	bindings map[binding]Handler
	inflight atomic.Int64

	mu       sync.Mutex
	section  types.Section
	active   map[types.Section]bool
	modal    Modal
	report   *CurrentReport
	degraded map[types.Kind]bool
}

func New(gw ports.Gateway, cache *services.Cache, opts Options) *App {
	if cache == nil {
		cache = services.NewCache()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.SearchDebounce < 0 {
		opts.SearchDebounce = defaultSearchDebounce
	}
	a := &App{
		gw:       gw,
		cache:    cache,
		clock:    opts.Clock,
		log:      opts.Logger.With("console"),
		timeout:  opts.RequestTimeout,
		validate: newValidator(),
		notes:    NewNotifier(opts.Clock),
		debounce: NewDebouncer(opts.Clock, opts.SearchDebounce),
		section:  types.SectionDashboard,
		active:   map[types.Section]bool{types.SectionDashboard: true},
		degraded: make(map[types.Kind]bool),
	}
	a.bindings = a.defaultBindings()
	return a
}

func (a *App) Notifier() *Notifier { return a.notes }

func (a *App) Debouncer() *Debouncer { return a.debounce }

func (a *App) Cache() *services.Cache { return a.cache }

// Loading reports whether any Gateway call is in flight.
func (a *App) Loading() bool { return a.inflight.Load() > 0 }

// call runs one Gateway operation under the request timeout and the loading counter.
func (a *App) call(ctx context.Context, fn func(ctx context.Context) error) error {
	a.inflight.Add(1)
	defer a.inflight.Add(-1)
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return fn(ctx)
}

// Seed asks the backend to create its sample data. Failures are logged and ignored.
func (a *App) Seed(ctx context.Context) {
	if err := a.call(ctx, a.gw.Initialize); err != nil {
		a.log.Info().Err(err).Msg("sample data initialization skipped")
	}
}

func (a *App) Section() types.Section {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.section
}

func (a *App) Nav() []NavItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]NavItem, 0, len(types.Sections()))
	for _, s := range types.Sections() {
		out = append(out, NavItem{Section: s, Title: s.Title(), Active: a.active[s]})
	}
	return out
}

// SwitchSection deactivates every navigation item, activates s and loads its data.
func (a *App) SwitchSection(ctx context.Context, s types.Section) (Screen, error) {
	if _, ok := types.ParseSection(string(s)); !ok {
		return Screen{}, ErrUnknownSection
	}
	a.mu.Lock()
	for k := range a.active {
		a.active[k] = false
	}
	a.active[s] = true
	a.section = s
	a.mu.Unlock()

	if kind, ok := s.Kind(); ok {
		a.Reload(ctx, kind)
	}
	screen, err := a.Screen(ctx, s, services.Criteria{})
	if err != nil {
		return Screen{}, err
	}
	if a.Section() != s {
		return Screen{}, ErrSuperseded
	}
	return screen, nil
}

var (
	ErrUnknownSection = errors.New("console: unknown section")
	// ErrSuperseded means the operator moved to another section while this one loaded.
	ErrSuperseded = errors.New("console: section superseded")
)

// Reload fetches the list for kind and commits it unless a newer fetch started in the
// meantime. A failed fetch marks the kind degraded so screens fall back to placeholders.
func (a *App) Reload(ctx context.Context, kind types.Kind) {
	ticket := a.cache.Begin(kind)
	var (
		err       error
		committed bool
	)
	switch kind {
	case types.KindEmployees:
		committed, err = fetch(ctx, a, ticket, a.gw.ListEmployees)
	case types.KindBeneficiaries:
		committed, err = fetch(ctx, a, ticket, a.gw.ListBeneficiaries)
	case types.KindServices:
		committed, err = fetch(ctx, a, ticket, a.gw.ListServices)
	case types.KindBilling:
		committed, err = fetch(ctx, a, ticket, a.gw.ListClaims)
	case types.KindPolicies:
		committed, err = fetch(ctx, a, ticket, a.gw.ListPolicies)
	default:
		return
	}

	if err != nil {
		if !a.cache.Current(ticket) {
			return
		}
		a.log.Warn().Err(err).Str("kind", string(kind)).Msg("list fetch failed, showing placeholder data")
		a.mu.Lock()
		a.degraded[kind] = true
		a.mu.Unlock()
		return
	}
	if !committed {
		a.log.Debug().Str("kind", string(kind)).Uint64("generation", ticket.Generation).Msg("stale list response dropped")
		return
	}
	a.mu.Lock()
	a.degraded[kind] = false
	a.mu.Unlock()
}

func fetch[T any](ctx context.Context, a *App, ticket services.Ticket, list func(context.Context) ([]T, error)) (bool, error) {
	var records []T
	err := a.call(ctx, func(ctx context.Context) error {
		var err error
		records, err = list(ctx)
		return err
	})
	if err != nil {
		return false, err
	}
	return services.Commit(a.cache, ticket, records), nil
}

func (a *App) isDegraded(kind types.Kind) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.degraded[kind]
}

// source returns the committed list for kind. While the last read of kind failed the
// committed list is stale, so placeholders are returned instead; kinds without
// placeholders come back empty.
func source[T any](a *App, kind types.Kind, placeholders func() []T) ([]T, bool) {
	if a.isDegraded(kind) {
		if placeholders == nil {
			return []T{}, false
		}
		return placeholders(), true
	}
	if a.cache.Loaded(kind) {
		return services.Get[T](a.cache, kind), false
	}
	return []T{}, false
}

func (a *App) employees() ([]types.Employee, bool) {
	return source(a, types.KindEmployees, func() []types.Employee { return placeholderEmployees(a.clock.Now()) })
}

func (a *App) beneficiaries() ([]types.Beneficiary, bool) {
	return source(a, types.KindBeneficiaries, placeholderBeneficiaries)
}

func (a *App) servicesList() ([]types.Service, bool) {
	return source(a, types.KindServices, func() []types.Service { return placeholderServices(a.clock.Now()) })
}

func (a *App) claims() ([]types.Claim, bool) {
	return source(a, types.KindBilling, func() []types.Claim { return placeholderClaims(a.clock.Now()) })
}

func (a *App) policies() ([]types.Policy, bool) {
	return source[types.Policy](a, types.KindPolicies, nil)
}

// LoadDashboard fetches the dashboard, falling back to the placeholder dashboard.
func (a *App) LoadDashboard(ctx context.Context) viewmodels.DashboardView {
	var d types.Dashboard
	err := a.call(ctx, func(ctx context.Context) error {
		var err error
		d, err = a.gw.Dashboard(ctx)
		return err
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("dashboard fetch failed, showing placeholder data")
		v := viewmodels.NewDashboardView(placeholderDashboard())
		v.Placeholder = true
		return v
	}
	return viewmodels.NewDashboardView(d)
}
