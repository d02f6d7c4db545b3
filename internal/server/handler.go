package server

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"strings"

	"github.com/jacksonlee411/medcover-console/internal/console"
	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

//go:embed assets/*
var embeddedAssets embed.FS

const entrypoint = "console"

type HandlerOptions struct {
	App        *console.App
	Allowlist  routing.Allowlist
	Authorizer authorizer
	Subject    string
	Logger     *logger.Logger
}

type handler struct {
	app *console.App
	log *logger.Logger
}

func NewHandler(opts HandlerOptions) (http.Handler, error) {
	if opts.App == nil {
		return nil, errors.New("server: missing console app")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	classifier, err := routing.NewClassifier(opts.Allowlist, entrypoint)
	if err != nil {
		return nil, err
	}
	log := opts.Logger.With("server")
	h := &handler{app: opts.App, log: log}

	router := routing.NewRouter(classifier)
	router.OnPanic(func(r *http.Request, rec any, stack []byte) {
		log.Error().Interface("panic", rec).Str("path", r.URL.Path).Bytes("stack", stack).Msg("handler panic")
	})

	router.Handle(routing.RouteClassUI, http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, sectionPath(types.SectionDashboard), http.StatusFound)
	}))
	router.Handle(routing.RouteClassOps, http.MethodGet, "/health", http.HandlerFunc(health))
	router.Handle(routing.RouteClassOps, http.MethodGet, "/healthz", http.HandlerFunc(health))
	router.Handle(routing.RouteClassStatic, http.MethodGet, "/assets/app.css", http.HandlerFunc(stylesheet))

	router.Handle(routing.RouteClassInternalAPI, http.MethodGet, "/app/state", http.HandlerFunc(h.state))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/notifications", http.HandlerFunc(h.notifications))
	router.Handle(routing.RouteClassUI, http.MethodPost, "/app/modal/close", http.HandlerFunc(h.closeModal))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/reports/billing", http.HandlerFunc(h.reportForm))
	router.Handle(routing.RouteClassUI, http.MethodPost, "/app/reports/billing", http.HandlerFunc(h.generateReport))
	router.Handle(routing.RouteClassStatic, http.MethodGet, "/app/reports/billing.csv", http.HandlerFunc(h.downloadReport))

	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}", http.HandlerFunc(h.section))
	router.Handle(routing.RouteClassUI, http.MethodPost, "/app/{section}", h.event(console.VerbSubmit, true))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}/search", http.HandlerFunc(h.search))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}/new", h.event(console.VerbCreate, false))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}/{id}", h.event(console.VerbView, false))
	router.Handle(routing.RouteClassUI, http.MethodPost, "/app/{section}/{id}", h.event(console.VerbSubmit, true))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}/{id}/edit", h.event(console.VerbEdit, false))
	router.Handle(routing.RouteClassUI, http.MethodGet, "/app/{section}/{id}/delete", h.event(console.VerbDelete, false))
	router.Handle(routing.RouteClassUI, http.MethodPost, "/app/{section}/{id}/delete", h.event(console.VerbConfirmDelete, true))

	return withRequestLog(log, withAuthz(classifier, opts.Authorizer, opts.Subject, log, router)), nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func stylesheet(w http.ResponseWriter, r *http.Request) {
	b, err := embeddedAssets.ReadFile("assets/app.css")
	if err != nil {
		routing.WriteError(w, r, routing.RouteClassStatic, http.StatusNotFound, "not_found", "not found")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handler) state(w http.ResponseWriter, _ *http.Request) {
	routing.WriteJSON(w, http.StatusOK, h.app.State())
}

func (h *handler) notifications(w http.ResponseWriter, r *http.Request) {
	writeContent(w, r, renderNotifications(h.app.Notifier().Active(), false))
}

func (h *handler) closeModal(w http.ResponseWriter, r *http.Request) {
	h.app.CloseModal()
	h.respond(w, r, h.app.Section(), false, nil)
}

func (h *handler) sectionParam(w http.ResponseWriter, r *http.Request) (types.Section, bool) {
	s, ok := types.ParseSection(routing.Param(r, "section"))
	if !ok {
		routing.WriteError(w, r, routing.RouteClassUI, http.StatusNotFound, "unknown_section", "unknown section")
		return "", false
	}
	return s, true
}

func (h *handler) section(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sectionParam(w, r)
	if !ok {
		return
	}
	screen, err := h.app.SwitchSection(r.Context(), s)
	if errors.Is(err, console.ErrSuperseded) {
		// A later navigation owns #content now.
		if !isHX(r) {
			http.Redirect(w, r, sectionPath(h.app.Section()), http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		routing.WriteError(w, r, routing.RouteClassUI, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	notes := h.app.Notifier().Active()
	if !isHX(r) {
		writeShellWithStatus(w, r, http.StatusOK, renderPage(screen, h.app.Modal(), notes))
		return
	}
	writeContent(w, r, renderContent(screen, false)+renderNav(screen.Nav, true)+renderNotifications(notes, true))
}

// search waits out the debounce window; a request overtaken by a newer one for the
// same section gets 204 and htmx leaves the results alone.
func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sectionParam(w, r)
	if !ok {
		return
	}
	if _, ok := s.Kind(); !ok {
		routing.WriteError(w, r, routing.RouteClassUI, http.StatusNotFound, "not_searchable", "section is not searchable")
		return
	}
	if !h.app.Debouncer().Wait(r.Context(), string(s)) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	q := r.URL.Query()
	c := viewmodels.CriteriaFromValues(q.Get)
	screen, err := h.app.Search(r.Context(), s, c)
	if err != nil {
		if !httperr.IsBadRequest(err) {
			routing.WriteError(w, r, routing.RouteClassUI, http.StatusInternalServerError, "search_failed", err.Error())
			return
		}
		writeContentWithStatus(w, r, statusFor(r, err), renderSearchError(err.Error()))
		return
	}
	if !isHX(r) {
		writeShellWithStatus(w, r, http.StatusOK, renderPage(screen, h.app.Modal(), h.app.Notifier().Active()))
		return
	}
	writeContent(w, r, renderResults(screen))
}

// event turns a request into a console event. Outcomes the operator must see are
// already in the modal and the notifications, so the response always redraws them.
func (h *handler) event(verb console.Verb, redrawContent bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.sectionParam(w, r)
		if !ok {
			return
		}
		ev := console.Event{Section: s, Verb: verb, RecordID: routing.Param(r, "id")}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				routing.WriteError(w, r, routing.RouteClassUI, http.StatusBadRequest, "invalid_form", "invalid form")
				return
			}
			ev.Values = formValues(r)
			ev.Confirmed = strings.EqualFold(r.PostForm.Get("confirm"), "yes")
		}
		err := h.app.Dispatch(r.Context(), ev)
		if errors.Is(err, console.ErrUnboundEvent) {
			routing.WriteError(w, r, routing.RouteClassUI, http.StatusNotFound, "unbound_event", "not found")
			return
		}
		if err != nil {
			h.log.Debug().Err(err).Str("section", string(s)).Str("verb", string(verb)).Msg("event failed")
		}
		h.respond(w, r, s, redrawContent && err == nil, err)
	})
}

func formValues(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out
}

func (h *handler) reportForm(w http.ResponseWriter, r *http.Request) {
	h.app.OpenReportForm()
	h.respond(w, r, h.app.Section(), false, nil)
}

func (h *handler) generateReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		routing.WriteError(w, r, routing.RouteClassUI, http.StatusBadRequest, "invalid_form", "invalid form")
		return
	}
	_, err := h.app.GenerateReport(r.Context(), r.PostForm.Get("start"), r.PostForm.Get("end"))
	h.respond(w, r, h.app.Section(), false, err)
}

func (h *handler) downloadReport(w http.ResponseWriter, r *http.Request) {
	name, body, err := h.app.DownloadReport()
	if errors.Is(err, console.ErrNoReport) {
		routing.WriteError(w, r, routing.RouteClassStatic, http.StatusNotFound, "no_report", "no report has been generated")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("report export failed")
		routing.WriteError(w, r, routing.RouteClassStatic, http.StatusInternalServerError, "export_failed", "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// respond redraws the modal and notifications, plus the section content after a
// successful write. Plain requests get the whole page instead.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, s types.Section, redrawContent bool, err error) {
	notes := h.app.Notifier().Active()
	if !isHX(r) {
		screen, serr := h.app.Screen(r.Context(), s, services.Criteria{})
		if serr != nil {
			routing.WriteError(w, r, routing.RouteClassUI, http.StatusInternalServerError, "render_failed", serr.Error())
			return
		}
		writeShellWithStatus(w, r, statusFor(r, err), renderPage(screen, h.app.Modal(), notes))
		return
	}
	var b strings.Builder
	b.WriteString(renderModal(h.app.Modal()))
	b.WriteString(renderNotifications(notes, true))
	if redrawContent {
		if screen, serr := h.app.Screen(r.Context(), s, services.Criteria{}); serr == nil {
			b.WriteString(renderContent(screen, true))
		}
	}
	writeContent(w, r, b.String())
}

// statusFor maps an event error to the status of a plain response. htmx requests always
// get 200 so the redrawn fragments are swapped in.
func statusFor(r *http.Request, err error) int {
	if err == nil || isHX(r) {
		return http.StatusOK
	}
	switch {
	case httperr.IsBadRequest(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
