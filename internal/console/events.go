package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
)

type Verb string

const (
	VerbCreate        Verb = "create"
	VerbView          Verb = "view"
	VerbEdit          Verb = "edit"
	VerbSubmit        Verb = "submit"
	VerbDelete        Verb = "delete"
	VerbConfirmDelete Verb = "confirm-delete"
)

// Event is one operator interaction. RecordID is the opaque id; Values carries submitted
// form fields; Confirmed answers a delete confirmation.
type Event struct {
	Section   types.Section
	Verb      Verb
	RecordID  string
	Values    map[string]string
	Confirmed bool
}

type Handler func(ctx context.Context, ev Event) error

type binding struct {
	section types.Section
	verb    Verb
}

var ErrUnboundEvent = errors.New("console: no handler bound for event")

// Dispatch routes ev through the event-binding table.
func (a *App) Dispatch(ctx context.Context, ev Event) error {
	h, ok := a.bindings[binding{section: ev.Section, verb: ev.Verb}]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnboundEvent, ev.Section, ev.Verb)
	}
	switch ev.Verb {
	case VerbView, VerbEdit, VerbDelete, VerbConfirmDelete:
		if ev.RecordID == "" {
			return httperr.NewBadRequest("record id is required")
		}
	}
	return h(ctx, ev)
}

// Bound reports whether the table has a handler for section and verb.
func (a *App) Bound(section types.Section, verb Verb) bool {
	_, ok := a.bindings[binding{section: section, verb: verb}]
	return ok
}

func (a *App) defaultBindings() map[binding]Handler {
	b := make(map[binding]Handler)
	bind := func(s types.Section, v Verb, h Handler) { b[binding{section: s, verb: v}] = h }

	bind(types.SectionEmployees, VerbCreate, a.newEmployee)
	bind(types.SectionEmployees, VerbView, a.viewEmployee)
	bind(types.SectionEmployees, VerbEdit, a.editEmployee)
	bind(types.SectionEmployees, VerbSubmit, a.submitEmployee)
	bind(types.SectionEmployees, VerbDelete, a.requestDelete(types.KindEmployees))
	bind(types.SectionEmployees, VerbConfirmDelete, a.confirmDelete(types.KindEmployees, a.gw.DeleteEmployee))

	bind(types.SectionBeneficiaries, VerbCreate, a.newBeneficiary)
	bind(types.SectionBeneficiaries, VerbView, a.viewBeneficiary)
	bind(types.SectionBeneficiaries, VerbEdit, a.editBeneficiary)
	bind(types.SectionBeneficiaries, VerbSubmit, a.submitBeneficiary)
	bind(types.SectionBeneficiaries, VerbDelete, a.requestDelete(types.KindBeneficiaries))
	bind(types.SectionBeneficiaries, VerbConfirmDelete, a.confirmDelete(types.KindBeneficiaries, a.gw.DeleteBeneficiary))

	bind(types.SectionServices, VerbCreate, a.newService)
	bind(types.SectionServices, VerbView, a.viewService)
	bind(types.SectionServices, VerbEdit, a.editService)
	bind(types.SectionServices, VerbSubmit, a.submitService)
	bind(types.SectionServices, VerbDelete, a.requestDelete(types.KindServices))
	bind(types.SectionServices, VerbConfirmDelete, a.confirmDelete(types.KindServices, a.gw.DeleteService))

	bind(types.SectionBilling, VerbView, a.viewClaim)
	bind(types.SectionBilling, VerbEdit, a.editClaim)
	bind(types.SectionBilling, VerbSubmit, a.submitClaim)

	bind(types.SectionPolicies, VerbCreate, a.newPolicy)
	bind(types.SectionPolicies, VerbSubmit, a.submitPolicy)
	return b
}
