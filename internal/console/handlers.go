package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/infrastructure/backend"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
)

// userMessage is the text shown to the operator for err.
func userMessage(err error) string {
	if httperr.IsBadRequest(err) {
		if field := httperr.FieldOf(err); field != "" {
			return field + " " + err.Error()
		}
		return err.Error()
	}
	if msg, ok := backend.UserMessage(err); ok {
		return msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return "backend unavailable"
}

func (a *App) fail(prefix string, err error) error {
	a.notes.Error(prefix + ": " + userMessage(err))
	return err
}

func fetchOne[T any](ctx context.Context, a *App, id string, fn func(context.Context, string) (T, error)) (T, error) {
	var out T
	err := a.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx, id)
		return err
	})
	return out, err
}

// submit validates, writes, and on success closes the modal, reloads the owning list
// and confirms. On failure the form stays open with the operator's values and the
// error, and nothing is reloaded.
func (a *App) submit(ctx context.Context, ev Event, kind types.Kind, form viewmodels.Form, check func() error, write func(context.Context) error, success string, failPrefix string) error {
	form = form.WithValues(ev.Values)
	if err := check(); err != nil {
		msg := err.Error()
		if !httperr.IsBadRequest(err) {
			msg = userMessage(err)
		}
		a.openModal(formModal(form.WithError(httperr.FieldOf(err), msg)))
		return a.fail(failPrefix, err)
	}
	if err := a.call(ctx, write); err != nil {
		a.log.Error().Err(err).Str("kind", string(kind)).Str("id", ev.RecordID).Msg("write failed")
		a.openModal(formModal(form.WithError("", userMessage(err))))
		return a.fail(failPrefix, err)
	}
	a.CloseModal()
	a.Reload(ctx, kind)
	a.notes.Success(success)
	return nil
}

func savedMessage(kind types.Kind, editing bool) string {
	if editing {
		return kind.Singular() + " updated successfully"
	}
	return kind.Singular() + " added successfully"
}

func savePrefix(kind types.Kind) string {
	return "Error saving " + strings.ToLower(kind.Singular())
}

// uniqueID rejects a business id already present in the committed list.
func uniqueID[T any](records []T, id string, key func(T) string, field string, label string) error {
	for _, r := range records {
		if strings.EqualFold(key(r), id) {
			return httperr.NewFieldError(field, "%s %s already exists", label, id)
		}
	}
	return nil
}

// sameID rejects an edit whose business id differs from the stored record's. Business
// ids are fixed once created.
func sameID[T any](ctx context.Context, a *App, recordID string, posted string, get func(context.Context, string) (T, error), key func(T) string, field string, label string) error {
	current, err := fetchOne(ctx, a, recordID, get)
	if err != nil {
		return err
	}
	if key(current) != posted {
		return httperr.NewFieldError(field, "%s cannot be changed", label)
	}
	return nil
}

func (a *App) requestDelete(kind types.Kind) Handler {
	return func(_ context.Context, ev Event) error {
		a.openModal(confirmModal(viewmodels.DeleteConfirmation(kind, ev.RecordID)))
		return nil
	}
}

// confirmDelete issues the delete only for a confirmed event; declining just closes
// the dialog. A failed delete leaves the confirmation open.
func (a *App) confirmDelete(kind types.Kind, del func(context.Context, string) error) Handler {
	return func(ctx context.Context, ev Event) error {
		if !ev.Confirmed {
			a.CloseModal()
			return nil
		}
		if err := a.call(ctx, func(ctx context.Context) error { return del(ctx, ev.RecordID) }); err != nil {
			a.log.Error().Err(err).Str("kind", string(kind)).Str("id", ev.RecordID).Msg("delete failed")
			a.openModal(confirmModal(viewmodels.DeleteConfirmation(kind, ev.RecordID)))
			return a.fail("Error deleting "+strings.ToLower(kind.Singular()), err)
		}
		a.CloseModal()
		a.Reload(ctx, kind)
		a.notes.Success(kind.Singular() + " deleted successfully")
		return nil
	}
}

// Employees

func (a *App) newEmployee(context.Context, Event) error {
	a.openModal(formModal(viewmodels.EmployeeForm(nil)))
	return nil
}

func (a *App) viewEmployee(ctx context.Context, ev Event) error {
	e, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetEmployee)
	if err != nil {
		return a.fail("Error loading employee details", err)
	}
	a.openModal(detailModal(viewmodels.EmployeeDetail(e)))
	return nil
}

func (a *App) editEmployee(ctx context.Context, ev Event) error {
	e, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetEmployee)
	if err != nil {
		return a.fail("Error loading employee", err)
	}
	a.openModal(formModal(viewmodels.EmployeeForm(&e)))
	return nil
}

func (a *App) submitEmployee(ctx context.Context, ev Event) error {
	in := parseEmployee(ev.Values)
	editing := ev.RecordID != ""
	form := viewmodels.EmployeeForm(nil)
	if editing {
		form = viewmodels.EmployeeForm(&types.Employee{ID: ev.RecordID, EmployeeID: in.EmployeeID})
	}
	check := func() error {
		if err := a.check(in); err != nil {
			return err
		}
		if editing {
			return sameID(ctx, a, ev.RecordID, in.EmployeeID, a.gw.GetEmployee,
				func(e types.Employee) string { return e.EmployeeID }, "employeeId", "Employee ID")
		}
		return uniqueID(services.Get[types.Employee](a.cache, types.KindEmployees), in.EmployeeID,
			func(e types.Employee) string { return e.EmployeeID }, "employeeId", "Employee ID")
	}
	write := func(ctx context.Context) error {
		if editing {
			return a.gw.UpdateEmployee(ctx, ev.RecordID, in)
		}
		_, err := a.gw.CreateEmployee(ctx, in)
		return err
	}
	return a.submit(ctx, ev, types.KindEmployees, form, check, write, savedMessage(types.KindEmployees, editing), savePrefix(types.KindEmployees))
}

// Beneficiaries

// employeeChoices fetches employees for the beneficiary form, falling back to what the
// console already has.
func (a *App) employeeChoices(ctx context.Context) []types.Employee {
	var list []types.Employee
	err := a.call(ctx, func(ctx context.Context) error {
		var err error
		list, err = a.gw.ListEmployees(ctx)
		return err
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("employee list for beneficiary form unavailable")
		list, _ = a.employees()
	}
	return list
}

func (a *App) newBeneficiary(ctx context.Context, _ Event) error {
	a.openModal(formModal(viewmodels.BeneficiaryForm(nil, a.employeeChoices(ctx))))
	return nil
}

func (a *App) viewBeneficiary(ctx context.Context, ev Event) error {
	b, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetBeneficiary)
	if err != nil {
		return a.fail("Error loading beneficiary details", err)
	}
	a.openModal(detailModal(viewmodels.BeneficiaryDetail(b)))
	return nil
}

func (a *App) editBeneficiary(ctx context.Context, ev Event) error {
	b, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetBeneficiary)
	if err != nil {
		return a.fail("Error loading beneficiary", err)
	}
	a.openModal(formModal(viewmodels.BeneficiaryForm(&b, a.employeeChoices(ctx))))
	return nil
}

func (a *App) submitBeneficiary(ctx context.Context, ev Event) error {
	in := parseBeneficiary(ev.Values)
	editing := ev.RecordID != ""
	employees, _ := a.employees()
	form := viewmodels.BeneficiaryForm(nil, employees)
	if editing {
		form = viewmodels.BeneficiaryForm(&types.Beneficiary{ID: ev.RecordID, BeneficiaryID: in.BeneficiaryID}, employees)
	}
	check := func() error {
		if err := a.check(in); err != nil {
			return err
		}
		if editing {
			return sameID(ctx, a, ev.RecordID, in.BeneficiaryID, a.gw.GetBeneficiary,
				func(b types.Beneficiary) string { return b.BeneficiaryID }, "beneficiaryId", "Beneficiary ID")
		}
		return uniqueID(services.Get[types.Beneficiary](a.cache, types.KindBeneficiaries), in.BeneficiaryID,
			func(b types.Beneficiary) string { return b.BeneficiaryID }, "beneficiaryId", "Beneficiary ID")
	}
	write := func(ctx context.Context) error {
		if editing {
			return a.gw.UpdateBeneficiary(ctx, ev.RecordID, in)
		}
		_, err := a.gw.CreateBeneficiary(ctx, in)
		return err
	}
	return a.submit(ctx, ev, types.KindBeneficiaries, form, check, write, savedMessage(types.KindBeneficiaries, editing), savePrefix(types.KindBeneficiaries))
}

// Services

func (a *App) newService(context.Context, Event) error {
	a.openModal(formModal(viewmodels.ServiceForm(nil)))
	return nil
}

func (a *App) viewService(ctx context.Context, ev Event) error {
	s, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetService)
	if err != nil {
		return a.fail("Error loading service details", err)
	}
	a.openModal(detailModal(viewmodels.ServiceDetail(s)))
	return nil
}

func (a *App) editService(ctx context.Context, ev Event) error {
	s, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetService)
	if err != nil {
		return a.fail("Error loading service", err)
	}
	a.openModal(formModal(viewmodels.ServiceForm(&s)))
	return nil
}

func (a *App) submitService(ctx context.Context, ev Event) error {
	editing := ev.RecordID != ""
	in, parseErr := parseService(ev.Values)
	form := viewmodels.ServiceForm(nil)
	if editing {
		form = viewmodels.ServiceForm(&types.Service{ID: ev.RecordID, ServiceID: value(ev.Values, "serviceId")})
	}
	check := func() error {
		if parseErr != nil {
			return parseErr
		}
		if err := a.check(in); err != nil {
			return err
		}
		if editing {
			return sameID(ctx, a, ev.RecordID, in.ServiceID, a.gw.GetService,
				func(s types.Service) string { return s.ServiceID }, "serviceId", "Service ID")
		}
		return uniqueID(services.Get[types.Service](a.cache, types.KindServices), in.ServiceID,
			func(s types.Service) string { return s.ServiceID }, "serviceId", "Service ID")
	}
	write := func(ctx context.Context) error {
		if editing {
			return a.gw.UpdateService(ctx, ev.RecordID, in)
		}
		_, err := a.gw.CreateService(ctx, in)
		return err
	}
	return a.submit(ctx, ev, types.KindServices, form, check, write, savedMessage(types.KindServices, editing), savePrefix(types.KindServices))
}

// Billing

func (a *App) viewClaim(ctx context.Context, ev Event) error {
	c, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetClaim)
	if err != nil {
		return a.fail("Error loading billing details", err)
	}
	a.openModal(detailModal(viewmodels.ClaimDetail(c)))
	return nil
}

func (a *App) editClaim(ctx context.Context, ev Event) error {
	c, err := fetchOne(ctx, a, ev.RecordID, a.gw.GetClaim)
	if err != nil {
		return a.fail("Error loading billing", err)
	}
	a.openModal(formModal(viewmodels.ClaimForm(c)))
	return nil
}

func (a *App) submitClaim(ctx context.Context, ev Event) error {
	if ev.RecordID == "" {
		return httperr.NewBadRequest("record id is required")
	}
	in, parseErr := parseClaimUpdate(ev.Values)
	check := func() error {
		if parseErr != nil {
			return parseErr
		}
		return a.check(in)
	}
	write := func(ctx context.Context) error { return a.gw.UpdateClaim(ctx, ev.RecordID, in) }
	return a.submit(ctx, ev, types.KindBilling, viewmodels.ClaimForm(types.Claim{ID: ev.RecordID}), check, write,
		"Billing updated successfully", "Error updating billing")
}

// Policies are create-only.

func (a *App) newPolicy(context.Context, Event) error {
	a.openModal(formModal(viewmodels.PolicyForm()))
	return nil
}

func (a *App) submitPolicy(ctx context.Context, ev Event) error {
	if ev.RecordID != "" {
		return fmt.Errorf("%w: policies cannot be updated", ErrUnboundEvent)
	}
	in, parseErr := parsePolicy(ev.Values)
	check := func() error {
		if parseErr != nil {
			return parseErr
		}
		return a.check(in)
	}
	write := func(ctx context.Context) error {
		_, err := a.gw.CreatePolicy(ctx, in)
		return err
	}
	return a.submit(ctx, ev, types.KindPolicies, viewmodels.PolicyForm(), check, write,
		"Policy added successfully", "Error adding policy")
}
