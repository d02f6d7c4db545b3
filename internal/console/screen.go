package console

import (
	"context"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
)

// Screen is everything needed to draw one section.
type Screen struct {
	Section     types.Section
	Nav         []NavItem
	Criteria    services.Criteria
	Placeholder bool

	Dashboard *viewmodels.DashboardView
	Table     *viewmodels.Table
	Summary   *viewmodels.BillingSummary
	Policies  []viewmodels.PolicyCard
}

// Search filters the cached list of the section's kind. A kind that was never fetched
// is fetched once first.
func (a *App) Search(ctx context.Context, s types.Section, c services.Criteria) (Screen, error) {
	kind, ok := s.Kind()
	if !ok {
		return Screen{}, ErrUnknownSection
	}
	if !a.cache.Loaded(kind) && !a.isDegraded(kind) {
		a.Reload(ctx, kind)
	}
	return a.Screen(ctx, s, c)
}

// Screen renders section s from the cache without refetching lists. The dashboard is
// always fetched.
func (a *App) Screen(ctx context.Context, s types.Section, c services.Criteria) (Screen, error) {
	out := Screen{Section: s, Nav: a.Nav(), Criteria: c}
	var err error
	switch s {
	case types.SectionDashboard:
		v := a.LoadDashboard(ctx)
		out.Dashboard = &v
		out.Placeholder = v.Placeholder
	case types.SectionEmployees:
		records, placeholder := a.employees()
		out.Placeholder = placeholder
		if records, err = services.FilterEmployees(records, c); err == nil {
			t := viewmodels.EmployeesTable(records)
			out.Table = &t
		}
	case types.SectionBeneficiaries:
		records, placeholder := a.beneficiaries()
		out.Placeholder = placeholder
		if records, err = services.FilterBeneficiaries(records, c); err == nil {
			t := viewmodels.BeneficiariesTable(records)
			out.Table = &t
		}
	case types.SectionServices:
		records, placeholder := a.servicesList()
		out.Placeholder = placeholder
		if records, err = services.FilterServices(records, c); err == nil {
			t := viewmodels.ServicesTable(records)
			out.Table = &t
		}
	case types.SectionBilling:
		records, placeholder := a.claims()
		out.Placeholder = placeholder
		if records, err = services.FilterClaims(records, c); err == nil {
			t := viewmodels.BillingTable(records)
			sum := viewmodels.Summarize(records)
			out.Table = &t
			out.Summary = &sum
		}
	case types.SectionPolicies:
		records, placeholder := a.policies()
		out.Placeholder = placeholder
		if records, err = services.FilterPolicies(records, c); err == nil {
			out.Policies = viewmodels.PolicyCards(records)
		}
	default:
		return Screen{}, ErrUnknownSection
	}
	if err != nil {
		return Screen{}, httperr.NewFieldError("expr", "%s", err.Error())
	}
	return out, nil
}
