package viewmodels

import (
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
)

// FilterFields describes the search controls of a list section, prefilled from c.
// The free-text term comes first and the expression field last; structured filters
// sit in between and depend on the kind.
func FilterFields(kind types.Kind, c services.Criteria) []Field {
	term := Field{Name: "term", Label: "Search", Type: FieldText, Value: c.Term, Prompt: "Search " + string(kind) + "..."}
	fields := []Field{term}
	switch kind {
	case types.KindEmployees:
		fields = append(fields,
			filterSelect("status", "Status", "All Statuses", DictRecordStatus, c.Status),
			filterSelect("plan", "Coverage Plan", "All Plans", DictCoveragePlan, string(c.Plan)),
		)
	case types.KindBeneficiaries:
		fields = append(fields,
			filterSelect("relationship", "Relationship", "All Relationships", DictRelationship, string(c.Relationship)),
			filterSelect("status", "Status", "All Statuses", DictRecordStatus, c.Status),
		)
	case types.KindServices:
		fields = append(fields,
			filterSelect("serviceType", "Service Type", "All Types", DictServiceType, string(c.ServiceType)),
			Field{Name: "date", Label: "Date", Type: FieldDate, Value: c.Date},
		)
	case types.KindBilling:
		fields = append(fields, filterSelect("status", "Status", "All Statuses", DictClaimStatus, c.Status))
	case types.KindPolicies:
		fields = append(fields, filterSelect("status", "Status", "All Statuses", DictRecordStatus, c.Status))
	}
	return append(fields, Field{Name: "expr", Label: "Filter Expression", Type: FieldText, Value: c.Expr, Prompt: `record.status == "Active"`})
}

func filterSelect(name, label, prompt, dictCode, selected string) Field {
	return Field{Name: name, Label: label, Type: FieldSelect, Value: selected, Prompt: prompt, Options: selectOptions(dictCode, selected)}
}

// CriteriaFromValues reads filter values submitted by the search controls.
func CriteriaFromValues(get func(string) string) services.Criteria {
	return services.Criteria{
		Term:         get("term"),
		Relationship: types.Relationship(get("relationship")),
		ServiceType:  types.ServiceType(get("serviceType")),
		Date:         get("date"),
		Status:       get("status"),
		Plan:         types.CoveragePlan(get("plan")),
		Expr:         get("expr"),
	}
}
