package viewmodels

import (
	"strconv"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldDate   FieldType = "date"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
)

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Value    string
	Prompt   string
	Options  []Option
	Required bool
	ReadOnly bool
	Min      string
	Max      string
	Step     string
	Error    string
}

// Form describes a create form (RecordID empty) or an edit form for one record.
type Form struct {
	Kind     types.Kind
	Title    string
	RecordID string
	Fields   []Field
	Submit   string
	Error    string
}

func (f Form) Editing() bool { return f.RecordID != "" }

// Field returns the named field and whether it exists.
func (f Form) Field(name string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// WithError marks the named field (or the whole form when field is unknown) with msg.
func (f Form) WithError(field string, msg string) Form {
	out := f
	out.Fields = append([]Field(nil), f.Fields...)
	for i := range out.Fields {
		if out.Fields[i].Name == field {
			out.Fields[i].Error = msg
			return out
		}
	}
	out.Error = msg
	return out
}

// WithValues overwrites field values with what the operator submitted, so a rejected
// form comes back as it was typed.
func (f Form) WithValues(values map[string]string) Form {
	out := f
	out.Fields = append([]Field(nil), f.Fields...)
	for i := range out.Fields {
		fd := &out.Fields[i]
		v, ok := values[fd.Name]
		if !ok || fd.ReadOnly {
			continue
		}
		fd.Value = v
		if fd.Type == FieldSelect {
			opts := append([]Option(nil), fd.Options...)
			for j := range opts {
				opts[j].Selected = opts[j].Value == v
			}
			fd.Options = opts
		}
	}
	return out
}

func textField(name, label, value string) Field {
	return Field{Name: name, Label: label, Type: FieldText, Value: value, Required: true}
}

func selectField(name, label, prompt, dictCode, value string) Field {
	return Field{
		Name:     name,
		Label:    label,
		Type:     FieldSelect,
		Value:    value,
		Prompt:   prompt,
		Options:  selectOptions(dictCode, value),
		Required: true,
	}
}

func formTitle(editing bool, singular string) (title string, submit string) {
	if editing {
		return "Edit " + singular, "Update " + singular
	}
	return "Add " + singular, "Add " + singular
}

func EmployeeForm(e *types.Employee) Form {
	var v types.Employee
	if e != nil {
		v = *e
	}
	title, submit := formTitle(e != nil, "Employee")
	id := textField("employeeId", "Employee ID", v.EmployeeID)
	id.ReadOnly = e != nil
	return Form{
		Kind:     types.KindEmployees,
		Title:    title,
		RecordID: v.ID,
		Submit:   submit,
		Fields: []Field{
			id,
			textField("firstName", "First Name", v.FirstName),
			textField("lastName", "Last Name", v.LastName),
			textField("department", "Department", v.Department),
			textField("position", "Position", v.Position),
			selectField("coveragePlan", "Coverage Plan", "Select Plan", DictCoveragePlan, string(v.CoveragePlan)),
			selectField("status", "Status", "", DictRecordStatus, defaultString(string(v.Status), string(types.StatusActive))),
		},
	}
}

// BeneficiaryForm lists every known employee as "Name (EMP001)" in the employee select.
func BeneficiaryForm(b *types.Beneficiary, employees []types.Employee) Form {
	var v types.Beneficiary
	if b != nil {
		v = *b
	}
	title, submit := formTitle(b != nil, "Beneficiary")
	id := textField("beneficiaryId", "Beneficiary ID", v.BeneficiaryID)
	id.ReadOnly = b != nil

	employee := Field{
		Name:     "employeeId",
		Label:    "Employee",
		Type:     FieldSelect,
		Value:    v.EmployeeID,
		Prompt:   "Select Employee",
		Required: true,
		Options:  make([]Option, 0, len(employees)),
	}
	for _, e := range employees {
		employee.Options = append(employee.Options, Option{
			Value:    e.ID,
			Label:    e.FullName() + " (" + e.EmployeeID + ")",
			Selected: e.ID == v.EmployeeID,
		})
	}

	return Form{
		Kind:     types.KindBeneficiaries,
		Title:    title,
		RecordID: v.ID,
		Submit:   submit,
		Fields: []Field{
			id,
			textField("firstName", "First Name", v.FirstName),
			textField("lastName", "Last Name", v.LastName),
			selectField("relationship", "Relationship", "Select Relationship", DictRelationship, string(v.Relationship)),
			employee,
			selectField("coverage", "Coverage", "Select Coverage", DictCoveragePlan, string(v.Coverage)),
			selectField("status", "Status", "", DictRecordStatus, defaultString(string(v.Status), string(types.StatusActive))),
		},
	}
}

func ServiceForm(s *types.Service) Form {
	var v types.Service
	if s != nil {
		v = *s
	}
	title, submit := formTitle(s != nil, "Service")
	id := textField("serviceId", "Service ID", v.ServiceID)
	id.ReadOnly = s != nil
	date := textField("date", "Date", v.Date.Date())
	date.Type = FieldDate
	cost := textField("cost", "Cost", "")
	cost.Type = FieldNumber
	cost.Min, cost.Step = "0", "0.01"
	if s != nil {
		cost.Value = v.Cost.String()
	}
	return Form{
		Kind:     types.KindServices,
		Title:    title,
		RecordID: v.ID,
		Submit:   submit,
		Fields: []Field{
			id,
			date,
			textField("patientName", "Patient Name", v.PatientName),
			selectField("serviceType", "Service Type", "Select Type", DictServiceType, string(v.ServiceType)),
			textField("provider", "Provider", v.Provider),
			cost,
			selectField("status", "Status", "", DictServiceStatus, defaultString(string(v.Status), string(types.ServicePending))),
		},
	}
}

// ClaimForm edits only status and coverage; the claim's other fields are read-only.
func ClaimForm(c types.Claim) Form {
	coverage := textField("coverage", "Coverage Percentage", strconv.Itoa(c.Coverage))
	coverage.Type = FieldNumber
	coverage.Min, coverage.Max, coverage.Step = "0", "100", "1"
	return Form{
		Kind:     types.KindBilling,
		Title:    "Edit Billing",
		RecordID: c.ID,
		Submit:   "Update Billing",
		Fields: []Field{
			selectField("status", "Status", "", DictClaimStatus, string(c.Status)),
			coverage,
		},
	}
}

// PolicyForm is create-only.
func PolicyForm() Form {
	limit := textField("annualLimit", "Annual Limit", "")
	limit.Type, limit.Min = FieldNumber, "0"
	deductible := textField("deductible", "Deductible", "")
	deductible.Type, deductible.Min = FieldNumber, "0"
	coverage := textField("coverage", "Coverage Percentage", "")
	coverage.Type, coverage.Min, coverage.Max = FieldNumber, "0", "100"
	return Form{
		Kind:   types.KindPolicies,
		Title:  "Add Policy",
		Submit: "Add Policy",
		Fields: []Field{
			textField("policyName", "Policy Name", ""),
			limit,
			deductible,
			coverage,
			selectField("status", "Status", "", DictRecordStatus, string(types.StatusActive)),
		},
	}
}

// ReportForm asks for the billing report period.
func ReportForm(start, end string) Form {
	s := textField("start", "Start Date", start)
	s.Type = FieldDate
	e := textField("end", "End Date", end)
	e.Type = FieldDate
	return Form{
		Title:  "Generate Report",
		Submit: "Generate Report",
		Fields: []Field{s, e},
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
