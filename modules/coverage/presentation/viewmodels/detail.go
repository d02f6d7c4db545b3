package viewmodels

import (
	"strings"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

type Item struct {
	Label string
	Value string
}

type Detail struct {
	Kind     types.Kind
	Title    string
	Heading  string
	RecordID string
	Items    []Item
}

func EmployeeDetail(e types.Employee) Detail {
	return Detail{
		Kind:     types.KindEmployees,
		Title:    "Employee Details",
		Heading:  "Employee Details",
		RecordID: e.ID,
		Items: []Item{
			{"ID", e.EmployeeID},
			{"Name", e.FullName()},
			{"Department", e.Department},
			{"Position", e.Position},
			{"Coverage Plan", string(e.CoveragePlan)},
			{"Status", string(e.Status)},
			{"Created", FormatDate(e.CreatedAt)},
		},
	}
}

func BeneficiaryDetail(b types.Beneficiary) Detail {
	return Detail{
		Kind:     types.KindBeneficiaries,
		Title:    "Beneficiary Details",
		Heading:  "Beneficiary Details",
		RecordID: b.ID,
		Items: []Item{
			{"ID", b.BeneficiaryID},
			{"Name", b.FullName()},
			{"Relationship", relationshipLabel(string(b.Relationship))},
			{"Employee", orNA(b.EmployeeName)},
			{"Coverage", string(b.Coverage)},
			{"Status", string(b.Status)},
			{"Created", FormatDate(b.CreatedAt)},
		},
	}
}

func ServiceDetail(s types.Service) Detail {
	return Detail{
		Kind:     types.KindServices,
		Title:    "Service Details",
		Heading:  "Service Details",
		RecordID: s.ID,
		Items: []Item{
			{"ID", s.ServiceID},
			{"Date", FormatDate(s.Date)},
			{"Patient", s.PatientName},
			{"Type", string(s.ServiceType)},
			{"Provider", s.Provider},
			{"Cost", FormatMoney(s.Cost)},
			{"Status", string(s.Status)},
			{"Created", FormatDate(s.CreatedAt)},
		},
	}
}

func ClaimDetail(c types.Claim) Detail {
	return Detail{
		Kind:     types.KindBilling,
		Title:    "Billing Details",
		Heading:  "Billing Details",
		RecordID: c.ID,
		Items: []Item{
			{"Claim ID", c.ClaimID},
			{"Service Date", FormatDate(c.ServiceDate)},
			{"Patient", c.PatientName},
			{"Service", c.Service},
			{"Amount", FormatMoney(c.Amount)},
			{"Coverage", FormatPercent(c.Coverage)},
			{"Covered Amount", "$" + c.CoveredAmount().StringFixed(2)},
			{"Patient Responsibility", "$" + c.PatientResponsibility().StringFixed(2)},
			{"Status", string(c.Status)},
		},
	}
}

// Confirmation asks the operator to confirm a destructive action.
type Confirmation struct {
	Kind     types.Kind
	RecordID string
	Title    string
	Message  string
}

func DeleteConfirmation(kind types.Kind, id string) Confirmation {
	singular := kind.Singular()
	return Confirmation{
		Kind:     kind,
		RecordID: id,
		Title:    "Delete " + singular,
		Message:  "Are you sure you want to delete this " + strings.ToLower(singular) + "?",
	}
}
