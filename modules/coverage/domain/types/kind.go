package types

import "strings"

// Kind names one server-owned collection.
type Kind string

const (
	KindEmployees     Kind = "employees"
	KindBeneficiaries Kind = "beneficiaries"
	KindServices      Kind = "services"
	KindBilling       Kind = "billing"
	KindPolicies      Kind = "policies"
)

func Kinds() []Kind {
	return []Kind{KindEmployees, KindBeneficiaries, KindServices, KindBilling, KindPolicies}
}

func (k Kind) Valid() bool {
	switch k {
	case KindEmployees, KindBeneficiaries, KindServices, KindBilling, KindPolicies:
		return true
	default:
		return false
	}
}

// Section is one top-level screen. Every kind is a section; the dashboard is not a kind.
type Section string

const SectionDashboard Section = "dashboard"

const (
	SectionEmployees     = Section(KindEmployees)
	SectionBeneficiaries = Section(KindBeneficiaries)
	SectionServices      = Section(KindServices)
	SectionBilling       = Section(KindBilling)
	SectionPolicies      = Section(KindPolicies)
)

// Sections returns every section in navigation order.
func Sections() []Section {
	return []Section{SectionDashboard, SectionEmployees, SectionBeneficiaries, SectionServices, SectionBilling, SectionPolicies}
}

func ParseSection(raw string) (Section, bool) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Sections() {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Kind reports the collection backing the section; the dashboard has none.
func (s Section) Kind() (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}

func (s Section) Title() string {
	switch s {
	case SectionDashboard:
		return "Dashboard"
	case SectionEmployees:
		return "Employees"
	case SectionBeneficiaries:
		return "Beneficiaries"
	case SectionServices:
		return "Services"
	case SectionBilling:
		return "Billing"
	case SectionPolicies:
		return "Policies"
	default:
		return ""
	}
}

// Singular is the noun used in titles and notifications ("Employee added successfully").
func (k Kind) Singular() string {
	switch k {
	case KindEmployees:
		return "Employee"
	case KindBeneficiaries:
		return "Beneficiary"
	case KindServices:
		return "Service"
	case KindBilling:
		return "Billing"
	case KindPolicies:
		return "Policy"
	default:
		return ""
	}
}
