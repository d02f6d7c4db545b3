package authz

const (
	RoleOperator  = "operator"
	RoleViewer    = "viewer"
	RoleAnonymous = "anonymous"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
)

const (
	ObjectDashboard      = "coverage.dashboard"
	ObjectEmployees      = "coverage.employees"
	ObjectBeneficiaries  = "coverage.beneficiaries"
	ObjectServices       = "coverage.services"
	ObjectBilling        = "coverage.billing"
	ObjectPolicies       = "coverage.policies"
	ObjectReportsBilling = "reports.billing"
)

// ObjectForSection maps a console section name to its policy object.
func ObjectForSection(section string) string {
	return "coverage." + section
}
