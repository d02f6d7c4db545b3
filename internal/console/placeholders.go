package console

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// Placeholder data keeps screens populated while the backend is unreachable. It is
// never written to the cache.

func placeholderDashboard() types.Dashboard {
	return types.Dashboard{
		TotalEmployees:     3,
		TotalBeneficiaries: 2,
		TotalServices:      2,
		TotalBilling:       decimal.NewFromInt(450),
		ChartData: types.ChartData{
			ServiceUsage:         []float64{65, 78, 85, 92, 88, 95, 102, 88, 96, 78, 85, 92},
			CoverageDistribution: []float64{1, 1, 1},
		},
	}
}

func placeholderEmployees(now time.Time) []types.Employee {
	ts := types.NewTimestamp(now)
	return []types.Employee{
		{ID: "1", EmployeeID: "EMP001", FirstName: "John", LastName: "Doe", Department: "IT", Position: "Software Engineer", CoveragePlan: types.PlanPremium, Status: types.StatusActive, CreatedAt: ts},
		{ID: "2", EmployeeID: "EMP002", FirstName: "Jane", LastName: "Smith", Department: "HR", Position: "HR Manager", CoveragePlan: types.PlanFamily, Status: types.StatusActive, CreatedAt: ts},
		{ID: "3", EmployeeID: "EMP003", FirstName: "Mike", LastName: "Johnson", Department: "Finance", Position: "Accountant", CoveragePlan: types.PlanBasic, Status: types.StatusActive, CreatedAt: ts},
	}
}

func placeholderBeneficiaries() []types.Beneficiary {
	return []types.Beneficiary{
		{ID: "1", BeneficiaryID: "BEN001", FirstName: "Sarah", LastName: "Doe", Relationship: types.RelationshipSpouse, EmployeeName: "John Doe", Coverage: types.PlanPremium, Status: types.StatusActive},
		{ID: "2", BeneficiaryID: "BEN002", FirstName: "Tom", LastName: "Smith", Relationship: types.RelationshipChild, EmployeeName: "Jane Smith", Coverage: types.PlanFamily, Status: types.StatusActive},
	}
}

func placeholderServices(now time.Time) []types.Service {
	ts := types.NewTimestamp(now)
	return []types.Service{
		{ID: "1", ServiceID: "SRV001", Date: ts, PatientName: "John Doe", ServiceType: types.ServiceConsultation, Provider: "City Hospital", Cost: decimal.NewFromInt(150), Status: types.ServiceProcessed, CreatedAt: ts},
		{ID: "2", ServiceID: "SRV002", Date: ts, PatientName: "Sarah Doe", ServiceType: types.ServiceDiagnostic, Provider: "Med Lab", Cost: decimal.NewFromInt(300), Status: types.ServicePending, CreatedAt: ts},
	}
}

func placeholderClaims(now time.Time) []types.Claim {
	ts := types.NewTimestamp(now)
	return []types.Claim{
		{ID: "1", ClaimID: "CLM001", ServiceDate: ts, PatientName: "John Doe", Service: "Consultation", Amount: decimal.NewFromInt(150), Coverage: 80, Status: types.ClaimProcessed},
		{ID: "2", ClaimID: "CLM002", ServiceDate: ts, PatientName: "Sarah Doe", Service: "Diagnostic", Amount: decimal.NewFromInt(300), Coverage: 90, Status: types.ClaimPending},
	}
}
