package ports

import (
	"context"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// Gateway is the console's only path to the backend. Implementations return records in
// backend order and surface every failure as an error; fallbacks are the caller's job.
type Gateway interface {
	Initialize(ctx context.Context) error
	Dashboard(ctx context.Context) (types.Dashboard, error)

	ListEmployees(ctx context.Context) ([]types.Employee, error)
	GetEmployee(ctx context.Context, id string) (types.Employee, error)
	CreateEmployee(ctx context.Context, in types.EmployeeInput) (string, error)
	UpdateEmployee(ctx context.Context, id string, in types.EmployeeInput) error
	DeleteEmployee(ctx context.Context, id string) error

	ListBeneficiaries(ctx context.Context) ([]types.Beneficiary, error)
	GetBeneficiary(ctx context.Context, id string) (types.Beneficiary, error)
	CreateBeneficiary(ctx context.Context, in types.BeneficiaryInput) (string, error)
	UpdateBeneficiary(ctx context.Context, id string, in types.BeneficiaryInput) error
	DeleteBeneficiary(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]types.Service, error)
	GetService(ctx context.Context, id string) (types.Service, error)
	CreateService(ctx context.Context, in types.ServiceInput) (string, error)
	UpdateService(ctx context.Context, id string, in types.ServiceInput) error
	DeleteService(ctx context.Context, id string) error

	ListClaims(ctx context.Context) ([]types.Claim, error)
	GetClaim(ctx context.Context, id string) (types.Claim, error)
	UpdateClaim(ctx context.Context, id string, in types.ClaimUpdate) error

	ListPolicies(ctx context.Context) ([]types.Policy, error)
	CreatePolicy(ctx context.Context, in types.PolicyInput) (string, error)

	BillingReport(ctx context.Context, rng types.ReportRange) (types.Report, error)
}
