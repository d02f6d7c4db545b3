package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/ports"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

var _ ports.Gateway = (*Client)(nil)

// Initialize asks the backend to load its sample data set.
func (c *Client) Initialize(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/initialize", nil, nil)
}

func (c *Client) Dashboard(ctx context.Context) (types.Dashboard, error) {
	var out types.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &out); err != nil {
		return types.Dashboard{}, err
	}
	return out, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	return list[types.Employee](ctx, c, "employees")
}

func (c *Client) GetEmployee(ctx context.Context, id string) (types.Employee, error) {
	return get[types.Employee](ctx, c, "employees", id)
}

func (c *Client) CreateEmployee(ctx context.Context, in types.EmployeeInput) (string, error) {
	return create(ctx, c, "employees", in)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, in types.EmployeeInput) error {
	return update(ctx, c, "employees", id, in)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return remove(ctx, c, "employees", id)
}

func (c *Client) ListBeneficiaries(ctx context.Context) ([]types.Beneficiary, error) {
	return list[types.Beneficiary](ctx, c, "beneficiaries")
}

func (c *Client) GetBeneficiary(ctx context.Context, id string) (types.Beneficiary, error) {
	return get[types.Beneficiary](ctx, c, "beneficiaries", id)
}

func (c *Client) CreateBeneficiary(ctx context.Context, in types.BeneficiaryInput) (string, error) {
	return create(ctx, c, "beneficiaries", in)
}

func (c *Client) UpdateBeneficiary(ctx context.Context, id string, in types.BeneficiaryInput) error {
	return update(ctx, c, "beneficiaries", id, in)
}

func (c *Client) DeleteBeneficiary(ctx context.Context, id string) error {
	return remove(ctx, c, "beneficiaries", id)
}

func (c *Client) ListServices(ctx context.Context) ([]types.Service, error) {
	return list[types.Service](ctx, c, "services")
}

func (c *Client) GetService(ctx context.Context, id string) (types.Service, error) {
	return get[types.Service](ctx, c, "services", id)
}

func (c *Client) CreateService(ctx context.Context, in types.ServiceInput) (string, error) {
	return create(ctx, c, "services", in)
}

func (c *Client) UpdateService(ctx context.Context, id string, in types.ServiceInput) error {
	return update(ctx, c, "services", id, in)
}

func (c *Client) DeleteService(ctx context.Context, id string) error {
	return remove(ctx, c, "services", id)
}

func (c *Client) ListClaims(ctx context.Context) ([]types.Claim, error) {
	return list[types.Claim](ctx, c, "billing")
}

func (c *Client) GetClaim(ctx context.Context, id string) (types.Claim, error) {
	return get[types.Claim](ctx, c, "billing", id)
}

func (c *Client) UpdateClaim(ctx context.Context, id string, in types.ClaimUpdate) error {
	return update(ctx, c, "billing", id, in)
}

func (c *Client) ListPolicies(ctx context.Context) ([]types.Policy, error) {
	return list[types.Policy](ctx, c, "policies")
}

func (c *Client) CreatePolicy(ctx context.Context, in types.PolicyInput) (string, error) {
	return create(ctx, c, "policies", in)
}

func (c *Client) BillingReport(ctx context.Context, rng types.ReportRange) (types.Report, error) {
	q := url.Values{}
	q.Set("start_date", rng.Start.Format(types.DateLayout))
	q.Set("end_date", rng.End.Format(types.DateLayout))

	var out types.Report
	if err := c.do(ctx, http.MethodGet, "/reports/billing?"+q.Encode(), nil, &out); err != nil {
		return types.Report{}, err
	}
	return out, nil
}
