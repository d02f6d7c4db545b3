package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
)

var errBackendDown = errors.New("dial tcp: connection refused")

// fakeGateway is an in-memory backend. Setting down makes every call fail; the hook
// fields override single operations.
type fakeGateway struct {
	mu    sync.Mutex
	down  bool
	calls map[string]int

	employees     []types.Employee
	beneficiaries []types.Beneficiary
	services      []types.Service
	claims        []types.Claim
	policies      []types.Policy
	report        types.Report

	created  []any
	updated  map[string]any
	deleted  []string
	lastSpan types.ReportRange

	listEmployees func(ctx context.Context) ([]types.Employee, error)
	createHook    func(in any) error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		calls:   make(map[string]int),
		updated: make(map[string]any),
		employees: []types.Employee{
			{ID: "e1", EmployeeID: "EMP100", FirstName: "Ada", LastName: "Lovelace", Department: "R&D", Position: "Engineer", CoveragePlan: types.PlanPremium, Status: types.StatusActive},
			{ID: "e2", EmployeeID: "EMP200", FirstName: "Alan", LastName: "Turing", Department: "R&D", Position: "Researcher", CoveragePlan: types.PlanBasic, Status: types.StatusInactive},
		},
		beneficiaries: []types.Beneficiary{
			{ID: "b1", BeneficiaryID: "BEN100", FirstName: "Byron", LastName: "Lovelace", Relationship: types.RelationshipChild, EmployeeName: "Ada Lovelace", Coverage: types.PlanPremium, Status: types.StatusActive},
		},
		services: []types.Service{
			{ID: "s1", ServiceID: "SRV100", Date: types.NewTimestamp(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), PatientName: "Ada Lovelace", ServiceType: types.ServiceSurgery, Provider: "General", Cost: decimal.NewFromInt(1200), Status: types.ServiceCompleted},
		},
		claims: []types.Claim{
			{ID: "c1", ClaimID: "CLM100", PatientName: "Ada Lovelace", Service: "Surgery", Amount: decimal.NewFromInt(1000), Coverage: 80, Status: types.ClaimPending},
			{ID: "c2", ClaimID: "CLM200", PatientName: "Alan Turing", Service: "Consultation", Amount: decimal.NewFromInt(200), Coverage: 50, Status: types.ClaimProcessed},
		},
		policies: []types.Policy{
			{ID: "p1", PolicyName: "Gold", AnnualLimit: decimal.NewFromInt(50000), Deductible: decimal.NewFromInt(500), Coverage: 90, Status: types.StatusActive},
		},
	}
}

func (f *fakeGateway) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if f.down {
		return errBackendDown
	}
	return nil
}

func (f *fakeGateway) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeGateway) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeGateway) Initialize(context.Context) error { return f.hit("Initialize") }

func (f *fakeGateway) Dashboard(context.Context) (types.Dashboard, error) {
	if err := f.hit("Dashboard"); err != nil {
		return types.Dashboard{}, err
	}
	return types.Dashboard{
		TotalEmployees: len(f.employees), TotalBeneficiaries: len(f.beneficiaries), TotalServices: len(f.services),
		TotalBilling: decimal.NewFromInt(1200),
		ChartData:    types.ChartData{ServiceUsage: make([]float64, 12), CoverageDistribution: []float64{1, 1, 0}},
	}, nil
}

func (f *fakeGateway) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	if f.listEmployees != nil {
		_ = f.hit("ListEmployees")
		return f.listEmployees(ctx)
	}
	if err := f.hit("ListEmployees"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Employee(nil), f.employees...), nil
}

func (f *fakeGateway) GetEmployee(_ context.Context, id string) (types.Employee, error) {
	if err := f.hit("GetEmployee"); err != nil {
		return types.Employee{}, err
	}
	return find(f.employees, func(e types.Employee) bool { return e.ID == id })
}

func (f *fakeGateway) CreateEmployee(_ context.Context, in types.EmployeeInput) (string, error) {
	return f.create("CreateEmployee", in)
}

func (f *fakeGateway) UpdateEmployee(_ context.Context, id string, in types.EmployeeInput) error {
	return f.update("UpdateEmployee", id, in)
}

func (f *fakeGateway) DeleteEmployee(_ context.Context, id string) error {
	return f.remove("DeleteEmployee", id)
}

func (f *fakeGateway) ListBeneficiaries(context.Context) ([]types.Beneficiary, error) {
	if err := f.hit("ListBeneficiaries"); err != nil {
		return nil, err
	}
	return append([]types.Beneficiary(nil), f.beneficiaries...), nil
}

func (f *fakeGateway) GetBeneficiary(_ context.Context, id string) (types.Beneficiary, error) {
	if err := f.hit("GetBeneficiary"); err != nil {
		return types.Beneficiary{}, err
	}
	return find(f.beneficiaries, func(b types.Beneficiary) bool { return b.ID == id })
}

func (f *fakeGateway) CreateBeneficiary(_ context.Context, in types.BeneficiaryInput) (string, error) {
	return f.create("CreateBeneficiary", in)
}

func (f *fakeGateway) UpdateBeneficiary(_ context.Context, id string, in types.BeneficiaryInput) error {
	return f.update("UpdateBeneficiary", id, in)
}

func (f *fakeGateway) DeleteBeneficiary(_ context.Context, id string) error {
	return f.remove("DeleteBeneficiary", id)
}

func (f *fakeGateway) ListServices(context.Context) ([]types.Service, error) {
	if err := f.hit("ListServices"); err != nil {
		return nil, err
	}
	return append([]types.Service(nil), f.services...), nil
}

func (f *fakeGateway) GetService(_ context.Context, id string) (types.Service, error) {
	if err := f.hit("GetService"); err != nil {
		return types.Service{}, err
	}
	return find(f.services, func(s types.Service) bool { return s.ID == id })
}

func (f *fakeGateway) CreateService(_ context.Context, in types.ServiceInput) (string, error) {
	return f.create("CreateService", in)
}

func (f *fakeGateway) UpdateService(_ context.Context, id string, in types.ServiceInput) error {
	return f.update("UpdateService", id, in)
}

func (f *fakeGateway) DeleteService(_ context.Context, id string) error {
	return f.remove("DeleteService", id)
}

func (f *fakeGateway) ListClaims(context.Context) ([]types.Claim, error) {
	if err := f.hit("ListClaims"); err != nil {
		return nil, err
	}
	return append([]types.Claim(nil), f.claims...), nil
}

func (f *fakeGateway) GetClaim(_ context.Context, id string) (types.Claim, error) {
	if err := f.hit("GetClaim"); err != nil {
		return types.Claim{}, err
	}
	return find(f.claims, func(c types.Claim) bool { return c.ID == id })
}

func (f *fakeGateway) UpdateClaim(_ context.Context, id string, in types.ClaimUpdate) error {
	return f.update("UpdateClaim", id, in)
}

func (f *fakeGateway) ListPolicies(context.Context) ([]types.Policy, error) {
	if err := f.hit("ListPolicies"); err != nil {
		return nil, err
	}
	return append([]types.Policy(nil), f.policies...), nil
}

func (f *fakeGateway) CreatePolicy(_ context.Context, in types.PolicyInput) (string, error) {
	return f.create("CreatePolicy", in)
}

func (f *fakeGateway) BillingReport(_ context.Context, rng types.ReportRange) (types.Report, error) {
	if err := f.hit("BillingReport"); err != nil {
		return types.Report{}, err
	}
	f.mu.Lock()
	f.lastSpan = rng
	f.mu.Unlock()
	return f.report, nil
}

func (f *fakeGateway) create(op string, in any) (string, error) {
	if err := f.hit(op); err != nil {
		return "", err
	}
	if f.createHook != nil {
		if err := f.createHook(in); err != nil {
			return "", err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return "new-id", nil
}

func (f *fakeGateway) update(op string, id string, in any) error {
	if err := f.hit(op); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = in
	return nil
}

func (f *fakeGateway) remove(op string, id string) error {
	if err := f.hit(op); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

var errNotFound = errors.New("not found")

func find[T any](records []T, match func(T) bool) (T, error) {
	for _, r := range records {
		if match(r) {
			return r, nil
		}
	}
	var zero T
	return zero, errNotFound
}

func newTestApp(gw *fakeGateway) (*App, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC))
	app := New(gw, services.NewCache(), Options{Clock: clock, SearchDebounce: 300 * time.Millisecond})
	return app, clock
}
