package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

// Criteria narrows a cached list. Every field is optional; zero values impose no
// constraint. Structured fields apply only to the kinds that carry them.
type Criteria struct {
	Term         string
	Relationship types.Relationship
	ServiceType  types.ServiceType
	Date         string
	Status       string
	Plan         types.CoveragePlan
	Expr         string
}

func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Term) == "" &&
		c.Relationship == "" &&
		c.ServiceType == "" &&
		strings.TrimSpace(c.Date) == "" &&
		c.Status == "" &&
		c.Plan == "" &&
		strings.TrimSpace(c.Expr) == ""
}

type fielder interface {
	Fields() map[string]any
}

type predicate[T any] func(T) bool

func FilterEmployees(records []types.Employee, c Criteria) ([]types.Employee, error) {
	return apply(records, c, func(e types.Employee) []string {
		return []string{e.FirstName, e.LastName, e.EmployeeID, e.Department}
	},
		statusIs(c.Status, func(e types.Employee) string { return string(e.Status) }),
		planIs(c.Plan, func(e types.Employee) types.CoveragePlan { return e.CoveragePlan }),
	)
}

func FilterBeneficiaries(records []types.Beneficiary, c Criteria) ([]types.Beneficiary, error) {
	var byRelationship predicate[types.Beneficiary]
	if c.Relationship != "" {
		byRelationship = func(b types.Beneficiary) bool {
			return strings.EqualFold(string(b.Relationship), string(c.Relationship))
		}
	}
	return apply(records, c, func(b types.Beneficiary) []string {
		return []string{b.FirstName, b.LastName, b.BeneficiaryID, b.EmployeeName}
	},
		byRelationship,
		statusIs(c.Status, func(b types.Beneficiary) string { return string(b.Status) }),
		planIs(c.Plan, func(b types.Beneficiary) types.CoveragePlan { return b.Coverage }),
	)
}

func FilterServices(records []types.Service, c Criteria) ([]types.Service, error) {
	var byType, byDate predicate[types.Service]
	if c.ServiceType != "" {
		byType = func(s types.Service) bool {
			return strings.EqualFold(string(s.ServiceType), string(c.ServiceType))
		}
	}
	if date := strings.TrimSpace(c.Date); date != "" {
		byDate = func(s types.Service) bool { return s.Date.Date() == date }
	}
	return apply(records, c, func(s types.Service) []string {
		return []string{s.ServiceID, s.PatientName, string(s.ServiceType), s.Provider}
	},
		byType,
		byDate,
		statusIs(c.Status, func(s types.Service) string { return string(s.Status) }),
	)
}

func FilterClaims(records []types.Claim, c Criteria) ([]types.Claim, error) {
	return apply(records, c, func(cl types.Claim) []string {
		return []string{cl.ClaimID, cl.PatientName, cl.Service}
	},
		statusIs(c.Status, func(cl types.Claim) string { return string(cl.Status) }),
	)
}

func FilterPolicies(records []types.Policy, c Criteria) ([]types.Policy, error) {
	return apply(records, c, func(p types.Policy) []string {
		return []string{p.PolicyName}
	},
		statusIs(c.Status, func(p types.Policy) string { return string(p.Status) }),
	)
}

func statusIs[T any](want string, get func(T) string) predicate[T] {
	if strings.TrimSpace(want) == "" {
		return nil
	}
	return func(v T) bool { return strings.EqualFold(get(v), want) }
}

func planIs[T any](want types.CoveragePlan, get func(T) types.CoveragePlan) predicate[T] {
	if want == "" {
		return nil
	}
	return func(v T) bool { return get(v) == want }
}

// apply is a stable filter: the result keeps the relative order of records.
func apply[T fielder](records []T, c Criteria, text func(T) []string, preds ...predicate[T]) ([]T, error) {
	term := strings.ToLower(strings.TrimSpace(c.Term))

	var expr cel.Program
	if raw := strings.TrimSpace(c.Expr); raw != "" {
		prg, err := compileExpr(raw)
		if err != nil {
			return nil, err
		}
		expr = prg
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if term != "" && !matchesTerm(text(r), term) {
			continue
		}
		if !matchesAll(r, preds) {
			continue
		}
		if expr != nil {
			ok, err := evalExpr(expr, r.Fields())
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func matchesTerm(fields []string, lowerTerm string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

func matchesAll[T any](v T, preds []predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(v) {
			return false
		}
	}
	return true
}

var newFilterCELEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("record", cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
	)
})

var filterProgramCache sync.Map

// ErrInvalidExpr wraps every compile or evaluation failure of a filter expression.
var ErrInvalidExpr = errors.New("invalid filter expression")

func compileExpr(raw string) (cel.Program, error) {
	if cached, ok := filterProgramCache.Load(raw); ok {
		return cached.(cel.Program), nil
	}
	env, err := newFilterCELEnv()
	if err != nil {
		return nil, err
	}
	ast, iss := env.Compile(raw)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpr, err)
	}
	filterProgramCache.Store(raw, prg)
	return prg, nil
}

func evalExpr(prg cel.Program, record map[string]any) (bool, error) {
	out, _, err := prg.Eval(map[string]any{"record": record})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidExpr, err)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("%w: expression must evaluate to a bool", ErrInvalidExpr)
	}
	return ok, nil
}
