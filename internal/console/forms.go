package console

import (
	"strconv"
	"strings"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
)

// Form values arrive as submitted strings; these helpers turn them into write payloads.

func value(values map[string]string, key string) string {
	return strings.TrimSpace(values[key])
}

func parseEmployee(values map[string]string) types.EmployeeInput {
	return types.EmployeeInput{
		EmployeeID:   value(values, "employeeId"),
		FirstName:    value(values, "firstName"),
		LastName:     value(values, "lastName"),
		Department:   value(values, "department"),
		Position:     value(values, "position"),
		CoveragePlan: types.CoveragePlan(value(values, "coveragePlan")),
		Status:       types.RecordStatus(value(values, "status")),
	}
}

func parseBeneficiary(values map[string]string) types.BeneficiaryInput {
	return types.BeneficiaryInput{
		BeneficiaryID: value(values, "beneficiaryId"),
		FirstName:     value(values, "firstName"),
		LastName:      value(values, "lastName"),
		Relationship:  types.Relationship(value(values, "relationship")),
		EmployeeID:    value(values, "employeeId"),
		Coverage:      types.CoveragePlan(value(values, "coverage")),
		Status:        types.RecordStatus(value(values, "status")),
	}
}

func parseService(values map[string]string) (types.ServiceInput, error) {
	cost, err := parseFloat(values, "cost")
	if err != nil {
		return types.ServiceInput{}, err
	}
	return types.ServiceInput{
		ServiceID:   value(values, "serviceId"),
		Date:        value(values, "date"),
		PatientName: value(values, "patientName"),
		ServiceType: types.ServiceType(value(values, "serviceType")),
		Provider:    value(values, "provider"),
		Cost:        cost,
		Status:      types.ServiceStatus(value(values, "status")),
	}, nil
}

func parseClaimUpdate(values map[string]string) (types.ClaimUpdate, error) {
	coverage, err := parseInt(values, "coverage")
	if err != nil {
		return types.ClaimUpdate{}, err
	}
	return types.ClaimUpdate{
		Status:   types.ClaimStatus(value(values, "status")),
		Coverage: int(coverage),
	}, nil
}

func parsePolicy(values map[string]string) (types.PolicyInput, error) {
	limit, err := parseInt(values, "annualLimit")
	if err != nil {
		return types.PolicyInput{}, err
	}
	deductible, err := parseInt(values, "deductible")
	if err != nil {
		return types.PolicyInput{}, err
	}
	coverage, err := parseInt(values, "coverage")
	if err != nil {
		return types.PolicyInput{}, err
	}
	return types.PolicyInput{
		PolicyName:  value(values, "policyName"),
		AnnualLimit: limit,
		Deductible:  deductible,
		Coverage:    int(coverage),
		Status:      types.RecordStatus(value(values, "status")),
	}, nil
}

func parseFloat(values map[string]string, key string) (float64, error) {
	raw := value(values, key)
	if raw == "" {
		return 0, httperr.NewFieldError(key, "is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, httperr.NewFieldError(key, "must be a number")
	}
	return f, nil
}

func parseInt(values map[string]string, key string) (int64, error) {
	raw := value(values, key)
	if raw == "" {
		return 0, httperr.NewFieldError(key, "is required")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, httperr.NewFieldError(key, "must be a whole number")
	}
	return n, nil
}
