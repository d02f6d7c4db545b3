package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Employee and the other entities carry two identities: ID is the backend's opaque
// record id used for addressing, the business id (EmployeeID, ...) is for display and
// entry-time uniqueness only.
type Employee struct {
	ID           string       `json:"_id"`
	EmployeeID   string       `json:"employeeId"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Department   string       `json:"department"`
	Position     string       `json:"position"`
	CoveragePlan CoveragePlan `json:"coveragePlan"`
	Status       RecordStatus `json:"status"`
	CreatedAt    Timestamp    `json:"createdAt"`
	UpdatedAt    Timestamp    `json:"updatedAt"`
}

type EmployeeInput struct {
	EmployeeID   string       `json:"employeeId" validate:"required,max=32"`
	FirstName    string       `json:"firstName" validate:"required,max=100"`
	LastName     string       `json:"lastName" validate:"required,max=100"`
	Department   string       `json:"department" validate:"required,max=100"`
	Position     string       `json:"position" validate:"required,max=100"`
	CoveragePlan CoveragePlan `json:"coveragePlan" validate:"required,oneof=Basic Premium Family"`
	Status       RecordStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

func (e Employee) FullName() string { return joinName(e.FirstName, e.LastName) }

func (e Employee) ToInput() EmployeeInput {
	return EmployeeInput{
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Department:   e.Department,
		Position:     e.Position,
		CoveragePlan: e.CoveragePlan,
		Status:       e.Status,
	}
}

func (e Employee) Fields() map[string]any {
	return map[string]any{
		"_id":          e.ID,
		"employeeId":   e.EmployeeID,
		"firstName":    e.FirstName,
		"lastName":     e.LastName,
		"department":   e.Department,
		"position":     e.Position,
		"coveragePlan": string(e.CoveragePlan),
		"status":       string(e.Status),
		"createdAt":    e.CreatedAt.Date(),
	}
}

// Beneficiary.EmployeeID references Employee.ID (the opaque id), not the business id.
type Beneficiary struct {
	ID            string       `json:"_id"`
	BeneficiaryID string       `json:"beneficiaryId"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Relationship  Relationship `json:"relationship"`
	EmployeeID    string       `json:"employeeId"`
	EmployeeName  string       `json:"employeeName,omitempty"`
	Coverage      CoveragePlan `json:"coverage"`
	Status        RecordStatus `json:"status"`
	CreatedAt     Timestamp    `json:"createdAt"`
	UpdatedAt     Timestamp    `json:"updatedAt"`
}

type BeneficiaryInput struct {
	BeneficiaryID string       `json:"beneficiaryId" validate:"required,max=32"`
	FirstName     string       `json:"firstName" validate:"required,max=100"`
	LastName      string       `json:"lastName" validate:"required,max=100"`
	Relationship  Relationship `json:"relationship" validate:"required,oneof=spouse child parent other"`
	EmployeeID    string       `json:"employeeId" validate:"required"`
	Coverage      CoveragePlan `json:"coverage" validate:"required,oneof=Basic Premium Family"`
	Status        RecordStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

func (b Beneficiary) FullName() string { return joinName(b.FirstName, b.LastName) }

func (b Beneficiary) ToInput() BeneficiaryInput {
	return BeneficiaryInput{
		BeneficiaryID: b.BeneficiaryID,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Relationship:  b.Relationship,
		EmployeeID:    b.EmployeeID,
		Coverage:      b.Coverage,
		Status:        b.Status,
	}
}

func (b Beneficiary) Fields() map[string]any {
	return map[string]any{
		"_id":           b.ID,
		"beneficiaryId": b.BeneficiaryID,
		"firstName":     b.FirstName,
		"lastName":      b.LastName,
		"relationship":  string(b.Relationship),
		"employeeId":    b.EmployeeID,
		"employeeName":  b.EmployeeName,
		"coverage":      string(b.Coverage),
		"status":        string(b.Status),
	}
}

// Service is a medical service event. PatientName is free text.
type Service struct {
	ID          string          `json:"_id"`
	ServiceID   string          `json:"serviceId"`
	Date        Timestamp       `json:"date"`
	PatientName string          `json:"patientName"`
	ServiceType ServiceType     `json:"serviceType"`
	Provider    string          `json:"provider"`
	Cost        decimal.Decimal `json:"cost"`
	Status      ServiceStatus   `json:"status"`
	CreatedAt   Timestamp       `json:"createdAt"`
	UpdatedAt   Timestamp       `json:"updatedAt"`
}

type ServiceInput struct {
	ServiceID   string        `json:"serviceId" validate:"required,max=32"`
	Date        string        `json:"date" validate:"required,datetime=2006-01-02"`
	PatientName string        `json:"patientName" validate:"required,max=200"`
	ServiceType ServiceType   `json:"serviceType" validate:"required,oneof=Consultation Diagnostic Treatment Surgery Emergency"`
	Provider    string        `json:"provider" validate:"required,max=200"`
	Cost        float64       `json:"cost" validate:"gte=0"`
	Status      ServiceStatus `json:"status" validate:"required,oneof=Pending Processed Completed"`
}

func (s Service) ToInput() ServiceInput {
	return ServiceInput{
		ServiceID:   s.ServiceID,
		Date:        s.Date.Date(),
		PatientName: s.PatientName,
		ServiceType: s.ServiceType,
		Provider:    s.Provider,
		Cost:        s.Cost.InexactFloat64(),
		Status:      s.Status,
	}
}

func (s Service) Fields() map[string]any {
	return map[string]any{
		"_id":         s.ID,
		"serviceId":   s.ServiceID,
		"date":        s.Date.Date(),
		"patientName": s.PatientName,
		"serviceType": string(s.ServiceType),
		"provider":    s.Provider,
		"cost":        s.Cost.InexactFloat64(),
		"status":      string(s.Status),
	}
}

// Claim is one billing record.
type Claim struct {
	ID          string          `json:"_id"`
	ClaimID     string          `json:"claimId"`
	ServiceDate Timestamp       `json:"serviceDate"`
	PatientName string          `json:"patientName"`
	Service     string          `json:"service"`
	Amount      decimal.Decimal `json:"amount"`
	Coverage    int             `json:"coverage"`
	Status      ClaimStatus     `json:"status"`
	CreatedAt   Timestamp       `json:"createdAt"`
	UpdatedAt   Timestamp       `json:"updatedAt"`
}

// ClaimUpdate is the only write the console performs on billing records.
type ClaimUpdate struct {
	Status   ClaimStatus `json:"status" validate:"required,oneof=Pending Processed Approved Rejected"`
	Coverage int         `json:"coverage" validate:"min=0,max=100"`
}

func (c Claim) ToUpdate() ClaimUpdate {
	return ClaimUpdate{Status: c.Status, Coverage: c.Coverage}
}

// CoveredAmount is amount × coverage / 100, rounded to cents.
func (c Claim) CoveredAmount() decimal.Decimal {
	return c.Amount.Mul(decimal.NewFromInt(int64(c.Coverage))).Div(hundred).Round(2)
}

// PatientResponsibility is amount × (1 − coverage/100), rounded to cents.
func (c Claim) PatientResponsibility() decimal.Decimal {
	share := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(c.Coverage)).Div(hundred))
	return c.Amount.Mul(share).Round(2)
}

func (c Claim) Fields() map[string]any {
	return map[string]any{
		"_id":         c.ID,
		"claimId":     c.ClaimID,
		"serviceDate": c.ServiceDate.Date(),
		"patientName": c.PatientName,
		"service":     c.Service,
		"amount":      c.Amount.InexactFloat64(),
		"coverage":    int64(c.Coverage),
		"status":      string(c.Status),
	}
}

type Policy struct {
	ID          string          `json:"_id"`
	PolicyName  string          `json:"policyName"`
	AnnualLimit decimal.Decimal `json:"annualLimit"`
	Deductible  decimal.Decimal `json:"deductible"`
	Coverage    int             `json:"coverage"`
	Status      RecordStatus    `json:"status"`
	CreatedAt   Timestamp       `json:"createdAt"`
}

type PolicyInput struct {
	PolicyName  string       `json:"policyName" validate:"required,max=100"`
	AnnualLimit int64        `json:"annualLimit" validate:"gte=0"`
	Deductible  int64        `json:"deductible" validate:"gte=0"`
	Coverage    int          `json:"coverage" validate:"min=0,max=100"`
	Status      RecordStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

func (p Policy) Fields() map[string]any {
	return map[string]any{
		"_id":         p.ID,
		"policyName":  p.PolicyName,
		"annualLimit": p.AnnualLimit.InexactFloat64(),
		"deductible":  p.Deductible.InexactFloat64(),
		"coverage":    int64(p.Coverage),
		"status":      string(p.Status),
	}
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
