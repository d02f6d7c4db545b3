package types

type CoveragePlan string

const (
	PlanBasic   CoveragePlan = "Basic"
	PlanPremium CoveragePlan = "Premium"
	PlanFamily  CoveragePlan = "Family"
)

func CoveragePlans() []CoveragePlan { return []CoveragePlan{PlanBasic, PlanPremium, PlanFamily} }

func (p CoveragePlan) Valid() bool { return contains(CoveragePlans(), p) }

type RecordStatus string

const (
	StatusActive   RecordStatus = "Active"
	StatusInactive RecordStatus = "Inactive"
)

func RecordStatuses() []RecordStatus { return []RecordStatus{StatusActive, StatusInactive} }

func (s RecordStatus) Valid() bool { return contains(RecordStatuses(), s) }

type Relationship string

const (
	RelationshipSpouse Relationship = "spouse"
	RelationshipChild  Relationship = "child"
	RelationshipParent Relationship = "parent"
	RelationshipOther  Relationship = "other"
)

func Relationships() []Relationship {
	return []Relationship{RelationshipSpouse, RelationshipChild, RelationshipParent, RelationshipOther}
}

func (r Relationship) Valid() bool { return contains(Relationships(), r) }

type ServiceType string

const (
	ServiceConsultation ServiceType = "Consultation"
	ServiceDiagnostic   ServiceType = "Diagnostic"
	ServiceTreatment    ServiceType = "Treatment"
	ServiceSurgery      ServiceType = "Surgery"
	ServiceEmergency    ServiceType = "Emergency"
)

func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceConsultation, ServiceDiagnostic, ServiceTreatment, ServiceSurgery, ServiceEmergency}
}

func (t ServiceType) Valid() bool { return contains(ServiceTypes(), t) }

type ServiceStatus string

const (
	ServicePending   ServiceStatus = "Pending"
	ServiceProcessed ServiceStatus = "Processed"
	ServiceCompleted ServiceStatus = "Completed"
)

func ServiceStatuses() []ServiceStatus {
	return []ServiceStatus{ServicePending, ServiceProcessed, ServiceCompleted}
}

func (s ServiceStatus) Valid() bool { return contains(ServiceStatuses(), s) }

type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "Pending"
	ClaimProcessed ClaimStatus = "Processed"
	ClaimApproved  ClaimStatus = "Approved"
	ClaimRejected  ClaimStatus = "Rejected"
)

func ClaimStatuses() []ClaimStatus {
	return []ClaimStatus{ClaimPending, ClaimProcessed, ClaimApproved, ClaimRejected}
}

func (s ClaimStatus) Valid() bool { return contains(ClaimStatuses(), s) }

func contains[T comparable](all []T, v T) bool {
	for _, x := range all {
		if x == v {
			return true
		}
	}
	return false
}
