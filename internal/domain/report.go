package domain

import "time"

// FormType selects which report variant a document carries. Fixed at creation.
type FormType string

const (
	FormTypeMicro     FormType = "micro"
	FormTypeChemistry FormType = "chemistry"
)

// ReportStatus enumerates lifecycle states for laboratory reports.
type ReportStatus string

const (
	StatusSubmitted            ReportStatus = "submitted"
	StatusSubmissionRejected   ReportStatus = "submission_rejected"
	StatusVerified             ReportStatus = "verified"
	StatusVerificationFailed   ReportStatus = "verification_failed"
	StatusTesting              ReportStatus = "testing"
	StatusTestFailed           ReportStatus = "test_failed"
	StatusReviewPending        ReportStatus = "review_pending"
	StatusRejected             ReportStatus = "rejected"
	StatusApproved             ReportStatus = "approved"
	StatusModificationRequired ReportStatus = "modification_required"
	StatusApprovalRevoked      ReportStatus = "approval_revoked"
	StatusCompleted            ReportStatus = "completed"
	StatusResultsDisputed      ReportStatus = "results_disputed"
)

// AllStatuses lists every report status in typical progression order.
var AllStatuses = []ReportStatus{
	StatusSubmitted,
	StatusSubmissionRejected,
	StatusVerified,
	StatusVerificationFailed,
	StatusTesting,
	StatusTestFailed,
	StatusReviewPending,
	StatusRejected,
	StatusApproved,
	StatusModificationRequired,
	StatusApprovalRevoked,
	StatusCompleted,
	StatusResultsDisputed,
}

// PathogenResult records screening outcome for a single organism.
// Present and Absent are mutually exclusive; setting one clears the other.
type PathogenResult struct {
	Selected bool `json:"selected"`
	Present  bool `json:"present"`
	Absent   bool `json:"absent"`
}

// MicroPayload maps organism name to its screening result.
type MicroPayload map[string]PathogenResult

// ChemistryEntry is one row of the active-ingredient checklist.
type ChemistryEntry struct {
	Ingredient     string `json:"ingredient"`
	Checked        bool   `json:"checked"`
	FormulaContent string `json:"formulaContent"`
	Result         string `json:"result"`
	DateTested     string `json:"dateTested"`
}

// ChemistryPayload is the ordered active-ingredient checklist.
type ChemistryPayload []ChemistryEntry

// LabReport is the aggregate for laboratory test submissions. Exactly one of
// Micro/Chemistry is populated, matching FormType.
type LabReport struct {
	ID         string            `json:"id"`
	FormType   FormType          `json:"formType"`
	Client     string            `json:"client"`
	Status     ReportStatus      `json:"status"`
	Fields     map[string]string `json:"fields"`
	Micro      MicroPayload      `json:"pathogenResults,omitempty"`
	Chemistry  ChemistryPayload  `json:"activeTests,omitempty"`
	Comments   string            `json:"comments"`
	TestedBy   string            `json:"testedBy"`
	ReviewedBy string            `json:"reviewedBy"`
	ReviewedAt *time.Time        `json:"reviewedAt,omitempty"`
	CreatedBy  string            `json:"createdBy"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// NewMicroPayload returns a payload covering the full organism catalog.
func NewMicroPayload() MicroPayload {
	payload := make(MicroPayload, len(OrganismCatalog))
	for _, organism := range OrganismCatalog {
		payload[organism] = PathogenResult{}
	}
	return payload
}

// NewChemistryPayload returns a checklist covering the full ingredient catalog,
// preserving catalog order.
func NewChemistryPayload() ChemistryPayload {
	payload := make(ChemistryPayload, 0, len(IngredientCatalog))
	for _, ingredient := range IngredientCatalog {
		payload = append(payload, ChemistryEntry{Ingredient: ingredient})
	}
	return payload
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (r *LabReport) Clone() *LabReport {
	copied := *r
	if r.Fields != nil {
		copied.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			copied.Fields[k] = v
		}
	}
	if r.Micro != nil {
		copied.Micro = make(MicroPayload, len(r.Micro))
		for k, v := range r.Micro {
			copied.Micro[k] = v
		}
	}
	if r.Chemistry != nil {
		copied.Chemistry = make(ChemistryPayload, len(r.Chemistry))
		copy(copied.Chemistry, r.Chemistry)
	}
	if r.ReviewedAt != nil {
		at := *r.ReviewedAt
		copied.ReviewedAt = &at
	}
	return &copied
}

// ReportSummary is the dashboard projection; nested payloads are excluded to
// bound response size.
type ReportSummary struct {
	ID       string       `json:"id"`
	FormType FormType     `json:"formType"`
	Status   ReportStatus `json:"status"`
	Client   string       `json:"client"`
}

// Summary projects the report for listing.
func (r *LabReport) Summary() ReportSummary {
	return ReportSummary{
		ID:       r.ID,
		FormType: r.FormType,
		Status:   r.Status,
		Client:   r.Client,
	}
}
