package dto

import (
	"time"

	"github.com/balayogigmcs/labms/internal/domain"
)

// SubmitReportRequest payload.
type SubmitReportRequest struct {
	FormType  domain.FormType         `json:"form_type"`
	Client    string                  `json:"client"`
	Fields    map[string]string       `json:"fields"`
	Micro     domain.MicroPayload     `json:"pathogen_results,omitempty"`
	Chemistry domain.ChemistryPayload `json:"active_tests,omitempty"`
}

// EditFieldRequest payload.
type EditFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// EditNestedResultRequest payload. Value is a bool for checkbox subfields and
// a string for text subfields.
type EditNestedResultRequest struct {
	Key      string `json:"key"`
	Subfield string `json:"subfield"`
	Value    any    `json:"value"`
}

// TransitionRequest payload.
type TransitionRequest struct {
	Status domain.ReportStatus `json:"status"`
}

// ReportSummary response.
type ReportSummary struct {
	ID       string              `json:"id"`
	FormType domain.FormType     `json:"form_type"`
	Status   domain.ReportStatus `json:"status"`
	Client   string              `json:"client"`
}

// ReportDetailResponse provides the full document.
type ReportDetailResponse struct {
	ID         string                  `json:"id"`
	FormType   domain.FormType         `json:"form_type"`
	Client     string                  `json:"client"`
	Status     domain.ReportStatus     `json:"status"`
	Fields     map[string]string       `json:"fields"`
	Micro      domain.MicroPayload     `json:"pathogen_results,omitempty"`
	Chemistry  domain.ChemistryPayload `json:"active_tests,omitempty"`
	Comments   string                  `json:"comments"`
	TestedBy   string                  `json:"tested_by"`
	ReviewedBy string                  `json:"reviewed_by"`
	ReviewedAt *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// PermissionsResponse mirrors the capability set for UI field locking.
type PermissionsResponse struct {
	CanEditFields       bool `json:"can_edit_fields"`
	CanEditChecklist    bool `json:"can_edit_checklist"`
	CanEditResultFields bool `json:"can_edit_result_fields"`
	CanEditComments     bool `json:"can_edit_comments"`
	CanSubmit           bool `json:"can_submit"`
}
