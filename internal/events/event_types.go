package events

import (
	"time"

	"github.com/balayogigmcs/labms/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportSubmitted      EventType = "report_submitted"
	EventReportStatusChanged  EventType = "report_status_changed"
	EventReportFieldEdited    EventType = "report_field_edited"
	EventReportResultRecorded EventType = "report_result_recorded"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by the workflow engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportSubmittedPayload payload.
type ReportSubmittedPayload struct {
	FormType domain.FormType `json:"form_type"`
	Client   string          `json:"client"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
}

// ReportFieldEditedPayload payload.
type ReportFieldEditedPayload struct {
	Field string `json:"field"`
}

// ReportResultRecordedPayload payload.
type ReportResultRecordedPayload struct {
	Key      string `json:"key"`
	Subfield string `json:"subfield"`
}
