package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/events"
	"github.com/balayogigmcs/labms/internal/permissions"
	"github.com/balayogigmcs/labms/internal/repository"
	"github.com/balayogigmcs/labms/internal/workflow"
	apperrors "github.com/balayogigmcs/labms/pkg/util"
)

// Actor identifies the caller of a workflow operation.
type Actor struct {
	UserID string
	Role   domain.Role
}

// ReportService is the single entry point for report mutation. Every operation
// reads the latest persisted document, validates against the permission table
// and status graph, and writes the full merged document back. The store offers
// no compare-and-swap, so two roles editing the same field in a narrow window
// race last-writer-wins; the permission matrix serializes most access because
// only one role's capability set covers the live fields at any stage.
type ReportService struct {
	reports    repository.ReportRepository
	sequence   repository.ReportNumberAllocator
	dispatcher events.Dispatcher
}

// ReportDependencies bundles requirements for the report service.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	Sequence   repository.ReportNumberAllocator
	Dispatcher events.Dispatcher
}

// SubmitReportInput describes report creation payload.
type SubmitReportInput struct {
	FormType  domain.FormType
	Client    string
	Fields    map[string]string
	Micro     domain.MicroPayload
	Chemistry domain.ChemistryPayload
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		sequence:   deps.Sequence,
		dispatcher: deps.Dispatcher,
	}
}

// SubmitReport creates a report in status submitted. Requires the actor's
// capability set to grant CanSubmit for the form type.
func (s *ReportService) SubmitReport(ctx context.Context, actor Actor, input SubmitReportInput) (*domain.LabReport, error) {
	caps := permissions.Get(actor.Role, input.FormType)
	if !caps.CanSubmit {
		return nil, apperrors.NewPermissionDenied("role may not submit reports")
	}

	id, err := s.sequence.NextReportID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &domain.LabReport{
		ID:        id,
		FormType:  input.FormType,
		Client:    input.Client,
		Status:    domain.StatusSubmitted,
		Fields:    input.Fields,
		Micro:     input.Micro,
		Chemistry: input.Chemistry,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if report.Fields == nil {
		report.Fields = map[string]string{}
	}
	switch report.FormType {
	case domain.FormTypeMicro:
		if report.Micro == nil {
			report.Micro = domain.NewMicroPayload()
		}
	case domain.FormTypeChemistry:
		if report.Chemistry == nil {
			report.Chemistry = domain.NewChemistryPayload()
		}
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportSubmitted,
		ReportID: report.ID,
		Actor:    eventActor(actor),
		Payload: events.ReportSubmittedPayload{
			FormType: report.FormType,
			Client:   report.Client,
		},
	})
	return report, nil
}

// GetReport fetches a report ensuring the actor may observe its status.
func (s *ReportService) GetReport(ctx context.Context, actor Actor, reportID string) (*domain.LabReport, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanSee(actor.Role, report.Status) {
		return nil, apperrors.NewPermissionDenied("report status not visible to role")
	}
	return report, nil
}

// EditField merges a single scalar field edit, gated by the capability bucket
// the field falls into.
func (s *ReportService) EditField(ctx context.Context, actor Actor, reportID, field, value string) (*domain.LabReport, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if field == "client" {
		return nil, apperrors.NewValidationError("client is immutable after submission", nil)
	}
	bucket := domain.ClassifyField(report.FormType, field)
	if bucket == domain.BucketUnknown {
		return nil, apperrors.NewValidationError("unknown field key", map[string]any{"field": field})
	}
	caps := permissions.Get(actor.Role, report.FormType)
	if !caps.Allows(bucket) {
		return nil, apperrors.NewPermissionDenied(fmt.Sprintf("role may not edit %s", field))
	}

	switch field {
	case "comments":
		report.Comments = value
	case "testedBy":
		report.TestedBy = value
	default:
		report.Fields[field] = value
	}
	report.UpdatedAt = time.Now()

	if err := report.Validate(); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportFieldEdited,
		ReportID: report.ID,
		Actor:    eventActor(actor),
		Payload:  events.ReportFieldEditedPayload{Field: field},
	})
	return report, nil
}

// EditNestedResult merges an edit to one pathogen or checklist sub-record.
// Boolean subfields expect a bool value; text subfields expect a string. The
// present/absent mutual exclusion is enforced on write.
func (s *ReportService) EditNestedResult(ctx context.Context, actor Actor, reportID, key, subfield string, value any) (*domain.LabReport, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	bucket := domain.ClassifySubfield(report.FormType, subfield)
	if bucket == domain.BucketUnknown {
		return nil, apperrors.NewValidationError("unknown result subfield", map[string]any{"subfield": subfield})
	}
	caps := permissions.Get(actor.Role, report.FormType)
	if !caps.Allows(bucket) {
		return nil, apperrors.NewPermissionDenied(fmt.Sprintf("role may not edit %s", subfield))
	}

	if report.FormType == domain.FormTypeMicro {
		if err := applyMicroEdit(report, key, subfield, value); err != nil {
			return nil, err
		}
	} else {
		if err := applyChemistryEdit(report, key, subfield, value); err != nil {
			return nil, err
		}
	}
	report.UpdatedAt = time.Now()

	if err := report.Validate(); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportResultRecorded,
		ReportID: report.ID,
		Actor:    eventActor(actor),
		Payload:  events.ReportResultRecordedPayload{Key: key, Subfield: subfield},
	})
	return report, nil
}

// TransitionStatus moves the report along the status graph.
func (s *ReportService) TransitionStatus(ctx context.Context, actor Actor, reportID string, to domain.ReportStatus) (*domain.LabReport, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !workflow.CanTransition(report.Status, to, actor.Role) {
		return nil, apperrors.NewInvalidTransition(
			fmt.Sprintf("no transition from %s to %s for role %s", report.Status, to, actor.Role),
			map[string]any{"from": report.Status, "to": to, "role": actor.Role},
		)
	}

	oldStatus := report.Status
	now := time.Now()
	report.Status = to
	report.UpdatedAt = now
	if workflow.IsReviewTransition(to) {
		report.ReviewedBy = actor.UserID
		report.ReviewedAt = &now
	}

	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: report.ID,
		Actor:    eventActor(actor),
		Payload: events.ReportStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: to,
		},
	})
	return report, nil
}

func (s *ReportService) loadReport(ctx context.Context, reportID string) (*domain.LabReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, apperrors.NewNotFound("report", map[string]any{"id": reportID})
		}
		return nil, err
	}
	return report, nil
}

func applyMicroEdit(report *domain.LabReport, organism, subfield string, value any) error {
	if !domain.KnownOrganism(organism) {
		return apperrors.NewValidationError("unrecognized organism", map[string]any{"organism": organism})
	}
	flag, ok := value.(bool)
	if !ok {
		return apperrors.NewValidationError("pathogen subfields require a boolean value", map[string]any{"subfield": subfield})
	}
	result := report.Micro[organism]
	switch subfield {
	case "selected":
		result.Selected = flag
	case "present":
		result.Present = flag
		if flag {
			result.Absent = false
		}
	case "absent":
		result.Absent = flag
		if flag {
			result.Present = false
		}
	}
	if report.Micro == nil {
		report.Micro = domain.MicroPayload{}
	}
	report.Micro[organism] = result
	return nil
}

func applyChemistryEdit(report *domain.LabReport, ingredient, subfield string, value any) error {
	if !domain.KnownIngredient(ingredient) {
		return apperrors.NewValidationError("unrecognized active ingredient", map[string]any{"ingredient": ingredient})
	}
	idx := -1
	for i := range report.Chemistry {
		if report.Chemistry[i].Ingredient == ingredient {
			idx = i
			break
		}
	}
	if idx < 0 {
		report.Chemistry = append(report.Chemistry, domain.ChemistryEntry{Ingredient: ingredient})
		idx = len(report.Chemistry) - 1
	}
	entry := &report.Chemistry[idx]

	if subfield == "checked" {
		flag, ok := value.(bool)
		if !ok {
			return apperrors.NewValidationError("checked requires a boolean value", map[string]any{"subfield": subfield})
		}
		entry.Checked = flag
		if !flag {
			// unchecking clears recorded results so the row stays consistent
			entry.FormulaContent = ""
			entry.Result = ""
			entry.DateTested = ""
		}
		return nil
	}

	text, ok := value.(string)
	if !ok {
		return apperrors.NewValidationError("result subfields require a string value", map[string]any{"subfield": subfield})
	}
	if !entry.Checked && text != "" {
		return apperrors.NewValidationError("results require the ingredient to be checked", map[string]any{"ingredient": ingredient})
	}
	switch subfield {
	case "formulaContent":
		entry.FormulaContent = text
	case "result":
		entry.Result = text
	case "dateTested":
		entry.DateTested = text
	}
	return nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor Actor) events.Actor {
	return events.Actor{UserID: actor.UserID, Role: actor.Role}
}
