package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/balayogigmcs/labms/internal/api/dto"
	"github.com/balayogigmcs/labms/internal/auth"
	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/permissions"
	"github.com/balayogigmcs/labms/internal/service"
	apperrors "github.com/balayogigmcs/labms/pkg/util"
)

// ReportsHandler exposes the workflow engine over HTTP.
type ReportsHandler struct {
	reports   *service.ReportService
	dashboard *service.DashboardService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService, dashboardService *service.DashboardService) *ReportsHandler {
	return &ReportsHandler{reports: reportService, dashboard: dashboardService}
}

// SubmitReport handles POST /reports.
func (h *ReportsHandler) SubmitReport(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FormType != domain.FormTypeMicro && req.FormType != domain.FormTypeChemistry {
		return apperrors.NewValidationError("form_type must be micro or chemistry", nil)
	}

	client := req.Client
	if client == "" {
		client = actor.clientName
	}
	report, err := h.reports.SubmitReport(c.Context(), actor.Actor, service.SubmitReportInput{
		FormType:  req.FormType,
		Client:    client,
		Fields:    req.Fields,
		Micro:     req.Micro,
		Chemistry: req.Chemistry,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reportDetail(report)})
}

// ListReports handles GET /reports?status=...
func (h *ReportsHandler) ListReports(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	statusFilter := c.Query("status", service.StatusFilterAll)
	summaries, err := h.dashboard.ListReports(c.Context(), actor.Role, statusFilter)
	if err != nil {
		return err
	}
	items := make([]dto.ReportSummary, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.ReportSummary{
			ID:       summary.ID,
			FormType: summary.FormType,
			Status:   summary.Status,
			Client:   summary.Client,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetReport handles GET /reports/:id.
func (h *ReportsHandler) GetReport(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	report, err := h.reports.GetReport(c.Context(), actor.Actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report)})
}

// EditField handles PATCH /reports/:id/fields.
func (h *ReportsHandler) EditField(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.EditFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Field == "" {
		return apperrors.NewValidationError("field required", nil)
	}
	report, err := h.reports.EditField(c.Context(), actor.Actor, c.Params("id"), req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report)})
}

// EditNestedResult handles PATCH /reports/:id/results.
func (h *ReportsHandler) EditNestedResult(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.EditNestedResultRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Key == "" || req.Subfield == "" {
		return apperrors.NewValidationError("key and subfield required", nil)
	}
	report, err := h.reports.EditNestedResult(c.Context(), actor.Actor, c.Params("id"), req.Key, req.Subfield, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report)})
}

// TransitionStatus handles POST /reports/:id/status.
func (h *ReportsHandler) TransitionStatus(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	report, err := h.reports.TransitionStatus(c.Context(), actor.Actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report)})
}

// GetPermissions handles GET /reports/permissions?form_type=... It is a pure
// query the UI uses for field-locking decisions.
func (h *ReportsHandler) GetPermissions(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	formType := domain.FormType(c.Query("form_type", string(domain.FormTypeMicro)))
	caps := permissions.Get(actor.Role, formType)
	return c.JSON(fiber.Map{"data": dto.PermissionsResponse{
		CanEditFields:       caps.CanEditFields,
		CanEditChecklist:    caps.CanEditChecklist,
		CanEditResultFields: caps.CanEditResultFields,
		CanEditComments:     caps.CanEditComments,
		CanSubmit:           caps.CanSubmit,
	}})
}

type requestActor struct {
	service.Actor
	clientName string
}

func actorFromContext(c *fiber.Ctx) (requestActor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return requestActor{}, apperrors.NewUnauthorized("authentication required")
	}
	return requestActor{
		Actor:      service.Actor{UserID: principal.User.ID, Role: principal.Role},
		clientName: principal.User.ClientName,
	}, nil
}

func reportDetail(report *domain.LabReport) dto.ReportDetailResponse {
	return dto.ReportDetailResponse{
		ID:         report.ID,
		FormType:   report.FormType,
		Client:     report.Client,
		Status:     report.Status,
		Fields:     report.Fields,
		Micro:      report.Micro,
		Chemistry:  report.Chemistry,
		Comments:   report.Comments,
		TestedBy:   report.TestedBy,
		ReviewedBy: report.ReviewedBy,
		ReviewedAt: report.ReviewedAt,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}
