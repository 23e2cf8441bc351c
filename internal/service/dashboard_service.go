package service

import (
	"context"
	"strings"

	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/repository"
	"github.com/balayogigmcs/labms/internal/workflow"
)

// StatusFilterAll is the wildcard accepted by ListReports, matched
// case-insensitively. An empty filter means the same thing.
const StatusFilterAll = "all"

// DashboardService answers role-scoped report listings.
type DashboardService struct {
	reports repository.ReportRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(reports repository.ReportRepository) *DashboardService {
	return &DashboardService{reports: reports}
}

// ListReports returns summaries of reports whose status the role may see,
// further narrowed by statusFilter unless it is the wildcard. Listing is a
// best-effort snapshot; an empty store yields an empty slice, never an error.
func (s *DashboardService) ListReports(ctx context.Context, role domain.Role, statusFilter string) ([]domain.ReportSummary, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := make(map[domain.ReportStatus]struct{})
	for _, status := range workflow.VisibleStatuses(role) {
		visible[status] = struct{}{}
	}

	wildcard := statusFilter == "" || strings.EqualFold(statusFilter, StatusFilterAll)
	summaries := make([]domain.ReportSummary, 0, len(reports))
	for i := range reports {
		if _, ok := visible[reports[i].Status]; !ok {
			continue
		}
		if !wildcard && reports[i].Status != domain.ReportStatus(statusFilter) {
			continue
		}
		summaries = append(summaries, reports[i].Summary())
	}
	return summaries, nil
}
