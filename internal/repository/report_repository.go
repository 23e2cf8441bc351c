package repository

import (
	"context"
	"encoding/json"

	"github.com/balayogigmcs/labms/internal/domain"
)

// ReportRepository adapts the document store to typed lab reports.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.LabReport) error
	GetByID(ctx context.Context, id string) (*domain.LabReport, error)
	ListAll(ctx context.Context) ([]domain.LabReport, error)
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	store DocumentStore
}

// NewReportRepository instantiates the repository.
func NewReportRepository(store DocumentStore) ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) Save(ctx context.Context, report *domain.LabReport) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.store.CreateOrMerge(ctx, CollectionReports, report.ID, doc)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.LabReport, error) {
	doc, err := r.store.GetByID(ctx, CollectionReports, id)
	if err != nil {
		return nil, err
	}
	var report domain.LabReport
	if err := json.Unmarshal(doc, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]domain.LabReport, error) {
	docs, err := r.store.QueryAll(ctx, CollectionReports)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.LabReport, 0, len(docs))
	for _, doc := range docs {
		var report domain.LabReport
		if err := json.Unmarshal(doc, &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionReports, id)
}
