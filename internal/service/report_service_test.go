package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/events"
	"github.com/balayogigmcs/labms/internal/repository"
	apperrors "github.com/balayogigmcs/labms/pkg/util"
)

// memoryReportRepository stores deep copies so callers never alias stored
// state, matching how the document store round-trips JSON.
type memoryReportRepository struct {
	mu      sync.Mutex
	byID    map[string]*domain.LabReport
	ordered []string
}

func newMemoryReportRepository() *memoryReportRepository {
	return &memoryReportRepository{byID: make(map[string]*domain.LabReport)}
}

func (r *memoryReportRepository) Save(_ context.Context, report *domain.LabReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[report.ID]; !exists {
		r.ordered = append(r.ordered, report.ID)
	}
	r.byID[report.ID] = report.Clone()
	return nil
}

func (r *memoryReportRepository) GetByID(_ context.Context, id string) (*domain.LabReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	return report.Clone(), nil
}

func (r *memoryReportRepository) ListAll(_ context.Context) ([]domain.LabReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.LabReport, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, *r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryReportRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrDocumentNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.ordered {
		if existing == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return nil
}

type fakeAllocator struct {
	mu   sync.Mutex
	next int64
}

func (a *fakeAllocator) NextReportID(context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	return fmt.Sprintf("form_%d", a.next), nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, event := range d.events {
		out = append(out, event.Type)
	}
	return out
}

func newTestService() (*ReportService, *memoryReportRepository, *recordingDispatcher) {
	repo := newMemoryReportRepository()
	dispatcher := &recordingDispatcher{}
	svc := NewReportService(ReportDependencies{
		ReportRepo: repo,
		Sequence:   &fakeAllocator{},
		Dispatcher: dispatcher,
	})
	return svc, repo, dispatcher
}

var (
	clientActor        = Actor{UserID: "user-client", Role: domain.RoleClient}
	employeeActor      = Actor{UserID: "user-employee", Role: domain.RoleEmployee}
	administratorActor = Actor{UserID: "user-administrator", Role: domain.RoleAdministrator}
	headActor          = Actor{UserID: "user-head", Role: domain.RoleHead}
	frontdeskActor     = Actor{UserID: "user-frontdesk", Role: domain.RoleFrontdesk}
)

func submitMicro(t *testing.T, svc *ReportService) *domain.LabReport {
	t.Helper()
	report, err := svc.SubmitReport(context.Background(), clientActor, SubmitReportInput{
		FormType: domain.FormTypeMicro,
		Client:   "Acme Cosmetics",
		Fields:   map[string]string{"lotNumber": "L-77", "sampleType": "lotion"},
	})
	require.NoError(t, err)
	return report
}

func TestSubmitReportAssignsSequentialIDs(t *testing.T) {
	svc, _, dispatcher := newTestService()

	first := submitMicro(t, svc)
	second := submitMicro(t, svc)

	assert.Equal(t, "form_1", first.ID)
	assert.Equal(t, "form_2", second.ID)
	assert.Equal(t, domain.StatusSubmitted, first.Status)
	assert.Len(t, first.Micro, len(domain.OrganismCatalog), "payload defaults to full catalog")
	assert.Contains(t, dispatcher.types(), events.EventReportSubmitted)
}

func TestSubmitReportDeniedForNonSubmitters(t *testing.T) {
	svc, _, _ := newTestService()

	for _, actor := range []Actor{employeeActor, frontdeskActor, headActor, {UserID: "u", Role: domain.RoleAdmin}} {
		_, err := svc.SubmitReport(context.Background(), actor, SubmitReportInput{FormType: domain.FormTypeMicro})
		assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied), "role %s", actor.Role)
	}
}

func TestSubmitChemistryDefaultsChecklist(t *testing.T) {
	svc, _, _ := newTestService()
	report, err := svc.SubmitReport(context.Background(), clientActor, SubmitReportInput{
		FormType: domain.FormTypeChemistry,
		Client:   "Acme Cosmetics",
	})
	require.NoError(t, err)
	require.Len(t, report.Chemistry, len(domain.IngredientCatalog))
	assert.Nil(t, report.Micro)
}

func TestGetReportHonorsVisibility(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)

	got, err := svc.GetReport(context.Background(), frontdeskActor, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	// submitted is outside the employee lane
	_, err = svc.GetReport(context.Background(), employeeActor, report.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))
}

func TestGetReportNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetReport(context.Background(), administratorActor, "form_404")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestEditFieldPermissionBoundaries(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)

	// testedBy is a result field: employee yes, client no
	_, err := svc.EditField(context.Background(), clientActor, report.ID, "testedBy", "J. Doe")
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))

	updated, err := svc.EditField(context.Background(), employeeActor, report.ID, "testedBy", "J. Doe")
	require.NoError(t, err)
	assert.Equal(t, "J. Doe", updated.TestedBy)

	// descriptive fields go the other way
	_, err = svc.EditField(context.Background(), employeeActor, report.ID, "lotNumber", "L-78")
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))

	updated, err = svc.EditField(context.Background(), clientActor, report.ID, "lotNumber", "L-78")
	require.NoError(t, err)
	assert.Equal(t, "L-78", updated.Fields["lotNumber"])
}

func TestEditFieldClientNameImmutable(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)

	_, err := svc.EditField(context.Background(), administratorActor, report.ID, "client", "Other Corp")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestEditFieldUnknownKey(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)

	_, err := svc.EditField(context.Background(), administratorActor, report.ID, "poNumber", "PO-1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "chemistry key on a micro report")
}

func TestEditFieldIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	report := submitMicro(t, svc)

	_, err := svc.EditField(context.Background(), employeeActor, report.ID, "comments", "retest lot")
	require.NoError(t, err)
	_, err = svc.EditField(context.Background(), employeeActor, report.ID, "comments", "retest lot")
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "retest lot", stored.Comments)
}

func TestEditNestedResultMutualExclusion(t *testing.T) {
	svc, repo, _ := newTestService()
	report := submitMicro(t, svc)
	ctx := context.Background()

	_, err := svc.EditNestedResult(ctx, employeeActor, report.ID, "E.coli", "present", true)
	require.NoError(t, err)
	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "E.coli", "absent", true)
	require.NoError(t, err)
	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "E.coli", "present", true)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, report.ID)
	require.NoError(t, err)
	result := stored.Micro["E.coli"]
	assert.True(t, result.Present)
	assert.False(t, result.Absent, "setting present clears absent")
}

func TestEditNestedResultChecklistGating(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)
	ctx := context.Background()

	// selected is a checklist subfield: client yes, employee no
	_, err := svc.EditNestedResult(ctx, employeeActor, report.ID, "Salmonella", "selected", true)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))

	_, err = svc.EditNestedResult(ctx, clientActor, report.ID, "Salmonella", "selected", true)
	require.NoError(t, err)

	// present is a result subfield: the inverse
	_, err = svc.EditNestedResult(ctx, clientActor, report.ID, "Salmonella", "present", true)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))
}

func TestEditNestedResultRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService()
	report := submitMicro(t, svc)
	ctx := context.Background()

	_, err := svc.EditNestedResult(ctx, employeeActor, report.ID, "E.coli", "present", "yes")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "bool subfield needs a bool")

	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "Klebsiella", "present", true)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "organism outside the catalog")

	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "E.coli", "checked", true)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "chemistry subfield on a micro report")
}

func TestChemistryResultsRequireChecked(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	report, err := svc.SubmitReport(ctx, clientActor, SubmitReportInput{
		FormType: domain.FormTypeChemistry,
		Client:   "Acme Cosmetics",
	})
	require.NoError(t, err)

	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "Zinc Oxide", "result", "12%")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "unchecked row rejects results")

	_, err = svc.EditNestedResult(ctx, clientActor, report.ID, "Zinc Oxide", "checked", true)
	require.NoError(t, err)

	updated, err := svc.EditNestedResult(ctx, employeeActor, report.ID, "Zinc Oxide", "result", "12%")
	require.NoError(t, err)
	for _, entry := range updated.Chemistry {
		if entry.Ingredient == "Zinc Oxide" {
			assert.Equal(t, "12%", entry.Result)
		}
	}
}

func TestUncheckingClearsChemistryResults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	report, err := svc.SubmitReport(ctx, clientActor, SubmitReportInput{
		FormType: domain.FormTypeChemistry,
		Client:   "Acme Cosmetics",
	})
	require.NoError(t, err)

	_, err = svc.EditNestedResult(ctx, clientActor, report.ID, "Avobenzone", "checked", true)
	require.NoError(t, err)
	_, err = svc.EditNestedResult(ctx, employeeActor, report.ID, "Avobenzone", "result", "2.9%")
	require.NoError(t, err)

	updated, err := svc.EditNestedResult(ctx, clientActor, report.ID, "Avobenzone", "checked", false)
	require.NoError(t, err)
	for _, entry := range updated.Chemistry {
		if entry.Ingredient == "Avobenzone" {
			assert.False(t, entry.Checked)
			assert.Empty(t, entry.Result)
		}
	}
}

func TestTransitionStatusHappyPath(t *testing.T) {
	svc, _, dispatcher := newTestService()
	ctx := context.Background()
	report := submitMicro(t, svc)

	steps := []struct {
		actor Actor
		to    domain.ReportStatus
	}{
		{administratorActor, domain.StatusVerified},
		{employeeActor, domain.StatusTesting},
		{employeeActor, domain.StatusReviewPending},
		{headActor, domain.StatusApproved},
		{clientActor, domain.StatusCompleted},
	}
	for _, step := range steps {
		updated, err := svc.TransitionStatus(ctx, step.actor, report.ID, step.to)
		require.NoError(t, err, "transition to %s", step.to)
		assert.Equal(t, step.to, updated.Status)
	}
	assert.Contains(t, dispatcher.types(), events.EventReportStatusChanged)
}

func TestTransitionStampsReviewer(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	report := submitMicro(t, svc)

	for _, step := range []struct {
		actor Actor
		to    domain.ReportStatus
	}{
		{administratorActor, domain.StatusVerified},
		{employeeActor, domain.StatusTesting},
		{employeeActor, domain.StatusReviewPending},
	} {
		_, err := svc.TransitionStatus(ctx, step.actor, report.ID, step.to)
		require.NoError(t, err)
	}

	updated, err := svc.TransitionStatus(ctx, headActor, report.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, headActor.UserID, updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)
}

func TestTransitionRejectsSkips(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	report := submitMicro(t, svc)

	for _, actor := range []Actor{clientActor, employeeActor, administratorActor, headActor, frontdeskActor} {
		_, err := svc.TransitionStatus(ctx, actor, report.ID, domain.StatusApproved)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition), "role %s", actor.Role)
	}
}

func TestTransitionRequiresStageOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	report := submitMicro(t, svc)

	// the edge exists but employee does not own the submitted stage
	_, err := svc.TransitionStatus(ctx, employeeActor, report.ID, domain.StatusVerified)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))
}
