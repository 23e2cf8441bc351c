package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balayogigmcs/labms/internal/domain"
)

func TestFrontdeskVisibility(t *testing.T) {
	visible := VisibleStatuses(domain.RoleFrontdesk)
	assert.ElementsMatch(t, []domain.ReportStatus{
		domain.StatusSubmitted,
		domain.StatusSubmissionRejected,
	}, visible)
}

func TestAdministratorSeesEverything(t *testing.T) {
	for _, status := range domain.AllStatuses {
		assert.True(t, CanSee(domain.RoleAdministrator, status), "administrator must see %s", status)
	}
}

func TestAdminSeesNothing(t *testing.T) {
	for _, status := range domain.AllStatuses {
		assert.False(t, CanSee(domain.RoleAdmin, status), "admin manages accounts only, not %s", status)
	}
}

func TestClientVisibility(t *testing.T) {
	assert.True(t, CanSee(domain.RoleClient, domain.StatusSubmitted))
	assert.True(t, CanSee(domain.RoleClient, domain.StatusApproved))
	assert.True(t, CanSee(domain.RoleClient, domain.StatusCompleted))
	assert.True(t, CanSee(domain.RoleClient, domain.StatusResultsDisputed))
	assert.False(t, CanSee(domain.RoleClient, domain.StatusTesting))
	assert.False(t, CanSee(domain.RoleClient, domain.StatusRejected))
}

func TestNoDirectSubmittedToApproved(t *testing.T) {
	for role := range map[domain.Role]struct{}{
		domain.RoleAdmin:         {},
		domain.RoleAdministrator: {},
		domain.RoleClient:        {},
		domain.RoleEmployee:      {},
		domain.RoleFrontdesk:     {},
		domain.RoleHead:          {},
	} {
		assert.False(t, CanTransition(domain.StatusSubmitted, domain.StatusApproved, role),
			"role %s must not skip the workflow", role)
	}
}

func TestFailureBranchesLoopBack(t *testing.T) {
	assert.True(t, HasEdge(domain.StatusSubmissionRejected, domain.StatusSubmitted))
	assert.True(t, HasEdge(domain.StatusVerificationFailed, domain.StatusSubmitted))
	assert.True(t, HasEdge(domain.StatusTestFailed, domain.StatusTesting))
	assert.True(t, HasEdge(domain.StatusRejected, domain.StatusTesting))
	assert.True(t, HasEdge(domain.StatusModificationRequired, domain.StatusTesting))
	assert.True(t, HasEdge(domain.StatusResultsDisputed, domain.StatusTesting))
}

func TestApprovalRevokedIsTerminal(t *testing.T) {
	for _, status := range domain.AllStatuses {
		assert.False(t, HasEdge(domain.StatusApprovalRevoked, status))
	}
}

func TestEveryTargetIsAKnownStatus(t *testing.T) {
	known := make(map[domain.ReportStatus]struct{}, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		known[status] = struct{}{}
	}
	for from, targets := range transitions {
		_, ok := known[from]
		assert.True(t, ok, "unknown source status %s", from)
		for _, to := range targets {
			_, ok := known[to]
			assert.True(t, ok, "unknown target status %s", to)
		}
	}
}

func TestEveryEdgeHasAnOperator(t *testing.T) {
	// Each edge must be drivable by at least one role that owns the source
	// stage and can see the target, otherwise the graph has a dead branch.
	roles := []domain.Role{
		domain.RoleAdministrator,
		domain.RoleClient,
		domain.RoleEmployee,
		domain.RoleFrontdesk,
		domain.RoleHead,
	}
	for from, targets := range transitions {
		for _, to := range targets {
			operated := false
			for _, role := range roles {
				if CanTransition(from, to, role) {
					operated = true
					break
				}
			}
			assert.True(t, operated, "edge %s -> %s has no operator", from, to)
		}
	}
}

func TestHeadDrivesReviewOutcomes(t *testing.T) {
	assert.True(t, CanTransition(domain.StatusReviewPending, domain.StatusApproved, domain.RoleHead))
	assert.True(t, CanTransition(domain.StatusReviewPending, domain.StatusRejected, domain.RoleHead))
	assert.True(t, CanTransition(domain.StatusReviewPending, domain.StatusModificationRequired, domain.RoleHead))
	assert.True(t, CanTransition(domain.StatusApproved, domain.StatusApprovalRevoked, domain.RoleHead))

	assert.False(t, CanTransition(domain.StatusReviewPending, domain.StatusApproved, domain.RoleEmployee))
	assert.False(t, CanTransition(domain.StatusReviewPending, domain.StatusApproved, domain.RoleClient))
}

func TestClientDrivesCompletionAndDispute(t *testing.T) {
	assert.True(t, CanTransition(domain.StatusApproved, domain.StatusCompleted, domain.RoleClient))
	assert.True(t, CanTransition(domain.StatusCompleted, domain.StatusResultsDisputed, domain.RoleClient))
	assert.False(t, CanTransition(domain.StatusApproved, domain.StatusCompleted, domain.RoleFrontdesk))
}

func TestFrontdeskRejectsSubmissions(t *testing.T) {
	assert.True(t, CanTransition(domain.StatusSubmitted, domain.StatusSubmissionRejected, domain.RoleFrontdesk))
	// frontdesk cannot see verified, so advancing past intake is not theirs
	assert.False(t, CanTransition(domain.StatusSubmitted, domain.StatusVerified, domain.RoleFrontdesk))
	assert.True(t, CanTransition(domain.StatusSubmitted, domain.StatusVerified, domain.RoleAdministrator))
}

func TestVisibilityGatesTransitions(t *testing.T) {
	// employee owns testing but cannot see statuses outside the lab lane
	assert.True(t, CanTransition(domain.StatusTesting, domain.StatusReviewPending, domain.RoleEmployee))
	assert.False(t, CanTransition(domain.StatusReviewPending, domain.StatusApproved, domain.RoleFrontdesk))
}

func TestReviewTransitions(t *testing.T) {
	assert.True(t, IsReviewTransition(domain.StatusApproved))
	assert.True(t, IsReviewTransition(domain.StatusRejected))
	assert.True(t, IsReviewTransition(domain.StatusModificationRequired))
	assert.True(t, IsReviewTransition(domain.StatusApprovalRevoked))
	assert.False(t, IsReviewTransition(domain.StatusTesting))
	assert.False(t, IsReviewTransition(domain.StatusCompleted))
}

func TestVisibleStatusesReturnsCopy(t *testing.T) {
	first := VisibleStatuses(domain.RoleFrontdesk)
	first[0] = domain.StatusApproved
	second := VisibleStatuses(domain.RoleFrontdesk)
	assert.Equal(t, domain.StatusSubmitted, second[0])
}
