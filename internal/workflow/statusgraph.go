package workflow

import "github.com/balayogigmcs/labms/internal/domain"

// visibility maps each role to the statuses it may see and filter on. Roles
// without an entry (admin) have an empty visibility set.
var visibility = map[domain.Role][]domain.ReportStatus{
	domain.RoleFrontdesk: {
		domain.StatusSubmitted,
		domain.StatusSubmissionRejected,
	},
	domain.RoleEmployee: {
		domain.StatusVerified,
		domain.StatusTesting,
		domain.StatusTestFailed,
		domain.StatusReviewPending,
		domain.StatusRejected,
	},
	domain.RoleAdministrator: domain.AllStatuses,
	domain.RoleHead: {
		domain.StatusReviewPending,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusModificationRequired,
		domain.StatusApprovalRevoked,
	},
	domain.RoleClient: {
		domain.StatusSubmitted,
		domain.StatusApproved,
		domain.StatusCompleted,
		domain.StatusResultsDisputed,
	},
}

// transitions is the explicit from->to adjacency. Failure branches loop back
// to earlier stages rather than advancing, so the graph must stay a table and
// never be inferred from status ordering.
var transitions = map[domain.ReportStatus][]domain.ReportStatus{
	domain.StatusSubmitted:            {domain.StatusSubmissionRejected, domain.StatusVerified},
	domain.StatusSubmissionRejected:   {domain.StatusSubmitted},
	domain.StatusVerified:             {domain.StatusTesting, domain.StatusVerificationFailed},
	domain.StatusVerificationFailed:   {domain.StatusSubmitted},
	domain.StatusTesting:              {domain.StatusTestFailed, domain.StatusReviewPending},
	domain.StatusTestFailed:           {domain.StatusTesting},
	domain.StatusReviewPending:        {domain.StatusApproved, domain.StatusRejected, domain.StatusModificationRequired},
	domain.StatusRejected:             {domain.StatusTesting},
	domain.StatusApproved:             {domain.StatusCompleted, domain.StatusApprovalRevoked},
	domain.StatusModificationRequired: {domain.StatusTesting},
	domain.StatusApprovalRevoked:      {},
	domain.StatusCompleted:            {domain.StatusResultsDisputed},
	domain.StatusResultsDisputed:      {domain.StatusTesting},
}

// stageOwners maps each status to the roles allowed to act while the report
// sits in it. Administrator sees every status and owns every stage.
var stageOwners = map[domain.ReportStatus][]domain.Role{
	domain.StatusSubmitted:            {domain.RoleFrontdesk, domain.RoleClient, domain.RoleAdministrator},
	domain.StatusSubmissionRejected:   {domain.RoleFrontdesk, domain.RoleAdministrator},
	domain.StatusVerified:             {domain.RoleEmployee, domain.RoleAdministrator},
	domain.StatusVerificationFailed:   {domain.RoleAdministrator},
	domain.StatusTesting:              {domain.RoleEmployee, domain.RoleAdministrator},
	domain.StatusTestFailed:           {domain.RoleEmployee, domain.RoleAdministrator},
	domain.StatusReviewPending:        {domain.RoleHead, domain.RoleAdministrator},
	domain.StatusRejected:             {domain.RoleEmployee, domain.RoleHead, domain.RoleAdministrator},
	domain.StatusApproved:             {domain.RoleHead, domain.RoleAdministrator},
	domain.StatusModificationRequired: {domain.RoleHead, domain.RoleAdministrator},
	domain.StatusApprovalRevoked:      {domain.RoleHead, domain.RoleAdministrator},
	domain.StatusCompleted:            {domain.RoleClient, domain.RoleAdministrator},
	domain.StatusResultsDisputed:      {domain.RoleClient, domain.RoleAdministrator},
}

// reviewTargets are transitions that stamp ReviewedBy/ReviewedAt.
var reviewTargets = map[domain.ReportStatus]struct{}{
	domain.StatusApproved:             {},
	domain.StatusRejected:             {},
	domain.StatusModificationRequired: {},
	domain.StatusApprovalRevoked:      {},
}

// VisibleStatuses returns the statuses the role may see. The slice is a copy.
func VisibleStatuses(role domain.Role) []domain.ReportStatus {
	src := visibility[role]
	out := make([]domain.ReportStatus, len(src))
	copy(out, src)
	return out
}

// CanSee reports whether the role may observe reports in the status.
func CanSee(role domain.Role, status domain.ReportStatus) bool {
	for _, s := range visibility[role] {
		if s == status {
			return true
		}
	}
	return false
}

// OwnsStage reports whether the role may act on a report currently in status.
func OwnsStage(role domain.Role, status domain.ReportStatus) bool {
	for _, r := range stageOwners[status] {
		if r == role {
			return true
		}
	}
	return false
}

// HasEdge reports whether the adjacency table contains from->to.
func HasEdge(from, to domain.ReportStatus) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// CanTransition reports whether role may move a report from->to: the edge must
// exist, the role must own the current stage, and the role must be able to see
// the target status (a role cannot drive a report somewhere it cannot observe).
func CanTransition(from, to domain.ReportStatus, role domain.Role) bool {
	return HasEdge(from, to) && OwnsStage(role, from) && CanSee(role, to)
}

// IsReviewTransition reports whether moving to the status is a review action.
func IsReviewTransition(to domain.ReportStatus) bool {
	_, ok := reviewTargets[to]
	return ok
}
