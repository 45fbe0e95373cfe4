package iam

// ============================================================================
// Portal scopes
// ============================================================================

const (
	ScopeAll = "*"

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsReview = "applications:review"

	// Candidate scopes
	ScopeCandidatesAll  = "candidates:*"
	ScopeCandidatesRead = "candidates:read"

	// Interview scopes
	ScopeInterviewsAll      = "interviews:*"
	ScopeInterviewsRead     = "interviews:read"
	ScopeInterviewsSchedule = "interviews:schedule"
	ScopeInterviewsConduct  = "interviews:conduct"
)

// ScopeGroups son las plantillas de permisos por rol del portal
var ScopeGroups = map[string][]string{
	"hr": {
		ScopeApplicationsAll,
		ScopeCandidatesAll,
		ScopeInterviewsAll,
	},
	"committee": {
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeCandidatesRead,
		ScopeInterviewsRead,
		ScopeInterviewsConduct,
	},
	"director": {
		ScopeApplicationsRead,
		ScopeCandidatesRead,
		ScopeInterviewsRead,
	},
}
