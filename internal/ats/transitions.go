package ats

import (
	"github.com/hireflux/ats-service/internal/types"
)

// allowedTransitions maps each pipeline status to the statuses it may move
// to. Rejection and withdrawal are reachable from every non-terminal status;
// terminal statuses have no outgoing transitions.
var allowedTransitions = map[types.ApplicationStatus][]types.ApplicationStatus{
	types.ApplicationSubmitted: {
		types.ApplicationReviewing,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	},
	types.ApplicationReviewing: {
		types.ApplicationShortlisted,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	},
	types.ApplicationShortlisted: {
		types.ApplicationInterview,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	},
	types.ApplicationInterview: {
		types.ApplicationOffer,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	},
	types.ApplicationOffer: {
		types.ApplicationHired,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	},
	types.ApplicationHired:     {},
	types.ApplicationRejected:  {},
	types.ApplicationWithdrawn: {},
}

// CanTransition reports whether the pipeline allows moving an application
// from one status to another.
func CanTransition(from, to types.ApplicationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses an application in the given status may
// move to.
func NextStatuses(from types.ApplicationStatus) []types.ApplicationStatus {
	next := allowedTransitions[from]
	out := make([]types.ApplicationStatus, len(next))
	copy(out, next)
	return out
}
