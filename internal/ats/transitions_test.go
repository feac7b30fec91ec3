package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hireflux/ats-service/internal/types"
)

func TestCanTransition_ForwardPipeline(t *testing.T) {
	steps := []struct {
		from types.ApplicationStatus
		to   types.ApplicationStatus
	}{
		{types.ApplicationSubmitted, types.ApplicationReviewing},
		{types.ApplicationReviewing, types.ApplicationShortlisted},
		{types.ApplicationShortlisted, types.ApplicationInterview},
		{types.ApplicationInterview, types.ApplicationOffer},
		{types.ApplicationOffer, types.ApplicationHired},
	}

	for _, step := range steps {
		t.Run(string(step.from)+" to "+string(step.to), func(t *testing.T) {
			assert.True(t, CanTransition(step.from, step.to))
		})
	}
}

func TestCanTransition_RejectAndWithdrawFromAnyActive(t *testing.T) {
	active := []types.ApplicationStatus{
		types.ApplicationSubmitted,
		types.ApplicationReviewing,
		types.ApplicationShortlisted,
		types.ApplicationInterview,
		types.ApplicationOffer,
	}

	for _, from := range active {
		t.Run(string(from), func(t *testing.T) {
			assert.True(t, CanTransition(from, types.ApplicationRejected))
			assert.True(t, CanTransition(from, types.ApplicationWithdrawn))
		})
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	terminal := []types.ApplicationStatus{
		types.ApplicationHired,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	}
	all := []types.ApplicationStatus{
		types.ApplicationSubmitted,
		types.ApplicationReviewing,
		types.ApplicationShortlisted,
		types.ApplicationInterview,
		types.ApplicationOffer,
		types.ApplicationHired,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	}

	for _, from := range terminal {
		for _, to := range all {
			assert.False(t, CanTransition(from, to),
				"%s should not transition to %s", from, to)
		}
	}
}

func TestCanTransition_NoSkippingOrBacktracking(t *testing.T) {
	tests := []struct {
		name string
		from types.ApplicationStatus
		to   types.ApplicationStatus
	}{
		{"skip to shortlisted", types.ApplicationSubmitted, types.ApplicationShortlisted},
		{"skip to hired", types.ApplicationSubmitted, types.ApplicationHired},
		{"skip to offer", types.ApplicationReviewing, types.ApplicationOffer},
		{"backtrack to submitted", types.ApplicationReviewing, types.ApplicationSubmitted},
		{"backtrack to reviewing", types.ApplicationInterview, types.ApplicationReviewing},
		{"self transition", types.ApplicationReviewing, types.ApplicationReviewing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(types.ApplicationStatus("archived"), types.ApplicationReviewing))
	assert.False(t, CanTransition(types.ApplicationSubmitted, types.ApplicationStatus("archived")))
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(types.ApplicationOffer)
	assert.ElementsMatch(t, []types.ApplicationStatus{
		types.ApplicationHired,
		types.ApplicationRejected,
		types.ApplicationWithdrawn,
	}, next)

	assert.Empty(t, NextStatuses(types.ApplicationHired))

	// Returned slice is a copy
	next[0] = types.ApplicationSubmitted
	assert.True(t, CanTransition(types.ApplicationOffer, types.ApplicationHired))
}
