// Package fitindex computes the 0-100 fit index between a job's requirements
// and a candidate's profile, with a per-factor breakdown and human-readable
// strength/concern explanations.
package fitindex

import (
	"fmt"
	"math"

	"github.com/hireflux/ats-service/internal/types"
)

// Canonical factor weights. They must sum to 1.0.
const (
	skillsWeight       = 0.30
	experienceWeight   = 0.20
	locationWeight     = 0.15
	cultureWeight      = 0.15
	salaryWeight       = 0.10
	availabilityWeight = 0.10
)

// Canonical sub-scorer constants.
const (
	requiredSkillShare     = 0.8
	preferredSkillShare    = 0.2
	underExperiencePenalty = 15
	overExperiencePenalty  = 5
	overExperienceFloor    = 60
	locationMismatchScore  = 50
	neutralScore           = 70
)

// weightTolerance bounds the floating-point drift allowed when checking that
// weights sum to 1.0.
const weightTolerance = 1e-9

// factorOrder is the canonical factor ordering, used for deterministic
// tie-breaks when explanations are sorted.
var factorOrder = []types.Factor{
	types.FactorSkillsMatch,
	types.FactorExperienceLevel,
	types.FactorLocationMatch,
	types.FactorCultureFit,
	types.FactorSalaryExpectation,
	types.FactorAvailability,
}

// Factors returns the canonical factor order.
func Factors() []types.Factor {
	out := make([]types.Factor, len(factorOrder))
	copy(out, factorOrder)
	return out
}

// CultureScorerFunc produces the culture factor's score and explanations.
// Deployments with a structured culture signal (e.g. a candidate questionnaire)
// plug one in via Policy.CultureScorer; without one the factor stays at the
// policy's neutral score.
type CultureScorerFunc func(job types.JobRequirements, candidate types.CandidateProfile) (score int, strengths, concerns []string)

// Policy holds the tunable constants of the fit computation. Curve shapes are
// policy, not hard-coded behavior; start from DefaultPolicy and adjust.
type Policy struct {
	Weights map[types.Factor]float64 `json:"weights"`

	// Shares of the skills score contributed by required vs preferred hits.
	RequiredSkillShare  float64 `json:"required_skill_share"`
	PreferredSkillShare float64 `json:"preferred_skill_share"`

	// Linear decay, in points per year outside the experience range.
	// Overqualification decays more gently and never drops below the floor.
	UnderExperiencePenalty int `json:"under_experience_penalty"`
	OverExperiencePenalty  int `json:"over_experience_penalty"`
	OverExperienceFloor    int `json:"over_experience_floor"`

	// Score when neither a remote match nor an exact city match applies.
	LocationMismatchScore int `json:"location_mismatch_score"`

	// NeutralScore anchors placeholder factors and explanation ordering.
	NeutralScore int `json:"neutral_score"`

	AvailabilityScores map[types.Availability]int `json:"availability_scores"`

	// CultureScorer replaces the neutral culture placeholder when set.
	CultureScorer CultureScorerFunc `json:"-"`
}

// DefaultPolicy returns the canonical scoring policy.
func DefaultPolicy() *Policy {
	return &Policy{
		Weights: map[types.Factor]float64{
			types.FactorSkillsMatch:       skillsWeight,
			types.FactorExperienceLevel:   experienceWeight,
			types.FactorLocationMatch:     locationWeight,
			types.FactorCultureFit:        cultureWeight,
			types.FactorSalaryExpectation: salaryWeight,
			types.FactorAvailability:      availabilityWeight,
		},
		RequiredSkillShare:     requiredSkillShare,
		PreferredSkillShare:    preferredSkillShare,
		UnderExperiencePenalty: underExperiencePenalty,
		OverExperiencePenalty:  overExperiencePenalty,
		OverExperienceFloor:    overExperienceFloor,
		LocationMismatchScore:  locationMismatchScore,
		NeutralScore:           neutralScore,
		AvailabilityScores: map[types.Availability]int{
			types.AvailabilityActivelyLooking: 100,
			types.AvailabilityOpenToOffers:    70,
			types.AvailabilityNotLooking:      20,
		},
	}
}

// Validate checks that the policy is internally consistent.
func (p *Policy) Validate() error {
	if len(p.Weights) != len(factorOrder) {
		return fmt.Errorf("policy must weight exactly %d factors, got %d", len(factorOrder), len(p.Weights))
	}
	sum := 0.0
	for _, f := range factorOrder {
		w, ok := p.Weights[f]
		if !ok {
			return fmt.Errorf("policy missing weight for factor %q", f)
		}
		if w <= 0 || w > 1 {
			return fmt.Errorf("weight for factor %q must be in (0, 1], got %v", f, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("factor weights must sum to 1.0, got %v", sum)
	}
	if p.RequiredSkillShare < 0 || p.PreferredSkillShare < 0 {
		return fmt.Errorf("skill shares must be non-negative")
	}
	if math.Abs(p.RequiredSkillShare+p.PreferredSkillShare-1.0) > weightTolerance {
		return fmt.Errorf("skill shares must sum to 1.0, got %v", p.RequiredSkillShare+p.PreferredSkillShare)
	}
	if p.UnderExperiencePenalty < 0 || p.OverExperiencePenalty < 0 {
		return fmt.Errorf("experience penalties must be non-negative")
	}
	if p.OverExperienceFloor < 0 || p.OverExperienceFloor > 100 {
		return fmt.Errorf("over-experience floor must be in [0, 100], got %d", p.OverExperienceFloor)
	}
	if p.LocationMismatchScore < 0 || p.LocationMismatchScore > 100 {
		return fmt.Errorf("location mismatch score must be in [0, 100], got %d", p.LocationMismatchScore)
	}
	if p.NeutralScore < 0 || p.NeutralScore > 100 {
		return fmt.Errorf("neutral score must be in [0, 100], got %d", p.NeutralScore)
	}
	if len(p.AvailabilityScores) == 0 {
		return fmt.Errorf("policy missing availability scores")
	}
	for status, score := range p.AvailabilityScores {
		if score < 0 || score > 100 {
			return fmt.Errorf("availability score for %q must be in [0, 100], got %d", status, score)
		}
	}
	return nil
}
