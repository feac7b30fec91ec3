// Package types provides type definitions for structured data used throughout the ats-service system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// LocationType represents how a role or candidate relates to a physical workplace.
type LocationType string

// Location type values accepted on jobs and candidate profiles.
const (
	LocationOnsite LocationType = "onsite"
	LocationHybrid LocationType = "hybrid"
	LocationRemote LocationType = "remote"
)

// Availability represents a candidate's current job-seeking status.
type Availability string

// Availability values accepted on candidate profiles.
const (
	AvailabilityActivelyLooking Availability = "actively_looking"
	AvailabilityOpenToOffers    Availability = "open_to_offers"
	AvailabilityNotLooking      Availability = "not_looking"
)

// Factor identifies one scored dimension of the fit index.
type Factor string

// Fit index factors. The string values are the breakdown keys on the wire.
const (
	FactorSkillsMatch       Factor = "skillsMatch"
	FactorExperienceLevel   Factor = "experienceLevel"
	FactorLocationMatch     Factor = "locationMatch"
	FactorCultureFit        Factor = "cultureFit"
	FactorSalaryExpectation Factor = "salaryExpectation"
	FactorAvailability      Factor = "availability"
)

// JobRequirements represents the scoring-relevant requirements of a job posting.
type JobRequirements struct {
	RequiredSkills     []string     `json:"required_skills"`
	PreferredSkills    []string     `json:"preferred_skills,omitempty"`
	ExperienceMinYears *int         `json:"experience_min_years,omitempty"`
	ExperienceMaxYears *int         `json:"experience_max_years,omitempty"`
	Location           string       `json:"location,omitempty"`
	LocationType       LocationType `json:"location_type,omitempty"`
	SalaryMin          *int         `json:"salary_min,omitempty"`
	SalaryMax          *int         `json:"salary_max,omitempty"`
}

// CandidateProfile represents the scoring-relevant attributes of a candidate.
type CandidateProfile struct {
	Skills                []string     `json:"skills"`
	YearsExperience       int          `json:"years_experience"`
	Location              string       `json:"location,omitempty"`
	PreferredLocationType LocationType `json:"preferred_location_type,omitempty"`
	ExpectedSalaryMin     *int         `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax     *int         `json:"expected_salary_max,omitempty"`
	AvailabilityStatus    Availability `json:"availability_status,omitempty"`
}

// IsComplete reports whether the profile carries enough data for a reliable score:
// at least one skill, a positive experience figure, and a location.
func (p *CandidateProfile) IsComplete() bool {
	return len(p.Skills) > 0 && p.YearsExperience > 0 && p.Location != ""
}

// FactorScore holds one factor's score and the weight it contributes to the overall.
type FactorScore struct {
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

// FitScoreResult represents a computed fit index with its per-factor breakdown
// and human-readable explanations.
type FitScoreResult struct {
	Overall   int                    `json:"overall"`
	Breakdown map[Factor]FactorScore `json:"breakdown"`
	Strengths []string               `json:"strengths"`
	Concerns  []string               `json:"concerns"`
}

// Explanations returns strengths followed by concerns as a single flat list,
// preserving the order each carries.
func (r *FitScoreResult) Explanations() []string {
	out := make([]string, 0, len(r.Strengths)+len(r.Concerns))
	out = append(out, r.Strengths...)
	out = append(out, r.Concerns...)
	return out
}
