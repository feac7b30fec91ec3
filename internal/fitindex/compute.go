// Package fitindex computes the 0-100 fit index between a job's requirements
// and a candidate's profile, with a per-factor breakdown and human-readable
// strength/concern explanations.
package fitindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/hireflux/ats-service/internal/types"
)

// Explanation caps applied after deduplication.
const (
	maxStrengths = 5
	maxConcerns  = 5
)

// incompleteProfileConcern flags scores computed from sparse profiles.
const incompleteProfileConcern = "Profile incomplete — score may be unreliable"

// genericStrength keeps strengths non-empty for high overall scores when no
// single factor stood out.
const genericStrength = "Overall profile aligns well with the role"

// Compute scores a candidate against a job using the canonical policy.
// It is pure and deterministic: identical inputs produce identical results,
// including explanation ordering.
func Compute(job types.JobRequirements, candidate types.CandidateProfile) types.FitScoreResult {
	return ComputeWithPolicy(DefaultPolicy(), job, candidate)
}

// ComputeWithPolicy scores a candidate against a job under the given policy.
// The function is total: malformed inputs (negative years, inverted ranges)
// are clamped to the nearest valid value and reported as concerns instead of
// errors. Callers validate policies at load time; a nil or invalid policy
// falls back to the canonical one.
func ComputeWithPolicy(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) types.FitScoreResult {
	if policy == nil || policy.Validate() != nil {
		policy = DefaultPolicy()
	}

	job, candidate, clamps := sanitizeInputs(job, candidate)

	results := []factorResult{
		computeSkillsScore(policy, job, candidate),
		computeExperienceScore(policy, job, candidate),
		computeLocationScore(policy, job, candidate),
		computeCultureScore(policy, job, candidate),
		computeSalaryScore(policy, job, candidate),
		computeAvailabilityScore(policy, candidate),
	}
	for i := range results {
		if extra := clamps[results[i].factor]; len(extra) > 0 {
			results[i].concerns = append(extra, results[i].concerns...)
		}
	}

	breakdown := make(map[types.Factor]types.FactorScore, len(results))
	weighted := 0.0
	for _, r := range results {
		w := policy.Weights[r.factor]
		breakdown[r.factor] = types.FactorScore{Score: r.score, Weight: w}
		weighted += float64(r.score) * w
	}
	overall := clampScore(int(math.Round(weighted)))

	strengths, concerns := buildNarrative(policy, results, overall, candidate)

	return types.FitScoreResult{
		Overall:   overall,
		Breakdown: breakdown,
		Strengths: strengths,
		Concerns:  concerns,
	}
}

// sanitizeInputs clamps malformed values to their nearest valid boundary and
// reports each clamp as a concern keyed by the factor it affects. Inputs are
// copied; callers' values are never mutated.
func sanitizeInputs(job types.JobRequirements, candidate types.CandidateProfile) (types.JobRequirements, types.CandidateProfile, map[types.Factor][]string) {
	clamps := make(map[types.Factor][]string)

	if candidate.YearsExperience < 0 {
		clamps[types.FactorExperienceLevel] = append(clamps[types.FactorExperienceLevel],
			fmt.Sprintf("Negative experience (%d years) treated as 0", candidate.YearsExperience))
		candidate.YearsExperience = 0
	}
	if job.ExperienceMinYears != nil && job.ExperienceMaxYears != nil && *job.ExperienceMinYears > *job.ExperienceMaxYears {
		lo, hi := *job.ExperienceMaxYears, *job.ExperienceMinYears
		job.ExperienceMinYears, job.ExperienceMaxYears = &lo, &hi
		clamps[types.FactorExperienceLevel] = append(clamps[types.FactorExperienceLevel],
			fmt.Sprintf("Job experience range inverted; treating as %d to %d years", lo, hi))
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		lo, hi := *job.SalaryMax, *job.SalaryMin
		job.SalaryMin, job.SalaryMax = &lo, &hi
		clamps[types.FactorSalaryExpectation] = append(clamps[types.FactorSalaryExpectation],
			fmt.Sprintf("Job salary range inverted; treating as $%d to $%d", lo, hi))
	}
	if candidate.ExpectedSalaryMin != nil && candidate.ExpectedSalaryMax != nil && *candidate.ExpectedSalaryMin > *candidate.ExpectedSalaryMax {
		lo, hi := *candidate.ExpectedSalaryMax, *candidate.ExpectedSalaryMin
		candidate.ExpectedSalaryMin, candidate.ExpectedSalaryMax = &lo, &hi
		clamps[types.FactorSalaryExpectation] = append(clamps[types.FactorSalaryExpectation],
			fmt.Sprintf("Expected salary range inverted; treating as $%d to $%d", lo, hi))
	}

	return job, candidate, clamps
}

// buildNarrative flattens per-factor explanations into the strengths and
// concerns lists: deduplicated, ordered by each factor's deviation from the
// neutral score (most extreme first, canonical factor order as tie-break),
// and capped. The incomplete-profile warning is prepended after ordering so
// it always survives the cap.
func buildNarrative(policy *Policy, results []factorResult, overall int, candidate types.CandidateProfile) ([]string, []string) {
	ordered := make([]factorResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return deviation(policy, ordered[i].score) > deviation(policy, ordered[j].score)
	})

	strengths := make([]string, 0, maxStrengths)
	concerns := make([]string, 0, maxConcerns)
	seenStrength := make(map[string]bool)
	seenConcern := make(map[string]bool)
	for _, r := range ordered {
		for _, s := range r.strengths {
			if !seenStrength[s] {
				seenStrength[s] = true
				strengths = append(strengths, s)
			}
		}
		for _, c := range r.concerns {
			if !seenConcern[c] {
				seenConcern[c] = true
				concerns = append(concerns, c)
			}
		}
	}

	if overall >= 70 && len(strengths) == 0 {
		strengths = append(strengths, genericStrength)
	}
	if !candidate.IsComplete() {
		concerns = append([]string{incompleteProfileConcern}, concerns...)
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	if len(concerns) > maxConcerns {
		concerns = concerns[:maxConcerns]
	}
	return strengths, concerns
}

// deviation measures how far a factor score sits from the neutral score.
func deviation(policy *Policy, score int) int {
	d := score - policy.NeutralScore
	if d < 0 {
		return -d
	}
	return d
}
