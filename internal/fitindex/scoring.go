// Package fitindex computes the 0-100 fit index between a job's requirements
// and a candidate's profile, with a per-factor breakdown and human-readable
// strength/concern explanations.
package fitindex

import (
	"fmt"
	"math"
	"strings"

	"github.com/hireflux/ats-service/internal/types"
)

// factorResult carries one factor's score and the explanation strings it produced.
type factorResult struct {
	factor    types.Factor
	score     int
	strengths []string
	concerns  []string
}

// skillToken pairs a normalized comparison token with its original display form.
type skillToken struct {
	token   string
	display string
}

// normalizeSkillList lower-cases and trims skills, dropping empties and
// duplicates while preserving order and the first-seen display form.
func normalizeSkillList(skills []string) []skillToken {
	seen := make(map[string]bool, len(skills))
	out := make([]skillToken, 0, len(skills))
	for _, s := range skills {
		display := strings.TrimSpace(s)
		token := strings.ToLower(display)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, skillToken{token: token, display: display})
	}
	return out
}

// normalizeSkillSet lower-cases and trims skills into a lookup set.
func normalizeSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token != "" {
			set[token] = true
		}
	}
	return set
}

// sampleSkills names up to limit skills, folding the remainder into a count.
func sampleSkills(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, and %d more", strings.Join(names[:limit], ", "), len(names)-limit)
}

// computeSkillsScore blends the required and preferred skill hit ratios.
// An empty required set counts as fully hit; an empty preferred set contributes nothing.
func computeSkillsScore(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorSkillsMatch}

	candidateSet := normalizeSkillSet(candidate.Skills)
	required := normalizeSkillList(job.RequiredSkills)
	preferred := normalizeSkillList(job.PreferredSkills)

	requiredHit := 1.0
	matchedRequired := make([]string, 0, len(required))
	missingRequired := make([]string, 0, len(required))
	if len(required) > 0 {
		for _, s := range required {
			if candidateSet[s.token] {
				matchedRequired = append(matchedRequired, s.display)
			} else {
				missingRequired = append(missingRequired, s.display)
			}
		}
		requiredHit = float64(len(matchedRequired)) / float64(len(required))
	}

	preferredHit := 0.0
	matchedPreferred := make([]string, 0, len(preferred))
	if len(preferred) > 0 {
		for _, s := range preferred {
			if candidateSet[s.token] {
				matchedPreferred = append(matchedPreferred, s.display)
			}
		}
		preferredHit = float64(len(matchedPreferred)) / float64(len(preferred))
	}

	res.score = roundScore(100 * (policy.RequiredSkillShare*requiredHit + policy.PreferredSkillShare*preferredHit))

	if len(matchedRequired) > 0 {
		res.strengths = append(res.strengths, fmt.Sprintf("Matches %d of %d required skills: %s",
			len(matchedRequired), len(required), sampleSkills(matchedRequired, 3)))
	}
	if len(matchedPreferred) > 0 {
		res.strengths = append(res.strengths, "Also matches preferred skills: "+sampleSkills(matchedPreferred, 3))
	}
	for _, s := range missingRequired {
		res.concerns = append(res.concerns, "Missing required skill: "+s)
	}
	return res
}

// computeExperienceScore scores years of experience against the job's range.
// An absent bound is unbounded in that direction. Underqualification decays at
// the policy's under-penalty per missing year; overqualification decays more
// gently and never drops below the policy floor.
func computeExperienceScore(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorExperienceLevel}
	years := candidate.YearsExperience

	switch {
	case job.ExperienceMinYears != nil && years < *job.ExperienceMinYears:
		shortfall := *job.ExperienceMinYears - years
		score := 100 - policy.UnderExperiencePenalty*shortfall
		if score < 0 {
			score = 0
		}
		res.score = score
		if res.score < policy.NeutralScore {
			res.concerns = append(res.concerns, fmt.Sprintf("Candidate is %d years below the %d-year experience minimum",
				shortfall, *job.ExperienceMinYears))
		}
	case job.ExperienceMaxYears != nil && years > *job.ExperienceMaxYears:
		overage := years - *job.ExperienceMaxYears
		score := 100 - policy.OverExperiencePenalty*overage
		if score < policy.OverExperienceFloor {
			score = policy.OverExperienceFloor
		}
		res.score = score
		if res.score < policy.NeutralScore {
			res.concerns = append(res.concerns, fmt.Sprintf("Candidate exceeds the %d-year experience maximum by %d years",
				*job.ExperienceMaxYears, overage))
		}
	default:
		res.score = 100
		if job.ExperienceMinYears != nil || job.ExperienceMaxYears != nil {
			res.strengths = append(res.strengths, fmt.Sprintf("%d years of experience fits the %s",
				years, describeExperienceRange(job)))
		}
	}
	return res
}

// describeExperienceRange renders the job's experience range for explanations.
func describeExperienceRange(job types.JobRequirements) string {
	switch {
	case job.ExperienceMinYears != nil && job.ExperienceMaxYears != nil:
		return fmt.Sprintf("%d-%d year requirement", *job.ExperienceMinYears, *job.ExperienceMaxYears)
	case job.ExperienceMinYears != nil:
		return fmt.Sprintf("%d+ year requirement", *job.ExperienceMinYears)
	default:
		return fmt.Sprintf("requirement of at most %d years", *job.ExperienceMaxYears)
	}
}

// computeLocationScore scores workplace compatibility. A remote role with a
// remote-preferring candidate matches regardless of geography; otherwise only
// an exact case-insensitive city match counts. No geocoding is attempted, so
// anything else scores the policy's mismatch value.
func computeLocationScore(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorLocationMatch}

	if job.LocationType == types.LocationRemote && candidate.PreferredLocationType == types.LocationRemote {
		res.score = 100
		res.strengths = append(res.strengths, "Remote role matches candidate's remote preference")
		return res
	}

	jobLoc := strings.TrimSpace(job.Location)
	candLoc := strings.TrimSpace(candidate.Location)
	if jobLoc != "" && strings.EqualFold(jobLoc, candLoc) {
		res.score = 100
		res.strengths = append(res.strengths, "Candidate is local to "+jobLoc)
		return res
	}

	res.score = policy.LocationMismatchScore
	res.concerns = append(res.concerns, fmt.Sprintf("Location mismatch: candidate in %s, job in %s",
		displayLocation(candLoc), displayLocation(jobLoc)))
	return res
}

// displayLocation substitutes a readable placeholder for an empty location.
func displayLocation(loc string) string {
	if loc == "" {
		return "unspecified"
	}
	return loc
}

// computeCultureScore is a placeholder dimension pending a structured culture
// signal. Policy.CultureScorer overrides it when a deployment has one.
func computeCultureScore(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorCultureFit}
	if policy.CultureScorer != nil {
		score, strengths, concerns := policy.CultureScorer(job, candidate)
		res.score = clampScore(score)
		res.strengths = strengths
		res.concerns = concerns
		return res
	}
	res.score = policy.NeutralScore
	return res
}

// computeSalaryScore scores the overlap between the candidate's expected range
// and the job's offered range. An absent bound is unbounded in its direction,
// so a side with no figures at all overlaps everything.
func computeSalaryScore(policy *Policy, job types.JobRequirements, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorSalaryExpectation}

	jobMin, jobMax := job.SalaryMin, job.SalaryMax
	candMin, candMax := candidate.ExpectedSalaryMin, candidate.ExpectedSalaryMax

	overlap := (candMin == nil || jobMax == nil || *candMin <= *jobMax) &&
		(jobMin == nil || candMax == nil || *jobMin <= *candMax)
	if overlap {
		res.score = 100
		if (candMin != nil || candMax != nil) && (jobMin != nil || jobMax != nil) {
			res.strengths = append(res.strengths, "Salary expectations align with the offered range")
		}
		return res
	}

	// Non-overlap guarantees both edges on the failing side are present.
	var gap, denom int
	var concern string
	if candMin != nil && jobMax != nil && *candMin > *jobMax {
		gap = *candMin - *jobMax
		denom = *jobMax
		concern = fmt.Sprintf("Candidate expects at least $%d, job offers up to $%d", *candMin, *jobMax)
	} else {
		gap = *jobMin - *candMax
		denom = firstPresent(jobMax, candMin, jobMin)
		concern = fmt.Sprintf("Candidate expects at most $%d, job pays at least $%d", *candMax, *jobMin)
	}

	res.score = 0
	if denom > 0 {
		res.score = roundScore(100 - (float64(gap)/float64(denom))*100)
	}
	if res.score < 60 {
		res.concerns = append(res.concerns, concern)
	}
	return res
}

// firstPresent returns the first non-nil value, or 0 when all are nil.
func firstPresent(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// computeAvailabilityScore maps the candidate's availability status to a score.
// Unknown or missing statuses score neutral rather than failing.
func computeAvailabilityScore(policy *Policy, candidate types.CandidateProfile) factorResult {
	res := factorResult{factor: types.FactorAvailability}
	score, known := policy.AvailabilityScores[candidate.AvailabilityStatus]
	if !known {
		res.score = policy.NeutralScore
		res.concerns = append(res.concerns, "Availability status unknown")
		return res
	}
	res.score = score
	switch candidate.AvailabilityStatus {
	case types.AvailabilityActivelyLooking:
		res.strengths = append(res.strengths, "Candidate is actively looking")
	case types.AvailabilityNotLooking:
		res.concerns = append(res.concerns, "Candidate marked not actively looking")
	}
	return res
}

// roundScore rounds to the nearest integer and clamps into [0, 100].
func roundScore(x float64) int {
	return clampScore(int(math.Round(x)))
}

// clampScore bounds a score to [0, 100].
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
