package fitindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflux/ats-service/internal/types"
)

func TestDefaultPolicy_IsValid(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
}

func TestDefaultPolicy_WeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range DefaultPolicy().Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPolicyValidate_MissingFactor(t *testing.T) {
	policy := DefaultPolicy()
	delete(policy.Weights, types.FactorCultureFit)

	err := policy.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "6 factors")
}

func TestPolicyValidate_WeightsMustSumToOne(t *testing.T) {
	policy := DefaultPolicy()
	policy.Weights[types.FactorSkillsMatch] = 0.40

	err := policy.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestPolicyValidate_WeightOutOfRange(t *testing.T) {
	policy := DefaultPolicy()
	policy.Weights[types.FactorSkillsMatch] = 0
	policy.Weights[types.FactorExperienceLevel] = 0.50

	assert.Error(t, policy.Validate())
}

func TestPolicyValidate_SkillShares(t *testing.T) {
	policy := DefaultPolicy()
	policy.RequiredSkillShare = 0.9

	err := policy.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill shares")
}

func TestPolicyValidate_NegativePenalty(t *testing.T) {
	policy := DefaultPolicy()
	policy.UnderExperiencePenalty = -1

	assert.Error(t, policy.Validate())
}

func TestPolicyValidate_AvailabilityScoreRange(t *testing.T) {
	policy := DefaultPolicy()
	policy.AvailabilityScores[types.AvailabilityNotLooking] = 120

	err := policy.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability score")
}

func TestFactors_CanonicalOrder(t *testing.T) {
	factors := Factors()

	require.Len(t, factors, 6)
	assert.Equal(t, types.FactorSkillsMatch, factors[0])
	assert.Equal(t, types.FactorExperienceLevel, factors[1])
	assert.Equal(t, types.FactorLocationMatch, factors[2])
	assert.Equal(t, types.FactorCultureFit, factors[3])
	assert.Equal(t, types.FactorSalaryExpectation, factors[4])
	assert.Equal(t, types.FactorAvailability, factors[5])

	// Callers get a copy; mutating it must not corrupt the canonical order.
	factors[0] = types.FactorAvailability
	assert.Equal(t, types.FactorSkillsMatch, Factors()[0])
}
