package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireflux/ats-service/internal/fitindex"
	"github.com/hireflux/ats-service/internal/schemas"
	"github.com/hireflux/ats-service/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the fit index for one job/candidate pair",
	Long: `Compute the 0-100 fit index between a job requirements file and a
candidate profile file, and print the per-factor breakdown with strength and
concern explanations. Inputs are validated against the score_input schema
before scoring.`,
	RunE: runScore,
}

var (
	scoreJobFile       string
	scoreCandidateFile string
	scorePolicyFile    string
)

func init() {
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job requirements JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to candidate profile JSON file (required)")
	scoreCmd.Flags().StringVar(&scorePolicyFile, "policy", "", "Path to a custom fit policy JSON file (optional)")
	_ = scoreCmd.MarkFlagRequired("job")
	_ = scoreCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	return executeScore(scoreJobFile, scoreCandidateFile, scorePolicyFile, os.Stdout)
}

// executeScore reads and validates the input files, computes the fit, and
// renders the result to out.
func executeScore(jobPath, candidatePath, policyPath string, out io.Writer) error {
	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	candidateData, err := os.ReadFile(candidatePath)
	if err != nil {
		return fmt.Errorf("failed to read candidate file: %w", err)
	}

	document, err := buildScoreDocument(jobData, candidateData)
	if err != nil {
		return fmt.Errorf("inputs are not valid JSON: %w", err)
	}
	if schemaPath := schemas.ResolveSchemaPath(schemas.ScoreInputSchema); schemaPath != "" {
		if err := schemas.ValidateDocument(schemaPath, document); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("score input does not validate against schema: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "Warning: could not validate input against schema: %v\n", err)
		}
	}

	var job types.JobRequirements
	if err := json.Unmarshal(jobData, &job); err != nil {
		return fmt.Errorf("failed to parse job file: %w", err)
	}
	var candidate types.CandidateProfile
	if err := json.Unmarshal(candidateData, &candidate); err != nil {
		return fmt.Errorf("failed to parse candidate file: %w", err)
	}

	policy := fitindex.DefaultPolicy()
	if policyPath != "" {
		policy, err = loadValidatedPolicy(policyPath)
		if err != nil {
			return err
		}
	}

	result := fitindex.ComputeWithPolicy(policy, job, candidate)
	renderFitResult(out, result)
	return nil
}

// buildScoreDocument assembles the combined document the score_input schema
// describes. Marshalling fails if either side is not valid JSON.
func buildScoreDocument(jobData, candidateData []byte) ([]byte, error) {
	return json.Marshal(map[string]json.RawMessage{
		"job":       json.RawMessage(jobData),
		"candidate": json.RawMessage(candidateData),
	})
}

// renderFitResult prints the overall score, the factor table in canonical
// order, and the explanation lists.
func renderFitResult(out io.Writer, result types.FitScoreResult) {
	_, _ = fmt.Fprintf(out, "Fit Index: %d/100\n\n", result.Overall)

	_, _ = fmt.Fprintf(out, "%-20s %6s %8s\n", "Factor", "Score", "Weight")
	for _, factor := range fitindex.Factors() {
		fs := result.Breakdown[factor]
		_, _ = fmt.Fprintf(out, "%-20s %6d %7.0f%%\n", factorLabel(factor), fs.Score, fs.Weight*100)
	}

	if len(result.Strengths) > 0 {
		_, _ = fmt.Fprintln(out, "\nStrengths:")
		for _, s := range result.Strengths {
			_, _ = fmt.Fprintln(out, "  + "+s)
		}
	}
	if len(result.Concerns) > 0 {
		_, _ = fmt.Fprintln(out, "\nConcerns:")
		for _, c := range result.Concerns {
			_, _ = fmt.Fprintln(out, "  - "+c)
		}
	}
}

// factorLabel renders a factor identifier as a display name.
func factorLabel(f types.Factor) string {
	switch f {
	case types.FactorSkillsMatch:
		return "Skills match"
	case types.FactorExperienceLevel:
		return "Experience level"
	case types.FactorLocationMatch:
		return "Location match"
	case types.FactorCultureFit:
		return "Culture fit"
	case types.FactorSalaryExpectation:
		return "Salary expectation"
	case types.FactorAvailability:
		return "Availability"
	default:
		return string(f)
	}
}
