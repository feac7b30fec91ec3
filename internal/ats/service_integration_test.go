//go:build integration

package ats

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/logging"
	"github.com/hireflux/ats-service/internal/types"
)

func getTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.ApplySchema(ctx), "Failed to apply schema")

	return New(database, logging.NewNop()), database
}

func newEmail() string {
	return uuid.New().String() + "@ats-test.example.com"
}

func seedEmployerWithJob(t *testing.T, database *db.DB, input *db.JobCreateInput) *db.Job {
	t.Helper()
	ctx := context.Background()
	employer, err := database.CreateUser(ctx, newEmail(), "hash", types.RoleEmployer)
	require.NoError(t, err)
	job, err := database.CreateJob(ctx, employer.ID, input)
	require.NoError(t, err)
	return job
}

func seedCandidate(t *testing.T, database *db.DB, input *db.CandidateProfileInput) (*db.User, *db.CandidateProfile) {
	t.Helper()
	ctx := context.Background()
	user, err := database.CreateUser(ctx, newEmail(), "hash", types.RoleJobSeeker)
	require.NoError(t, err)
	profile, err := database.UpsertCandidateProfile(ctx, user.ID, input)
	require.NoError(t, err)
	return user, profile
}

func TestIntegration_Service_Apply(t *testing.T) {
	svc, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	job := seedEmployerWithJob(t, database, &db.JobCreateInput{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Location:       "Berlin",
		LocationType:   types.LocationRemote,
	})

	user, _ := seedCandidate(t, database, &db.CandidateProfileInput{
		Skills:                []string{"Go"},
		YearsExperience:       4,
		Location:              "Berlin",
		PreferredLocationType: types.LocationRemote,
		AvailabilityStatus:    types.AvailabilityActivelyLooking,
	})

	t.Run("happy path", func(t *testing.T) {
		app, err := svc.Apply(ctx, job.ID, user.ID, "Hello!", nil)
		require.NoError(t, err)
		assert.Equal(t, types.ApplicationSubmitted, app.Status)
		assert.Nil(t, app.FitIndex, "new application should be unscored")
	})

	t.Run("duplicate application", func(t *testing.T) {
		_, err := svc.Apply(ctx, job.ID, user.ID, "", nil)
		assert.ErrorIs(t, err, db.ErrDuplicateApplication)
	})

	t.Run("closed job", func(t *testing.T) {
		closed := seedEmployerWithJob(t, database, &db.JobCreateInput{
			Title:          "Closed Role",
			RequiredSkills: []string{"Go"},
			Status:         types.JobStatusClosed,
		})
		_, err := svc.Apply(ctx, closed.ID, user.ID, "", nil)
		var jobErr *JobNotOpenError
		assert.True(t, errors.As(err, &jobErr), "err = %v, want JobNotOpenError", err)
	})

	t.Run("missing profile", func(t *testing.T) {
		bare, err := database.CreateUser(ctx, newEmail(), "hash", types.RoleJobSeeker)
		require.NoError(t, err)
		_, err = svc.Apply(ctx, job.ID, bare.ID, "", nil)
		var profErr *ProfileRequiredError
		assert.True(t, errors.As(err, &profErr), "err = %v, want ProfileRequiredError", err)
	})

	t.Run("missing job", func(t *testing.T) {
		_, err := svc.Apply(ctx, uuid.New(), user.ID, "", nil)
		var nfErr *NotFoundError
		assert.True(t, errors.As(err, &nfErr), "err = %v, want NotFoundError", err)
	})
}

func TestIntegration_Service_CalculateFit(t *testing.T) {
	svc, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	minYears, maxYears := 3, 8
	salaryMin, salaryMax := 90000, 130000
	job := seedEmployerWithJob(t, database, &db.JobCreateInput{
		Title:              "Platform Engineer",
		RequiredSkills:     []string{"Go", "Kubernetes"},
		ExperienceMinYears: &minYears,
		ExperienceMaxYears: &maxYears,
		SalaryMin:          &salaryMin,
		SalaryMax:          &salaryMax,
		Location:           "Berlin",
		LocationType:       types.LocationRemote,
	})

	expectMin := 100000
	user, _ := seedCandidate(t, database, &db.CandidateProfileInput{
		Skills:                []string{"Go", "Kubernetes", "Terraform"},
		YearsExperience:       5,
		Location:              "Berlin",
		PreferredLocationType: types.LocationRemote,
		ExpectedSalaryMin:     &expectMin,
		AvailabilityStatus:    types.AvailabilityActivelyLooking,
	})

	app, err := svc.Apply(ctx, job.ID, user.ID, "", nil)
	require.NoError(t, err)

	scored, err := svc.CalculateFit(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, scored.Fit)

	// Full skill match without preferred skills scores 80; everything else
	// lines up, so the weighted total lands at 90.
	assert.Equal(t, 90, scored.Fit.Overall)
	assert.Len(t, scored.Fit.Breakdown, 6)

	// Score is persisted on the application row
	persisted, err := database.GetApplicationByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted.FitIndex)
	assert.Equal(t, 90, *persisted.FitIndex)
	assert.NotNil(t, persisted.FitComputedAt)

	t.Run("missing application", func(t *testing.T) {
		_, err := svc.CalculateFit(ctx, uuid.New())
		var nfErr *NotFoundError
		assert.True(t, errors.As(err, &nfErr))
	})
}

func TestIntegration_Service_RankApplications(t *testing.T) {
	svc, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	job := seedEmployerWithJob(t, database, &db.JobCreateInput{
		Title:          "Data Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Location:       "Berlin",
		LocationType:   types.LocationRemote,
	})

	// Candidates with 2, 1, and 0 of the required skills
	skillSets := [][]string{
		{"Go", "PostgreSQL"},
		{"Go"},
		{"Java"},
	}
	var appIDs []uuid.UUID
	for _, skills := range skillSets {
		user, _ := seedCandidate(t, database, &db.CandidateProfileInput{
			Skills:                skills,
			YearsExperience:       5,
			Location:              "Berlin",
			PreferredLocationType: types.LocationRemote,
			AvailabilityStatus:    types.AvailabilityActivelyLooking,
		})
		app, err := svc.Apply(ctx, job.ID, user.ID, "", nil)
		require.NoError(t, err)
		appIDs = append(appIDs, app.ID)
	}

	ranked, total, err := svc.RankApplications(ctx, job.ID, RankOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, ranked, 3)

	// Every application now carries a fit score, in descending order
	for i, sa := range ranked {
		require.NotNil(t, sa.Fit, "application %d should be scored", i)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Fit.Overall, sa.Fit.Overall)
		}
	}
	assert.Greater(t, ranked[0].Fit.Overall, ranked[2].Fit.Overall,
		"full skill match should outrank no skill match")

	// Best candidate is the full skill match
	assert.Equal(t, appIDs[0], ranked[0].Application.ID)

	t.Run("pagination", func(t *testing.T) {
		page, total, err := svc.RankApplications(ctx, job.ID, RankOptions{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, page, 2)
	})

	t.Run("missing job", func(t *testing.T) {
		_, _, err := svc.RankApplications(ctx, uuid.New(), RankOptions{})
		var nfErr *NotFoundError
		assert.True(t, errors.As(err, &nfErr))
	})
}

func TestIntegration_Service_TransitionStatus(t *testing.T) {
	svc, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	job := seedEmployerWithJob(t, database, &db.JobCreateInput{
		Title:          "QA Engineer",
		RequiredSkills: []string{"Go"},
	})
	user, _ := seedCandidate(t, database, &db.CandidateProfileInput{
		Skills:             []string{"Go"},
		YearsExperience:    2,
		AvailabilityStatus: types.AvailabilityOpenToOffers,
	})

	app, err := svc.Apply(ctx, job.ID, user.ID, "", nil)
	require.NoError(t, err)

	t.Run("valid chain", func(t *testing.T) {
		updated, err := svc.TransitionStatus(ctx, app.ID, types.ApplicationReviewing, "screening", nil)
		require.NoError(t, err)
		assert.Equal(t, types.ApplicationReviewing, updated.Status)

		updated, err = svc.TransitionStatus(ctx, app.ID, types.ApplicationShortlisted, "", nil)
		require.NoError(t, err)
		assert.Equal(t, types.ApplicationShortlisted, updated.Status)
	})

	t.Run("invalid transition", func(t *testing.T) {
		_, err := svc.TransitionStatus(ctx, app.ID, types.ApplicationHired, "", nil)
		var invErr *InvalidTransitionError
		require.True(t, errors.As(err, &invErr), "err = %v, want InvalidTransitionError", err)
		assert.Equal(t, types.ApplicationShortlisted, invErr.From)
	})

	t.Run("terminal status locks", func(t *testing.T) {
		_, err := svc.TransitionStatus(ctx, app.ID, types.ApplicationRejected, "not a fit", nil)
		require.NoError(t, err)

		_, err = svc.TransitionStatus(ctx, app.ID, types.ApplicationReviewing, "", nil)
		var invErr *InvalidTransitionError
		assert.True(t, errors.As(err, &invErr))
	})

	t.Run("history records each step", func(t *testing.T) {
		events, err := svc.StatusHistory(ctx, app.ID)
		require.NoError(t, err)
		// submitted, reviewing, shortlisted, rejected
		require.Len(t, events, 4)
		assert.Equal(t, string(types.ApplicationRejected), events[3].ToStatus)
		require.NotNil(t, events[3].Note)
		assert.Equal(t, "not a fit", *events[3].Note)
	})
}

func TestIntegration_Service_Analytics(t *testing.T) {
	svc, database := getTestService(t)
	defer database.Close()
	ctx := context.Background()

	job := seedEmployerWithJob(t, database, &db.JobCreateInput{
		Title:          "Analytics Role",
		RequiredSkills: []string{"Go"},
	})

	for i := 0; i < 2; i++ {
		user, _ := seedCandidate(t, database, &db.CandidateProfileInput{
			Skills:             []string{"Go"},
			YearsExperience:    3,
			AvailabilityStatus: types.AvailabilityActivelyLooking,
		})
		_, err := svc.Apply(ctx, job.ID, user.ID, "", nil)
		require.NoError(t, err)
	}

	// Score everything, then check the aggregates
	_, _, err := svc.RankApplications(ctx, job.ID, RankOptions{})
	require.NoError(t, err)

	analytics, err := svc.Analytics(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalApplications)
	assert.Equal(t, 2, analytics.StatusCounts[string(types.ApplicationSubmitted)])
	assert.Equal(t, 2, analytics.ScoredCount)
	assert.NotNil(t, analytics.AverageFitIndex)
	assert.NotNil(t, analytics.TopFitIndex)
}
