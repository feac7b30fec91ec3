package ats

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/fitindex"
	"github.com/hireflux/ats-service/internal/logging"
	"github.com/hireflux/ats-service/internal/types"
)

// defaultScoreLimit bounds how many fit computations run concurrently when
// refreshing a whole job's applications.
const defaultScoreLimit = 8

// Service provides business logic for applications: submission, fit scoring,
// ranking, and status transitions.
type Service struct {
	db         *db.DB
	logger     *logging.Logger
	policy     *fitindex.Policy
	scoreLimit int
}

// New creates a Service using the default scoring policy
func New(database *db.DB, logger *logging.Logger) *Service {
	return &Service{
		db:         database,
		logger:     logger,
		policy:     fitindex.DefaultPolicy(),
		scoreLimit: defaultScoreLimit,
	}
}

// NewWithPolicy creates a Service with a custom scoring policy. An invalid
// policy falls back to the default.
func NewWithPolicy(database *db.DB, logger *logging.Logger, policy *fitindex.Policy) *Service {
	s := New(database, logger)
	if policy != nil {
		if err := policy.Validate(); err != nil {
			logger.Warn("invalid scoring policy, using default", "error", err)
		} else {
			s.policy = policy
		}
	}
	return s
}

// SetScoreLimit overrides the concurrency bound for batch fit refreshes.
// Non-positive values keep the current limit.
func (s *Service) SetScoreLimit(n int) {
	if n > 0 {
		s.scoreLimit = n
	}
}

// ScoredApplication pairs an application with its fit score
type ScoredApplication struct {
	Application *db.Application       `json:"application"`
	Fit         *types.FitScoreResult `json:"fit,omitempty"`
}

// Apply submits an application from the given user to a job. The job must be
// open and the user must have a candidate profile.
func (s *Service) Apply(ctx context.Context, jobID, userID uuid.UUID, coverLetter string, resumeID *uuid.UUID) (*db.Application, error) {
	job, err := s.db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}
	if !job.IsOpen() {
		return nil, &JobNotOpenError{JobID: jobID, Status: job.Status}
	}

	profile, err := s.db.GetCandidateProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &ProfileRequiredError{UserID: userID}
	}

	if resumeID != nil {
		resume, err := s.db.GetResumeByID(ctx, *resumeID)
		if err != nil {
			return nil, err
		}
		if resume == nil || resume.CandidateID != profile.ID {
			return nil, &NotFoundError{Resource: "resume", ID: *resumeID}
		}
	}

	app, err := s.db.CreateApplication(ctx, &db.ApplicationCreateInput{
		JobID:       jobID,
		CandidateID: profile.ID,
		CoverLetter: coverLetter,
		ResumeID:    resumeID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		"application_id", app.ID, "job_id", jobID, "candidate_id", profile.ID)
	return app, nil
}

// CalculateFit computes the fit index for one application and persists it on
// the application row.
func (s *Service) CalculateFit(ctx context.Context, applicationID uuid.UUID) (*ScoredApplication, error) {
	app, err := s.db.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{Resource: "application", ID: applicationID}
	}

	job, err := s.db.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Resource: "job", ID: app.JobID}
	}

	fit, err := s.scoreApplication(ctx, job, app)
	if err != nil {
		return nil, err
	}
	return &ScoredApplication{Application: app, Fit: fit}, nil
}

// RankOptions controls the ranked listing returned by RankApplications
type RankOptions struct {
	Status string
	Limit  int
	Offset int
}

// RankApplications refreshes the fit score of every application to a job and
// returns them ordered by fit index descending, ties broken by earliest
// applied_at. The returned total counts all matching applications before
// pagination.
func (s *Service) RankApplications(ctx context.Context, jobID uuid.UUID, opts RankOptions) ([]ScoredApplication, int, error) {
	job, err := s.db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, 0, err
	}
	if job == nil {
		return nil, 0, &NotFoundError{Resource: "job", ID: jobID}
	}

	if err := s.refreshScores(ctx, job); err != nil {
		return nil, 0, err
	}

	ranked, total, err := s.db.ListApplicationsByJob(ctx, jobID, db.ApplicationFilters{
		Status: opts.Status,
		Ranked: true,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	scored := make([]ScoredApplication, 0, len(ranked))
	for i := range ranked {
		app := ranked[i]
		scored = append(scored, ScoredApplication{
			Application: &app,
			Fit:         app.FitResult(),
		})
	}

	s.logger.Info("applications ranked", "job_id", jobID, "total", total)
	return scored, total, nil
}

// refreshScores recomputes and persists the fit score of every application
// to the job, bounded by the service's concurrency limit.
func (s *Service) refreshScores(ctx context.Context, job *db.Job) error {
	apps, err := s.db.ListAllApplicationsByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.scoreLimit)
	for i := range apps {
		app := &apps[i]
		g.Go(func() error {
			if _, err := s.scoreApplication(gCtx, job, app); err != nil {
				return fmt.Errorf("scoring application %s failed: %w", app.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// RankAll refreshes and returns every application to a job ordered by fit
// index descending, ties broken by earliest applied_at. Unscored
// applications sort last. Exports use this to cover the whole job without
// pagination.
func (s *Service) RankAll(ctx context.Context, jobID uuid.UUID) ([]ScoredApplication, error) {
	job, err := s.db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}

	if err := s.refreshScores(ctx, job); err != nil {
		return nil, err
	}

	apps, err := s.db.ListAllApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(apps, func(i, j int) bool {
		fi, fj := apps[i].FitIndex, apps[j].FitIndex
		switch {
		case fi == nil && fj == nil:
			return apps[i].AppliedAt.Before(apps[j].AppliedAt)
		case fi == nil:
			return false
		case fj == nil:
			return true
		case *fi != *fj:
			return *fi > *fj
		default:
			return apps[i].AppliedAt.Before(apps[j].AppliedAt)
		}
	})

	scored := make([]ScoredApplication, 0, len(apps))
	for i := range apps {
		app := apps[i]
		scored = append(scored, ScoredApplication{
			Application: &app,
			Fit:         app.FitResult(),
		})
	}

	s.logger.Info("applications ranked for export", "job_id", jobID, "total", len(scored))
	return scored, nil
}

// TransitionStatus moves an application to a new pipeline status, validating
// the change against the transition table and recording it in the history.
func (s *Service) TransitionStatus(ctx context.Context, applicationID uuid.UUID, next types.ApplicationStatus, note string, actorID *uuid.UUID) (*db.Application, error) {
	app, err := s.db.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{Resource: "application", ID: applicationID}
	}

	if !CanTransition(app.Status, next) {
		return nil, &InvalidTransitionError{From: app.Status, To: next}
	}

	updated, err := s.db.UpdateApplicationStatus(ctx, applicationID, app.Status, next, note, actorID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("application status changed",
		"application_id", applicationID, "from", app.Status, "to", next)
	return updated, nil
}

// StatusHistory returns the recorded status transitions for an application
func (s *Service) StatusHistory(ctx context.Context, applicationID uuid.UUID) ([]db.ApplicationEvent, error) {
	app, err := s.db.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{Resource: "application", ID: applicationID}
	}
	return s.db.ListApplicationEvents(ctx, applicationID)
}

// Analytics aggregates the application funnel for one job
func (s *Service) Analytics(ctx context.Context, jobID uuid.UUID) (*db.JobAnalytics, error) {
	job, err := s.db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}
	return s.db.GetJobAnalytics(ctx, jobID)
}

// scoreApplication computes and persists the fit score for one application.
// The passed application's fit fields are not mutated; callers reload rows
// when they need the persisted values.
func (s *Service) scoreApplication(ctx context.Context, job *db.Job, app *db.Application) (*types.FitScoreResult, error) {
	profile, err := s.db.GetCandidateProfileByID(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &NotFoundError{Resource: "candidate profile", ID: app.CandidateID}
	}

	result := fitindex.ComputeWithPolicy(s.policy, job.Requirements(), profile.ScoringProfile())
	if err := s.db.SaveFitScore(ctx, app.ID, &result); err != nil {
		return nil, err
	}

	s.logger.Debug("fit score computed",
		"application_id", app.ID, "job_id", job.ID, "fit_index", result.Overall)
	return &result, nil
}
