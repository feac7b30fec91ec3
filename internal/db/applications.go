package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hireflux/ats-service/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// CreateApplication submits a new application and records the initial status
// event. Returns ErrDuplicateApplication if the candidate already applied to
// the job.
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var a Application
	err = tx.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, status, cover_letter, resume_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, job_id, candidate_id, status, cover_letter, resume_id,
		           fit_index, fit_breakdown, fit_strengths, fit_concerns, fit_computed_at,
		           applied_at, updated_at`,
		input.JobID, input.CandidateID, types.ApplicationSubmitted,
		nullIfEmpty(input.CoverLetter), input.ResumeID,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.ResumeID,
		&a.FitIndex, &a.FitBreakdown, &a.FitStrengths, &a.FitConcerns, &a.FitComputedAt,
		&a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO application_events (application_id, to_status)
		 VALUES ($1, $2)`,
		a.ID, types.ApplicationSubmitted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record application event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &a, nil
}

// GetApplicationByID retrieves an application by its ID
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, status, cover_letter, resume_id,
		        fit_index, fit_breakdown, fit_strengths, fit_concerns, fit_computed_at,
		        applied_at, updated_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.ResumeID,
		&a.FitIndex, &a.FitBreakdown, &a.FitStrengths, &a.FitConcerns, &a.FitComputedAt,
		&a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// UpdateApplicationStatus transitions an application from one status to
// another and records the event. The update only applies if the application
// is still in the expected current status; otherwise ErrStatusConflict is
// returned.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, from, to types.ApplicationStatus, note string, actorID *uuid.UUID) (*Application, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrStatusConflict
	}

	fromStatus := string(from)
	_, err = tx.Exec(ctx,
		`INSERT INTO application_events (application_id, from_status, to_status, note, actor_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, fromStatus, to, nullIfEmpty(note), actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record application event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return db.GetApplicationByID(ctx, id)
}

// SaveFitScore persists a computed fit score onto an application
func (db *DB) SaveFitScore(ctx context.Context, id uuid.UUID, result *types.FitScoreResult) error {
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal fit breakdown: %w", err)
	}

	res, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET fit_index = $2, fit_breakdown = $3, fit_strengths = $4, fit_concerns = $5,
		     fit_computed_at = NOW(), updated_at = NOW()
		 WHERE id = $1`,
		id, result.Overall, breakdownJSON,
		StringArray(result.Strengths), StringArray(result.Concerns),
	)
	if err != nil {
		return fmt.Errorf("failed to save fit score: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// ApplicationFilters holds optional filters for listing applications
type ApplicationFilters struct {
	Status string
	Ranked bool // Order by fit index descending instead of most recent first
	Limit  int
	Offset int
}

// ListApplicationsByJob lists applications for a job with optional filters
// and pagination. With Ranked set, results are ordered by fit index
// descending; unscored applications sort last and ties break on the earliest
// applied_at.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID, filters ApplicationFilters) ([]Application, int, error) {
	conditions := []string{"job_id = $1"}
	args := []any{jobID}
	argNum := 2

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, filters.Status)
		argNum++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM applications %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	orderBy := "applied_at DESC"
	if filters.Ranked {
		orderBy = "fit_index DESC NULLS LAST, applied_at ASC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, job_id, candidate_id, status, cover_letter, resume_id,
		        fit_index, fit_breakdown, fit_strengths, fit_concerns, fit_computed_at,
		        applied_at, updated_at
		 FROM applications %s
		 ORDER BY %s
		 LIMIT $%d OFFSET $%d`,
		whereClause, orderBy, argNum, argNum+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter,
			&a.ResumeID, &a.FitIndex, &a.FitBreakdown, &a.FitStrengths, &a.FitConcerns,
			&a.FitComputedAt, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		applications = append(applications, a)
	}
	return applications, total, nil
}

// ListApplicationsByCandidate lists a candidate's applications, most recent
// first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, status, cover_letter, resume_id,
		        fit_index, fit_breakdown, fit_strengths, fit_concerns, fit_computed_at,
		        applied_at, updated_at
		 FROM applications
		 WHERE candidate_id = $1
		 ORDER BY applied_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter,
			&a.ResumeID, &a.FitIndex, &a.FitBreakdown, &a.FitStrengths, &a.FitConcerns,
			&a.FitComputedAt, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, nil
}

// ListAllApplicationsByJob lists every application for a job without
// pagination, oldest first. Used when refreshing fit scores for a whole job.
func (db *DB) ListAllApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, status, cover_letter, resume_id,
		        fit_index, fit_breakdown, fit_strengths, fit_concerns, fit_computed_at,
		        applied_at, updated_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY applied_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter,
			&a.ResumeID, &a.FitIndex, &a.FitBreakdown, &a.FitStrengths, &a.FitConcerns,
			&a.FitComputedAt, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, nil
}

// ListApplicationEvents retrieves the status history for an application in
// chronological order.
func (db *DB) ListApplicationEvents(ctx context.Context, applicationID uuid.UUID) ([]ApplicationEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, from_status, to_status, note, actor_id, created_at
		 FROM application_events
		 WHERE application_id = $1
		 ORDER BY created_at ASC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list application events: %w", err)
	}
	defer rows.Close()

	var events []ApplicationEvent
	for rows.Next() {
		var e ApplicationEvent
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.FromStatus, &e.ToStatus,
			&e.Note, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// JobAnalytics summarizes the application funnel for one job
type JobAnalytics struct {
	JobID             uuid.UUID      `json:"job_id"`
	TotalApplications int            `json:"total_applications"`
	StatusCounts      map[string]int `json:"status_counts"`
	ScoredCount       int            `json:"scored_count"`
	AverageFitIndex   *float64       `json:"average_fit_index,omitempty"`
	TopFitIndex       *int           `json:"top_fit_index,omitempty"`
}

// GetJobAnalytics aggregates application counts and fit score statistics for
// a job.
func (db *DB) GetJobAnalytics(ctx context.Context, jobID uuid.UUID) (*JobAnalytics, error) {
	analytics := &JobAnalytics{
		JobID:        jobID,
		StatusCounts: make(map[string]int),
	}

	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE job_id = $1 GROUP BY status`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		analytics.StatusCounts[status] = count
		analytics.TotalApplications += count
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(fit_index), AVG(fit_index)::float8, MAX(fit_index)
		 FROM applications
		 WHERE job_id = $1 AND fit_index IS NOT NULL`,
		jobID,
	).Scan(&analytics.ScoredCount, &analytics.AverageFitIndex, &analytics.TopFitIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate fit scores: %w", err)
	}

	return analytics, nil
}
