package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hireflux/ats-service/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

// CreateJob creates a new job posting owned by an employer
func (db *DB) CreateJob(ctx context.Context, employerID uuid.UUID, input *JobCreateInput) (*Job, error) {
	status := input.Status
	if status == "" {
		status = types.JobStatusOpen
	}
	locationType := input.LocationType
	if locationType == "" {
		locationType = types.LocationOnsite
	}

	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, description, required_skills, preferred_skills,
		                   experience_min_years, experience_max_years, salary_min, salary_max,
		                   location, location_type, status, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, employer_id, title, description, required_skills, preferred_skills,
		           experience_min_years, experience_max_years, salary_min, salary_max,
		           location, location_type, status, source_url, created_at, updated_at`,
		employerID, input.Title, input.Description, StringArray(input.RequiredSkills),
		StringArray(input.PreferredSkills), input.ExperienceMinYears, input.ExperienceMaxYears,
		input.SalaryMin, input.SalaryMax, input.Location, locationType, status, input.SourceURL,
	).Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.RequiredSkills, &j.PreferredSkills,
		&j.ExperienceMinYears, &j.ExperienceMaxYears, &j.SalaryMin, &j.SalaryMax,
		&j.Location, &j.LocationType, &j.Status, &j.SourceURL, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJobByID retrieves a job by its ID
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, employer_id, title, description, required_skills, preferred_skills,
		        experience_min_years, experience_max_years, salary_min, salary_max,
		        location, location_type, status, source_url, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.RequiredSkills, &j.PreferredSkills,
		&j.ExperienceMinYears, &j.ExperienceMaxYears, &j.SalaryMin, &j.SalaryMax,
		&j.Location, &j.LocationType, &j.Status, &j.SourceURL, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// UpdateJob applies a partial update to a job. Nil fields in the input are
// left unchanged.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobUpdateInput) (*Job, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	argNum := 2

	if input.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argNum))
		args = append(args, *input.Title)
		argNum++
	}
	if input.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argNum))
		args = append(args, *input.Description)
		argNum++
	}
	if input.RequiredSkills != nil {
		sets = append(sets, fmt.Sprintf("required_skills = $%d", argNum))
		args = append(args, StringArray(input.RequiredSkills))
		argNum++
	}
	if input.PreferredSkills != nil {
		sets = append(sets, fmt.Sprintf("preferred_skills = $%d", argNum))
		args = append(args, StringArray(input.PreferredSkills))
		argNum++
	}
	if input.ExperienceMinYears != nil {
		sets = append(sets, fmt.Sprintf("experience_min_years = $%d", argNum))
		args = append(args, *input.ExperienceMinYears)
		argNum++
	}
	if input.ExperienceMaxYears != nil {
		sets = append(sets, fmt.Sprintf("experience_max_years = $%d", argNum))
		args = append(args, *input.ExperienceMaxYears)
		argNum++
	}
	if input.SalaryMin != nil {
		sets = append(sets, fmt.Sprintf("salary_min = $%d", argNum))
		args = append(args, *input.SalaryMin)
		argNum++
	}
	if input.SalaryMax != nil {
		sets = append(sets, fmt.Sprintf("salary_max = $%d", argNum))
		args = append(args, *input.SalaryMax)
		argNum++
	}
	if input.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argNum))
		args = append(args, *input.Location)
		argNum++
	}
	if input.LocationType != nil {
		sets = append(sets, fmt.Sprintf("location_type = $%d", argNum))
		args = append(args, *input.LocationType)
		argNum++
	}
	if input.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *input.Status)
	}

	query := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $1
		 RETURNING id, employer_id, title, description, required_skills, preferred_skills,
		           experience_min_years, experience_max_years, salary_min, salary_max,
		           location, location_type, status, source_url, created_at, updated_at`,
		strings.Join(sets, ", "),
	)

	var j Job
	err := db.pool.QueryRow(ctx, query, args...).Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.RequiredSkills, &j.PreferredSkills,
		&j.ExperienceMinYears, &j.ExperienceMaxYears, &j.SalaryMin, &j.SalaryMax,
		&j.Location, &j.LocationType, &j.Status, &j.SourceURL, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &j, nil
}

// DeleteJob removes a job posting
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// JobFilters holds optional filters for listing jobs
type JobFilters struct {
	EmployerID   *uuid.UUID
	Status       string
	Skill        string // Matches any required or preferred skill, case-insensitive
	LocationType string
	Limit        int
	Offset       int
}

// ListJobs lists jobs with optional filters and pagination
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]Job, int, error) {
	var conditions []string
	var args []any
	argNum := 1

	if filters.EmployerID != nil {
		conditions = append(conditions, fmt.Sprintf("employer_id = $%d", argNum))
		args = append(args, *filters.EmployerID)
		argNum++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Skill != "" {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM jsonb_array_elements_text(required_skills || preferred_skills) skill
			 WHERE LOWER(skill) = LOWER($%d))`, argNum))
		args = append(args, filters.Skill)
		argNum++
	}
	if filters.LocationType != "" {
		conditions = append(conditions, fmt.Sprintf("location_type = $%d", argNum))
		args = append(args, filters.LocationType)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
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

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, employer_id, title, description, required_skills, preferred_skills,
		        experience_min_years, experience_max_years, salary_min, salary_max,
		        location, location_type, status, source_url, created_at, updated_at
		 FROM jobs %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		whereClause, argNum, argNum+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description,
			&j.RequiredSkills, &j.PreferredSkills, &j.ExperienceMinYears, &j.ExperienceMaxYears,
			&j.SalaryMin, &j.SalaryMax, &j.Location, &j.LocationType, &j.Status,
			&j.SourceURL, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, nil
}
