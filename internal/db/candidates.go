package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Candidate Profile Methods
// -----------------------------------------------------------------------------

// UpsertCandidateProfile creates or replaces the profile for a user
func (db *DB) UpsertCandidateProfile(ctx context.Context, userID uuid.UUID, input *CandidateProfileInput) (*CandidateProfile, error) {
	var p CandidateProfile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidate_profiles (user_id, headline, skills, years_experience, location,
		                                 preferred_location_type, expected_salary_min,
		                                 expected_salary_max, availability_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		     headline = $2,
		     skills = $3,
		     years_experience = $4,
		     location = $5,
		     preferred_location_type = $6,
		     expected_salary_min = $7,
		     expected_salary_max = $8,
		     availability_status = $9,
		     updated_at = NOW()
		 RETURNING id, user_id, headline, skills, years_experience, location,
		           preferred_location_type, expected_salary_min, expected_salary_max,
		           availability_status, created_at, updated_at`,
		userID, input.Headline, StringArray(input.Skills), input.YearsExperience,
		input.Location, input.PreferredLocationType, input.ExpectedSalaryMin,
		input.ExpectedSalaryMax, input.AvailabilityStatus,
	).Scan(&p.ID, &p.UserID, &p.Headline, &p.Skills, &p.YearsExperience, &p.Location,
		&p.PreferredLocationType, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
		&p.AvailabilityStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate profile: %w", err)
	}
	return &p, nil
}

// GetCandidateProfileByUserID retrieves the profile belonging to a user
func (db *DB) GetCandidateProfileByUserID(ctx context.Context, userID uuid.UUID) (*CandidateProfile, error) {
	var p CandidateProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, headline, skills, years_experience, location,
		        preferred_location_type, expected_salary_min, expected_salary_max,
		        availability_status, created_at, updated_at
		 FROM candidate_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Headline, &p.Skills, &p.YearsExperience, &p.Location,
		&p.PreferredLocationType, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
		&p.AvailabilityStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return &p, nil
}

// GetCandidateProfileByID retrieves a profile by its ID
func (db *DB) GetCandidateProfileByID(ctx context.Context, id uuid.UUID) (*CandidateProfile, error) {
	var p CandidateProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, headline, skills, years_experience, location,
		        preferred_location_type, expected_salary_min, expected_salary_max,
		        availability_status, created_at, updated_at
		 FROM candidate_profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.UserID, &p.Headline, &p.Skills, &p.YearsExperience, &p.Location,
		&p.PreferredLocationType, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
		&p.AvailabilityStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return &p, nil
}
