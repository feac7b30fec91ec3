package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

// CreateResume stores an uploaded resume document and its extracted text
func (db *DB) CreateResume(ctx context.Context, input *ResumeCreateInput) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (candidate_id, filename, content_type, size_bytes,
		                      text_content, extracted_skills)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, candidate_id, filename, content_type, size_bytes, extracted_skills, uploaded_at`,
		input.CandidateID, input.Filename, input.ContentType, input.SizeBytes,
		input.TextContent, StringArray(input.ExtractedSkills),
	).Scan(&r.ID, &r.CandidateID, &r.Filename, &r.ContentType, &r.SizeBytes,
		&r.ExtractedSkills, &r.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// GetResumeByID retrieves a resume including its extracted text
func (db *DB) GetResumeByID(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, filename, content_type, size_bytes,
		        text_content, extracted_skills, uploaded_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.CandidateID, &r.Filename, &r.ContentType, &r.SizeBytes,
		&r.TextContent, &r.ExtractedSkills, &r.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumesByCandidate lists a candidate's resumes, most recent first.
// Extracted text is omitted from the listing.
func (db *DB) ListResumesByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, filename, content_type, size_bytes, extracted_skills, uploaded_at
		 FROM resumes
		 WHERE candidate_id = $1
		 ORDER BY uploaded_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.Filename, &r.ContentType,
			&r.SizeBytes, &r.ExtractedSkills, &r.UploadedAt); err != nil {
			return nil, err
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// DeleteResume removes a stored resume
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}
