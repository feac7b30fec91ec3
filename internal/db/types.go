package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/types"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize to JSON
	Role         types.Role `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CandidateProfile represents a job seeker's scoring profile
type CandidateProfile struct {
	ID                    uuid.UUID          `json:"id"`
	UserID                uuid.UUID          `json:"user_id"`
	Headline              string             `json:"headline,omitempty"`
	Skills                StringArray        `json:"skills"` // JSONB array
	YearsExperience       int                `json:"years_experience"`
	Location              string             `json:"location,omitempty"`
	PreferredLocationType types.LocationType `json:"preferred_location_type"`
	ExpectedSalaryMin     *int               `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax     *int               `json:"expected_salary_max,omitempty"`
	AvailabilityStatus    types.Availability `json:"availability_status"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// ScoringProfile converts the stored row into the candidate side of a fit
// computation.
func (p *CandidateProfile) ScoringProfile() types.CandidateProfile {
	return types.CandidateProfile{
		Skills:                p.Skills,
		YearsExperience:       p.YearsExperience,
		Location:              p.Location,
		PreferredLocationType: p.PreferredLocationType,
		ExpectedSalaryMin:     p.ExpectedSalaryMin,
		ExpectedSalaryMax:     p.ExpectedSalaryMax,
		AvailabilityStatus:    p.AvailabilityStatus,
	}
}

// Job represents a job posting
type Job struct {
	ID                 uuid.UUID          `json:"id"`
	EmployerID         uuid.UUID          `json:"employer_id"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	RequiredSkills     StringArray        `json:"required_skills"`  // JSONB array
	PreferredSkills    StringArray        `json:"preferred_skills"` // JSONB array
	ExperienceMinYears *int               `json:"experience_min_years,omitempty"`
	ExperienceMaxYears *int               `json:"experience_max_years,omitempty"`
	SalaryMin          *int               `json:"salary_min,omitempty"`
	SalaryMax          *int               `json:"salary_max,omitempty"`
	Location           string             `json:"location,omitempty"`
	LocationType       types.LocationType `json:"location_type"`
	Status             types.JobStatus    `json:"status"`
	SourceURL          *string            `json:"source_url,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Requirements converts the stored row into the job side of a fit computation.
func (j *Job) Requirements() types.JobRequirements {
	return types.JobRequirements{
		RequiredSkills:     j.RequiredSkills,
		PreferredSkills:    j.PreferredSkills,
		ExperienceMinYears: j.ExperienceMinYears,
		ExperienceMaxYears: j.ExperienceMaxYears,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		Location:           j.Location,
		LocationType:       j.LocationType,
	}
}

// IsOpen reports whether the job currently accepts applications
func (j *Job) IsOpen() bool {
	return j.Status == types.JobStatusOpen
}

// Application represents a candidate's application to a job
type Application struct {
	ID            uuid.UUID               `json:"id"`
	JobID         uuid.UUID               `json:"job_id"`
	CandidateID   uuid.UUID               `json:"candidate_id"`
	Status        types.ApplicationStatus `json:"status"`
	CoverLetter   *string                 `json:"cover_letter,omitempty"`
	ResumeID      *uuid.UUID              `json:"resume_id,omitempty"`
	FitIndex      *int                    `json:"fit_index,omitempty"`
	FitBreakdown  []byte                  `json:"-"` // Raw JSONB, see FitResult
	FitStrengths  StringArray             `json:"fit_strengths,omitempty"`
	FitConcerns   StringArray             `json:"fit_concerns,omitempty"`
	FitComputedAt *time.Time              `json:"fit_computed_at,omitempty"`
	AppliedAt     time.Time               `json:"applied_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// FitResult reconstructs the persisted fit score, or nil if the application
// has not been scored yet.
func (a *Application) FitResult() *types.FitScoreResult {
	if a.FitIndex == nil {
		return nil
	}
	result := &types.FitScoreResult{
		Overall:   *a.FitIndex,
		Strengths: a.FitStrengths,
		Concerns:  a.FitConcerns,
	}
	if len(a.FitBreakdown) > 0 {
		_ = json.Unmarshal(a.FitBreakdown, &result.Breakdown)
	}
	return result
}

// ApplicationEvent records a single status transition on an application
type ApplicationEvent struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	FromStatus    *string    `json:"from_status,omitempty"`
	ToStatus      string     `json:"to_status"`
	Note          *string    `json:"note,omitempty"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Resume represents an uploaded resume document
type Resume struct {
	ID              uuid.UUID   `json:"id"`
	CandidateID     uuid.UUID   `json:"candidate_id"`
	Filename        string      `json:"filename"`
	ContentType     string      `json:"content_type,omitempty"`
	SizeBytes       int64       `json:"size_bytes"`
	TextContent     string      `json:"-"` // Extracted text, large
	ExtractedSkills StringArray `json:"extracted_skills,omitempty"`
	UploadedAt      time.Time   `json:"uploaded_at"`
}

// JobCreateInput contains data for creating a job posting
type JobCreateInput struct {
	Title              string
	Description        string
	RequiredSkills     []string
	PreferredSkills    []string
	ExperienceMinYears *int
	ExperienceMaxYears *int
	SalaryMin          *int
	SalaryMax          *int
	Location           string
	LocationType       types.LocationType
	Status             types.JobStatus
	SourceURL          *string
}

// JobUpdateInput contains optional fields for a partial job update.
// Nil fields are left unchanged.
type JobUpdateInput struct {
	Title              *string
	Description        *string
	RequiredSkills     []string
	PreferredSkills    []string
	ExperienceMinYears *int
	ExperienceMaxYears *int
	SalaryMin          *int
	SalaryMax          *int
	Location           *string
	LocationType       *types.LocationType
	Status             *types.JobStatus
}

// CandidateProfileInput contains data for creating or replacing a candidate
// profile.
type CandidateProfileInput struct {
	Headline              string
	Skills                []string
	YearsExperience       int
	Location              string
	PreferredLocationType types.LocationType
	ExpectedSalaryMin     *int
	ExpectedSalaryMax     *int
	AvailabilityStatus    types.Availability
}

// ApplicationCreateInput contains data for submitting an application
type ApplicationCreateInput struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	CoverLetter string
	ResumeID    *uuid.UUID
}

// ResumeCreateInput contains data for storing an uploaded resume
type ResumeCreateInput struct {
	CandidateID     uuid.UUID
	Filename        string
	ContentType     string
	SizeBytes       int64
	TextContent     string
	ExtractedSkills []string
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// nullIfEmpty returns nil if the string is empty, otherwise a pointer to the string
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
