// Package types provides type definitions for structured data used throughout the ats-service system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

// Job posting states. Draft jobs are visible only to their owner.
const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// CreateJobRequest represents the request to create a job posting.
type CreateJobRequest struct {
	Title              string       `json:"title" validate:"required,min=1,max=200"`
	Description        string       `json:"description" validate:"required,min=1"`
	RequiredSkills     []string     `json:"required_skills" validate:"required,min=1,dive,min=1"`
	PreferredSkills    []string     `json:"preferred_skills,omitempty" validate:"omitempty,dive,min=1"`
	ExperienceMinYears *int         `json:"experience_min_years,omitempty" validate:"omitempty,min=0"`
	ExperienceMaxYears *int         `json:"experience_max_years,omitempty" validate:"omitempty,min=0"`
	Location           string       `json:"location,omitempty"`
	LocationType       LocationType `json:"location_type" validate:"required,oneof=onsite hybrid remote"`
	SalaryMin          *int         `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax          *int         `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Status             JobStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft open closed"`
}

// UpdateJobRequest represents a partial update to a job posting.
// Nil fields are left unchanged.
type UpdateJobRequest struct {
	Title              *string       `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description        *string       `json:"description,omitempty" validate:"omitempty,min=1"`
	RequiredSkills     []string      `json:"required_skills,omitempty" validate:"omitempty,min=1,dive,min=1"`
	PreferredSkills    []string      `json:"preferred_skills,omitempty" validate:"omitempty,dive,min=1"`
	ExperienceMinYears *int          `json:"experience_min_years,omitempty" validate:"omitempty,min=0"`
	ExperienceMaxYears *int          `json:"experience_max_years,omitempty" validate:"omitempty,min=0"`
	Location           *string       `json:"location,omitempty"`
	LocationType       *LocationType `json:"location_type,omitempty" validate:"omitempty,oneof=onsite hybrid remote"`
	SalaryMin          *int          `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax          *int          `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Status             *JobStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft open closed"`
}

// ImportJobRequest represents the request to import a job posting from a URL.
type ImportJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImportJobRequest using the validator.
func (r *ImportJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
