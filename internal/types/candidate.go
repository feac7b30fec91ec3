// Package types provides type definitions for structured data used throughout the ats-service system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// UpsertCandidateRequest represents the request to create or replace the
// calling user's candidate profile.
type UpsertCandidateRequest struct {
	Headline              string       `json:"headline,omitempty" validate:"omitempty,max=200"`
	Skills                []string     `json:"skills" validate:"required,min=1,dive,min=1"`
	YearsExperience       int          `json:"years_experience" validate:"min=0"`
	Location              string       `json:"location,omitempty"`
	PreferredLocationType LocationType `json:"preferred_location_type" validate:"required,oneof=onsite hybrid remote"`
	ExpectedSalaryMin     *int         `json:"expected_salary_min,omitempty" validate:"omitempty,min=0"`
	ExpectedSalaryMax     *int         `json:"expected_salary_max,omitempty" validate:"omitempty,min=0"`
	AvailabilityStatus    Availability `json:"availability_status" validate:"required,oneof=actively_looking open_to_offers not_looking"`
}

// Validate validates the UpsertCandidateRequest using the validator.
func (r *UpsertCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
