// Package types provides type definitions for structured data used throughout the ats-service system.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApplicationStatus represents an application's stage in the hiring pipeline.
type ApplicationStatus string

// Pipeline stages. An application advances submitted -> reviewing ->
// shortlisted -> interview -> offer -> hired; rejected and withdrawn are
// terminal exits reachable from any non-terminal stage.
const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationReviewing   ApplicationStatus = "reviewing"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationOffer       ApplicationStatus = "offer"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationHired || s == ApplicationRejected || s == ApplicationWithdrawn
}

// ApplyRequest represents a candidate's request to apply to a job.
type ApplyRequest struct {
	CoverLetter string     `json:"cover_letter,omitempty" validate:"omitempty,max=10000"`
	ResumeID    *uuid.UUID `json:"resume_id,omitempty"`
}

// TransitionRequest represents a request to move an application to a new status.
type TransitionRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=submitted reviewing shortlisted interview offer hired rejected withdrawn"`
	Note   string            `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// Validate validates the ApplyRequest using the validator.
func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TransitionRequest using the validator.
func (r *TransitionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
