// Package ats provides the application pipeline service: fit scoring,
// ranking, and the application status state machine.
package ats

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/types"
)

// NotFoundError indicates a referenced resource does not exist
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InvalidTransitionError indicates a status change the pipeline does not allow
type InvalidTransitionError struct {
	From types.ApplicationStatus
	To   types.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition application from %s to %s", e.From, e.To)
}

// JobNotOpenError indicates an application was submitted to a job that is not
// accepting applications
type JobNotOpenError struct {
	JobID  uuid.UUID
	Status types.JobStatus
}

func (e *JobNotOpenError) Error() string {
	return fmt.Sprintf("job %s is not open for applications (status: %s)", e.JobID, e.Status)
}

// ProfileRequiredError indicates the user has no candidate profile yet
type ProfileRequiredError struct {
	UserID uuid.UUID
}

func (e *ProfileRequiredError) Error() string {
	return fmt.Sprintf("user %s has no candidate profile", e.UserID)
}
