package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hireflux/ats-service/internal/ats"
	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/types"
)

// handleApply submits an application from the authenticated job seeker to
// the job in the path. Duplicate applications return 409.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireRole(w, r, types.RoleJobSeeker)
	if !ok {
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.ats.Apply(r.Context(), jobID, userID, req.CoverLetter, req.ResumeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// applicationParties loads the job and candidate profile an application
// connects. Both are required rows; missing ones indicate a data problem.
func (s *Server) applicationParties(ctx context.Context, app *db.Application) (*db.Job, *db.CandidateProfile, error) {
	job, err := s.db.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, &ats.NotFoundError{Resource: "job", ID: app.JobID}
	}
	profile, err := s.db.GetCandidateProfileByID(ctx, app.CandidateID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, &ats.NotFoundError{Resource: "candidate profile", ID: app.CandidateID}
	}
	return job, profile, nil
}

// loadApplicationForViewer fetches an application and checks that the
// authenticated user is either the owning candidate or the employer who
// owns the job. Responses are written on failure.
func (s *Server) loadApplicationForViewer(w http.ResponseWriter, r *http.Request) *db.Application {
	userID, _, ok := s.authUser(w, r)
	if !ok {
		return nil
	}

	appID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return nil
	}

	app, err := s.db.GetApplicationByID(r.Context(), appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return nil
	}

	job, profile, err := s.applicationParties(r.Context(), app)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil
	}
	if job.EmployerID != userID && profile.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "Application belongs to another user")
		return nil
	}

	return app
}

// handleGetApplication retrieves one application with its persisted fit
// score, if any.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app := s.loadApplicationForViewer(w, r)
	if app == nil {
		return
	}

	s.jsonResponse(w, http.StatusOK, ats.ScoredApplication{
		Application: app,
		Fit:         app.FitResult(),
	})
}

// handleListApplicationEvents returns the status history of an application,
// oldest first.
func (s *Server) handleListApplicationEvents(w http.ResponseWriter, r *http.Request) {
	app := s.loadApplicationForViewer(w, r)
	if app == nil {
		return
	}

	events, err := s.ats.StatusHistory(r.Context(), app.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// handleTransitionStatus moves an application to a new pipeline status.
// Employers who own the job drive the pipeline; candidates may only
// withdraw their own application.
func (s *Server) handleTransitionStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.authUser(w, r)
	if !ok {
		return
	}

	appID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.db.GetApplicationByID(r.Context(), appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	job, profile, err := s.applicationParties(r.Context(), app)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if req.Status == types.ApplicationWithdrawn {
		if profile.UserID != userID {
			s.errorResponse(w, http.StatusForbidden, "Only the candidate may withdraw an application")
			return
		}
	} else {
		if role != types.RoleEmployer || job.EmployerID != userID {
			s.errorResponse(w, http.StatusForbidden, "Only the employer who owns the job may change application status")
			return
		}
	}

	updated, err := s.ats.TransitionStatus(r.Context(), appID, req.Status, req.Note, &userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
