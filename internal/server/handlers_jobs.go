package server

import (
	"encoding/json"
	"net/http"

	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/resume"
	"github.com/hireflux/ats-service/internal/types"
)

// handleCreateJob creates a job posting owned by the authenticated employer.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = types.JobStatusDraft
	}

	job, err := s.db.CreateJob(r.Context(), employerID, &db.JobCreateInput{
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		PreferredSkills:    req.PreferredSkills,
		ExperienceMinYears: req.ExperienceMinYears,
		ExperienceMaxYears: req.ExperienceMaxYears,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		Location:           req.Location,
		LocationType:       req.LocationType,
		Status:             status,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists job postings. Employers may pass mine=true to list
// their own postings in any status; everyone else sees open postings by
// default and never sees drafts.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.authUser(w, r)
	if !ok {
		return
	}

	filters := db.JobFilters{
		Status:       r.URL.Query().Get("status"),
		Skill:        r.URL.Query().Get("skill"),
		LocationType: r.URL.Query().Get("location_type"),
		Limit:        parseQueryInt(r, "limit", 50, 100),
		Offset:       parseQueryInt(r, "offset", 0, 0),
	}

	if r.URL.Query().Get("mine") == "true" {
		if role != types.RoleEmployer {
			s.errorResponse(w, http.StatusForbidden, "employer role required")
			return
		}
		filters.EmployerID = &userID
	} else {
		if filters.Status == string(types.JobStatusDraft) {
			s.errorResponse(w, http.StatusForbidden, "Draft jobs are visible only to their owner")
			return
		}
		if filters.Status == "" {
			filters.Status = string(types.JobStatusOpen)
		}
	}

	jobs, total, err := s.db.ListJobs(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":   jobs,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// handleGetJob retrieves a job posting by ID. Drafts are returned only to
// the owning employer; for everyone else they do not exist.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.authUser(w, r)
	if !ok {
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil || (job.Status == types.JobStatusDraft && job.EmployerID != userID) {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update to a job posting owned by the
// authenticated employer.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "Job belongs to another employer")
		return
	}

	updated, err := s.db.UpdateJob(r.Context(), jobID, &db.JobUpdateInput{
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		PreferredSkills:    req.PreferredSkills,
		ExperienceMinYears: req.ExperienceMinYears,
		ExperienceMaxYears: req.ExperienceMaxYears,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		Location:           req.Location,
		LocationType:       req.LocationType,
		Status:             req.Status,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob deletes a job posting owned by the authenticated employer.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "Job belongs to another employer")
		return
	}

	if err := s.db.DeleteJob(r.Context(), jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleImportJob fetches a job posting from an external URL and saves it
// as a draft owned by the authenticated employer. The extracted text is
// scanned for known skills so the draft starts with a usable requirement
// list.
func (s *Server) handleImportJob(w http.ResponseWriter, r *http.Request) {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return
	}

	var req types.ImportJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	posting, err := s.importer.Import(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn("job import failed", "url", req.URL, "error", err)
		s.errorResponse(w, http.StatusBadGateway, "Failed to import job posting: "+err.Error())
		return
	}

	title := posting.Title
	if title == "" {
		title = "Imported job posting"
	}
	locationType := types.LocationOnsite
	if posting.Location == "Remote" {
		locationType = types.LocationRemote
	}

	job, err := s.db.CreateJob(r.Context(), employerID, &db.JobCreateInput{
		Title:          title,
		Description:    posting.Text,
		RequiredSkills: resume.SuggestSkills(posting.Text),
		Location:       posting.Location,
		LocationType:   locationType,
		Status:         types.JobStatusDraft,
		SourceURL:      &posting.URL,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"job":      job,
		"platform": posting.Platform,
		"checksum": posting.Checksum,
	})
}
