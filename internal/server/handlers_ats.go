package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/ats"
	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/export"
	"github.com/hireflux/ats-service/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fitScoreResponse is the wire shape of a computed fit score.
type fitScoreResponse struct {
	FitIndex     int                                `json:"fit_index"`
	Breakdown    map[types.Factor]types.FactorScore `json:"breakdown"`
	Strengths    []string                           `json:"strengths"`
	Concerns     []string                           `json:"concerns"`
	Explanations []string                           `json:"explanations"`
}

func newFitScoreResponse(fit *types.FitScoreResult) *fitScoreResponse {
	if fit == nil {
		return nil
	}
	return &fitScoreResponse{
		FitIndex:     fit.Overall,
		Breakdown:    fit.Breakdown,
		Strengths:    fit.Strengths,
		Concerns:     fit.Concerns,
		Explanations: fit.Explanations(),
	}
}

// rankedApplication is one entry in the ranked listing.
type rankedApplication struct {
	Rank        int               `json:"rank"`
	Application *db.Application   `json:"application"`
	Fit         *fitScoreResponse `json:"fit,omitempty"`
}

// loadOwnedJob fetches the job in the path and checks that the
// authenticated employer owns it. Responses are written on failure.
func (s *Server) loadOwnedJob(w http.ResponseWriter, r *http.Request) *db.Job {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return nil
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return nil
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return nil
	}
	if job.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "Job belongs to another employer")
		return nil
	}
	return job
}

// handleCalculateFit computes and persists the fit score for one
// application. Only the employer who owns the job may trigger it.
func (s *Server) handleCalculateFit(w http.ResponseWriter, r *http.Request) {
	employerID, ok := s.requireRole(w, r, types.RoleEmployer)
	if !ok {
		return
	}

	appID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
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

	job, err := s.db.GetJobByID(r.Context(), app.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil || job.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "Application belongs to another employer's job")
		return
	}

	scored, err := s.ats.CalculateFit(r.Context(), appID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, newFitScoreResponse(scored.Fit))
}

// handleRankedApplications returns a job's applications ordered by fit
// index descending, refreshing every score first so the ranking reflects
// the current job requirements.
func (s *Server) handleRankedApplications(w http.ResponseWriter, r *http.Request) {
	job := s.loadOwnedJob(w, r)
	if job == nil {
		return
	}

	opts := ats.RankOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  parseQueryInt(r, "limit", 50, 100),
		Offset: parseQueryInt(r, "offset", 0, 0),
	}

	scored, total, err := s.ats.RankApplications(r.Context(), job.ID, opts)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ranked := make([]rankedApplication, 0, len(scored))
	for i, sa := range scored {
		ranked = append(ranked, rankedApplication{
			Rank:        opts.Offset + i + 1,
			Application: sa.Application,
			Fit:         newFitScoreResponse(sa.Fit),
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": ranked,
		"total":        total,
		"limit":        opts.Limit,
		"offset":       opts.Offset,
	})
}

// handleExportApplications streams the full ranked applicant list for a job
// as an Excel workbook.
func (s *Server) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	job := s.loadOwnedJob(w, r)
	if job == nil {
		return
	}

	if format := r.URL.Query().Get("format"); format != "" && format != "xlsx" {
		s.errorResponse(w, http.StatusBadRequest, "Only xlsx export is supported")
		return
	}

	scored, err := s.ats.RankAll(r.Context(), job.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rows := make([]export.Row, 0, len(scored))
	labels := make(map[uuid.UUID]string)
	for i, sa := range scored {
		app := sa.Application
		label, cached := labels[app.CandidateID]
		if !cached {
			label, err = s.candidateLabel(r, app.CandidateID)
			if err != nil {
				s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
				return
			}
			labels[app.CandidateID] = label
		}
		rows = append(rows, export.Row{
			Rank:      i + 1,
			Candidate: label,
			Status:    app.Status,
			AppliedAt: app.AppliedAt,
			Fit:       sa.Fit,
		})
	}

	filename := fmt.Sprintf("applications-%s.xlsx", job.ID)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	meta := export.Meta{JobTitle: job.Title, GeneratedAt: time.Now()}
	if err := export.WriteWorkbook(w, meta, rows); err != nil {
		// Headers are already sent; log and give up on this response.
		s.logger.Error("failed to write export workbook", "job_id", job.ID, "error", err)
	}
}

// candidateLabel resolves a display label for a candidate: the account
// email, with the profile headline appended when present.
func (s *Server) candidateLabel(r *http.Request, candidateID uuid.UUID) (string, error) {
	profile, err := s.db.GetCandidateProfileByID(r.Context(), candidateID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return candidateID.String(), nil
	}

	user, err := s.db.GetUserByID(r.Context(), profile.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return candidateID.String(), nil
	}

	if profile.Headline != "" {
		return fmt.Sprintf("%s (%s)", user.Email, profile.Headline), nil
	}
	return user.Email, nil
}

// handleJobAnalytics returns the application funnel and fit statistics for
// a job.
func (s *Server) handleJobAnalytics(w http.ResponseWriter, r *http.Request) {
	job := s.loadOwnedJob(w, r)
	if job == nil {
		return
	}

	analytics, err := s.ats.Analytics(r.Context(), job.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analytics)
}
