package server

import (
	"encoding/json"
	"net/http"

	"github.com/hireflux/ats-service/internal/types"
)

// handleGenerateCoverLetter drafts a cover letter for the authenticated job
// seeker. Output comes from the configured generator; the response names
// its source so callers can tell template output from LLM output.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, types.RoleJobSeeker); !ok {
		return
	}

	var req types.GenerateCoverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp, err := s.generator.CoverLetter(r.Context(), &req)
	if err != nil {
		s.logger.Error("cover letter generation failed", "error", err)
		s.errorResponse(w, http.StatusBadGateway, "Generation failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateJobDescription drafts a job description for the
// authenticated employer from structured posting fields.
func (s *Server) handleGenerateJobDescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, types.RoleEmployer); !ok {
		return
	}

	var req types.GenerateJobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp, err := s.generator.JobDescription(r.Context(), &req)
	if err != nil {
		s.logger.Error("job description generation failed", "error", err)
		s.errorResponse(w, http.StatusBadGateway, "Generation failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
