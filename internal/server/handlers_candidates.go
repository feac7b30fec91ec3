package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/resume"
	"github.com/hireflux/ats-service/internal/types"
)

// handleUpsertCandidate creates or replaces the authenticated job seeker's
// profile. Each user has at most one profile.
func (s *Server) handleUpsertCandidate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireRole(w, r, types.RoleJobSeeker)
	if !ok {
		return
	}

	var req types.UpsertCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	profile, err := s.db.UpsertCandidateProfile(r.Context(), userID, candidateInput(&req))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetCandidate retrieves a candidate profile by ID. Visible to the
// owning job seeker and to employers reviewing applications.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.authUser(w, r)
	if !ok {
		return
	}

	profileID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	profile, err := s.db.GetCandidateProfileByID(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate profile not found")
		return
	}
	if profile.UserID != userID && role != types.RoleEmployer {
		s.errorResponse(w, http.StatusForbidden, "Profile belongs to another candidate")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateCandidate replaces the profile with the given ID. Only the
// owning job seeker may update it.
func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireRole(w, r, types.RoleJobSeeker)
	if !ok {
		return
	}

	profileID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	profile, err := s.db.GetCandidateProfileByID(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate profile not found")
		return
	}
	if profile.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "Profile belongs to another candidate")
		return
	}

	var req types.UpsertCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.db.UpsertCandidateProfile(r.Context(), userID, candidateInput(&req))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleUploadResume accepts a .docx resume upload for the candidate
// profile in the path, extracts its text, and suggests skills found in it.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireRole(w, r, types.RoleJobSeeker)
	if !ok {
		return
	}

	profileID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	profile, err := s.db.GetCandidateProfileByID(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate profile not found")
		return
	}
	if profile.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "Profile belongs to another candidate")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, resume.MaxDocxSize+1024)
	if err := r.ParseMultipartForm(resume.MaxDocxSize); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Resume upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file form field is required")
		return
	}
	defer file.Close()

	if header.Size > resume.MaxDocxSize {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Resume exceeds the 5 MB limit")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".docx") {
		s.errorResponse(w, http.StatusUnsupportedMediaType, "Only .docx resumes are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	text, err := resume.ExtractDocxText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to extract resume text: "+err.Error())
		return
	}
	skills := resume.SuggestSkills(text)

	rec, err := s.db.CreateResume(r.Context(), &db.ResumeCreateInput{
		CandidateID:     profile.ID,
		Filename:        header.Filename,
		ContentType:     resume.DocxContentType,
		SizeBytes:       int64(len(data)),
		TextContent:     text,
		ExtractedSkills: skills,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"resume":           rec,
		"suggested_skills": skills,
	})
}

func candidateInput(req *types.UpsertCandidateRequest) *db.CandidateProfileInput {
	return &db.CandidateProfileInput{
		Headline:              req.Headline,
		Skills:                req.Skills,
		YearsExperience:       req.YearsExperience,
		Location:              req.Location,
		PreferredLocationType: req.PreferredLocationType,
		ExpectedSalaryMin:     req.ExpectedSalaryMin,
		ExpectedSalaryMax:     req.ExpectedSalaryMax,
		AvailabilityStatus:    req.AvailabilityStatus,
	}
}
