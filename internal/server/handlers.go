package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/server/middleware"
	"github.com/hireflux/ats-service/internal/types"
)

// writeJSON writes a JSON response without access to the server logger.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error JSON response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseQueryInt parses an integer query parameter with a default value.
// maxValue of 0 means no upper bound.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// authUser returns the authenticated user's ID and role. It writes a 401
// response and returns ok=false when the request carries no identity.
func (s *Server) authUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, types.Role, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, "", false
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, "", false
	}
	return userID, types.Role(role), true
}

// requireRole ensures the authenticated user has the given role. It writes
// a 403 response and returns ok=false on mismatch.
func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, role types.Role) (uuid.UUID, bool) {
	userID, actual, ok := s.authUser(w, r)
	if !ok {
		return uuid.Nil, false
	}
	if actual != role {
		s.errorResponse(w, http.StatusForbidden, string(role)+" role required")
		return uuid.Nil, false
	}
	return userID, true
}
