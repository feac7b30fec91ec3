package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator validates against a fixed token table.
type fakeValidator struct {
	tokens map[string]*fakeClaims
}

func newFakeValidator() *fakeValidator {
	return &fakeValidator{tokens: make(map[string]*fakeClaims)}
}

func (v *fakeValidator) issue(token string, userID uuid.UUID, role string) {
	v.tokens[token] = &fakeClaims{userID: userID, role: role}
}

func (v *fakeValidator) ValidateToken(tokenString string) (ClaimsGetter, error) {
	claims, ok := v.tokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

type fakeClaims struct {
	userID uuid.UUID
	role   string
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }
func (c *fakeClaims) GetRole() string      { return c.role }

// identitySpy wraps a next-handler that records the identity the middleware
// injected into the request context.
type identitySpy struct {
	called bool
	userID uuid.UUID
	role   string
}

func (s *identitySpy) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.called = true
		var err error
		s.userID, err = GetUserID(r)
		require.NoError(t, err)
		s.role, err = GetRole(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newFakeValidator()
	userID := uuid.New()
	validator.issue("valid-test-token", userID, "employer")

	spy := &identitySpy{}
	wrapped := AuthMiddleware(validator)(spy.handler(t))

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer valid-test-token")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, spy.called)
	assert.Equal(t, userID, spy.userID)
	assert.Equal(t, "employer", spy.role)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	validator := newFakeValidator()
	validator.issue("token-123", uuid.New(), "job_seeker")

	for _, prefix := range []string{"Bearer", "bearer", "BEARER", "BeArEr"} {
		t.Run(prefix, func(t *testing.T) {
			spy := &identitySpy{}
			wrapped := AuthMiddleware(validator)(spy.handler(t))

			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			req.Header.Set("Authorization", prefix+" token-123")
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, spy.called)
		})
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	validator := newFakeValidator()
	validator.issue("good-token", uuid.New(), "employer")

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "missing Bearer prefix", authHeader: "good-token"},
		{name: "Bearer without token", authHeader: "Bearer"},
		{name: "Bearer with empty token", authHeader: "Bearer "},
		{name: "wrong scheme", authHeader: "Basic good-token"},
		{name: "unknown token", authHeader: "Bearer forged-token"},
		{name: "malformed jwt", authHeader: "Bearer not.a.valid.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &identitySpy{}
			wrapped := AuthMiddleware(validator)(spy.handler(t))

			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, spy.called, "handler must not run without valid identity")
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)

	got, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
	assert.Contains(t, err.Error(), "user ID not found")
}

func TestGetUserID_WrongType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	got, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestGetRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req = req.WithContext(context.WithValue(req.Context(), roleKey, "employer"))

	got, err := GetRole(req)
	require.NoError(t, err)
	assert.Equal(t, "employer", got)
}

func TestGetRole_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)

	got, err := GetRole(req)
	assert.Error(t, err)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "role not found")
}
