// Package server provides the HTTP REST API for the ATS service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireflux/ats-service/internal/ats"
	"github.com/hireflux/ats-service/internal/config"
	"github.com/hireflux/ats-service/internal/db"
	"github.com/hireflux/ats-service/internal/fitindex"
	"github.com/hireflux/ats-service/internal/generate"
	"github.com/hireflux/ats-service/internal/ingest"
	"github.com/hireflux/ats-service/internal/logging"
	"github.com/hireflux/ats-service/internal/server/middleware"
	"github.com/hireflux/ats-service/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	logger      *logging.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	ats         *ats.Service
	importer    *ingest.Importer
	generator   generate.Generator
}

// Config holds server configuration
type Config struct {
	Addr             string
	DatabaseURL      string
	Policy           *fitindex.Policy // nil selects the default scoring policy
	ScoreConcurrency int              // workers for batch fit refreshes; 0 = default
	GeminiAPIKey     string           // empty selects the template generator
	UseBrowser       bool             // headless-browser fallback for job imports
}

// New creates a new server instance
func New(cfg Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:     database,
		logger: logger,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	if cfg.Policy != nil {
		s.ats = ats.NewWithPolicy(database, logger, cfg.Policy)
	} else {
		s.ats = ats.New(database, logger)
	}
	s.ats.SetScoreLimit(cfg.ScoreConcurrency)

	s.importer = ingest.NewImporter(logger, cfg.UseBrowser)

	if cfg.GeminiAPIKey != "" {
		gemini, err := generate.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini generator: %w", err)
		}
		s.generator = gemini
	} else {
		s.generator = generate.NewTemplateGenerator()
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for job imports and exports
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the route table. All routes except health and
// register/login require a valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(h))
	}

	handle("PUT /auth/password", s.handleUpdatePassword)

	// Jobs
	handle("POST /jobs", s.handleCreateJob)
	handle("GET /jobs", s.handleListJobs)
	handle("GET /jobs/{id}", s.handleGetJob)
	handle("PUT /jobs/{id}", s.handleUpdateJob)
	handle("DELETE /jobs/{id}", s.handleDeleteJob)
	handle("POST /jobs/import", s.handleImportJob)

	// Candidate profiles and resumes
	handle("POST /candidates", s.handleUpsertCandidate)
	handle("GET /candidates/{id}", s.handleGetCandidate)
	handle("PUT /candidates/{id}", s.handleUpdateCandidate)
	handle("POST /candidates/{id}/resume", s.handleUploadResume)

	// Applications
	handle("POST /jobs/{id}/applications", s.handleApply)
	handle("GET /applications/{id}", s.handleGetApplication)
	handle("GET /applications/{id}/events", s.handleListApplicationEvents)
	handle("PATCH /applications/{id}/status", s.handleTransitionStatus)

	// ATS scoring and ranking
	handle("POST /ats/applications/{id}/calculate-fit", s.handleCalculateFit)
	handle("GET /ats/jobs/{id}/applications/ranked", s.handleRankedApplications)
	handle("GET /ats/jobs/{id}/applications/export", s.handleExportApplications)
	handle("GET /ats/jobs/{id}/analytics", s.handleJobAnalytics)

	// Generation
	handle("POST /generate/cover-letter", s.handleGenerateCoverLetter)
	handle("POST /generate/job-description", s.handleGenerateJobDescription)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withLogging adds structured request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; deployments behind a trusted
// proxy would read X-Forwarded-For instead.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		"limit", info.Limit,
		"remaining", info.Remaining,
		"reset", info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
