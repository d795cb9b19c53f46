// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
)

// maxBodyBytes caps request bodies; resume text is small but pasted
// documents can carry a lot of whitespace.
const maxBodyBytes = 2 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       db.HistoryStore
	renderer    *rendering.Renderer
	generator   *generation.Generator
	llmClient   llm.Client
	documents   *storage.DocumentStore
	tokens      middleware.TokenValidator
	rateLimiter *ratelimit.Limiter
	verbose     bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	PDFTimeout  time.Duration
	Verbose     bool
}

// Deps are the collaborators behind the API. Nil fields disable the
// routes that need them.
type Deps struct {
	Store       db.HistoryStore
	Renderer    *rendering.Renderer
	Generator   *generation.Generator
	Documents   *storage.DocumentStore
	Tokens      middleware.TokenValidator
	RateLimiter *ratelimit.Limiter
	Verbose     bool
}

// New creates a new server instance, connecting whatever backing services
// the environment configures.
func New(cfg Config) (*Server, error) {
	deps := Deps{
		Renderer:    rendering.NewRenderer(rendering.NewChromePrinter(cfg.PDFTimeout, cfg.Verbose)),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Verbose:     cfg.Verbose,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.Store = database
	} else {
		log.Printf("[server] DATABASE_URL not set, resume history is disabled")
	}

	var client llm.Client
	if cfg.APIKey != "" {
		c, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
		deps.Generator = generation.NewGenerator(client, cfg.Verbose)
	} else {
		log.Printf("[server] GEMINI_API_KEY not set, generation is disabled")
	}

	if storageCfg := storage.ConfigFromEnv(); storageCfg.Enabled() {
		documents, err := storage.New(context.Background(), storageCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure object storage: %w", err)
		}
		deps.Documents = documents
	}

	if jwtConfig, err := config.NewJWTConfig(); err == nil {
		deps.Tokens = NewJWTService(jwtConfig).AsTokenValidator()
	} else {
		log.Printf("[server] %v, authenticated routes are disabled", err)
	}

	s := NewWithDeps(deps)
	s.llmClient = client
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export and generation are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// NewWithDeps wires a server around already constructed collaborators.
func NewWithDeps(deps Deps) *Server {
	s := &Server{
		store:       deps.Store,
		renderer:    deps.Renderer,
		generator:   deps.Generator,
		documents:   deps.Documents,
		tokens:      deps.Tokens,
		rateLimiter: deps.RateLimiter,
		verbose:     deps.Verbose,
	}
	if s.renderer == nil {
		s.renderer = rendering.NewRenderer(nil)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stateless document endpoints
	mux.HandleFunc("POST /v1/assemble", s.handleAssemble)
	mux.HandleFunc("POST /v1/render", s.handleRender)
	mux.HandleFunc("POST /v1/cover-letter", s.handleCoverLetter)

	// Resume history
	mux.Handle("GET /v1/resumes", s.authenticated(s.handleListResumes))
	mux.Handle("POST /v1/resumes", s.authenticated(s.handleCreateResume))
	mux.Handle("GET /v1/resumes/{id}", s.authenticated(s.handleGetResume))
	mux.Handle("PUT /v1/resumes/{id}", s.authenticated(s.handleUpdateResume))
	mux.Handle("DELETE /v1/resumes/{id}", s.authenticated(s.handleDeleteResume))
	mux.Handle("GET /v1/resumes/{id}/data", s.authenticated(s.handleResumeData))
	mux.Handle("GET /v1/resumes/{id}/export", s.authenticated(s.handleExportResume))
	mux.Handle("POST /v1/resumes/{id}/upload", s.authenticated(s.handleUploadResume))

	// Completion service
	mux.Handle("POST /v1/generate", s.authenticated(s.handleGenerate))
	mux.Handle("POST /v1/autofill", s.authenticated(s.handleAutofill))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] Server error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("[server] Stopped")
	return nil
}

// Close releases the server's collaborators.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("[server] Failed to close LLM client: %v", err)
		}
	}
}

// authenticated wraps h with bearer-token authentication. Without a token
// validator the route reports itself unavailable.
func (s *Server) authenticated(h http.HandlerFunc) http.Handler {
	if s.tokens == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.writeError(w, &ErrUnavailable{Feature: "authentication"})
		})
	}
	return middleware.AuthMiddleware(s.tokens)(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status and the optional features
// this instance has configured.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"features": map[string]bool{
			"history":    s.store != nil,
			"generation": s.generator != nil,
			"storage":    s.documents != nil,
			"auth":       s.tokens != nil,
		},
	})
}

// decodeJSON reads a size-limited JSON body into v and runs its validator.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return v.Validate()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err onto a status code. Server faults are logged and
// reported without internal detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch status := HTTPStatus(err); status {
	case http.StatusInternalServerError:
		log.Printf("[server] %v", err)
		s.errorResponse(w, status, "internal server error")
	case http.StatusBadGateway:
		log.Printf("[server] %v", err)
		s.errorResponse(w, status, "completion service failed")
	default:
		s.errorResponse(w, status, err.Error())
	}
}

// extractClientID returns the client IP from RemoteAddr. X-Forwarded-For is
// ignored because it cannot be trusted without a known proxy.
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
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Round(time.Second).Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
