package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kedhareswer/interviewai-navigator/internal/agents"
	"github.com/Kedhareswer/interviewai-navigator/internal/blob"
	"github.com/Kedhareswer/interviewai-navigator/internal/config"
	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/evaluation"
	"github.com/Kedhareswer/interviewai-navigator/internal/fetch"
	"github.com/Kedhareswer/interviewai-navigator/internal/ingestion"
	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/orchestration"
	"github.com/Kedhareswer/interviewai-navigator/internal/planning"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/server/middleware"
	"github.com/Kedhareswer/interviewai-navigator/internal/stream"
)

// Config holds server configuration
type Config struct {
	Port              int
	DatabaseURL       string
	APIKey            string
	MaxQuestions      int
	GenerationTimeout int
	BlobDir           string
	UseBrowser        bool
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	llmClient    llm.Client
	hub          *stream.Hub
	orchestrator *orchestration.Orchestrator
	jobAgent     *agents.JobAgent
	ingester     *ingestion.Ingester
	userService  *UserService
	authHandler  *AuthHandler
	jwtService   *JWTService
}

// New creates a new server instance and wires the full interview stack.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmConfig := llm.DefaultConfig()
	if cfg.GenerationTimeout > 0 {
		llmConfig.Timeout = time.Duration(cfg.GenerationTimeout) * time.Second
	}
	llmClient, err := llm.NewClient(context.Background(), llmConfig, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	blobDir := cfg.BlobDir
	if blobDir == "" {
		blobDir = "artifacts"
	}
	blobs, err := blob.NewFSStore(blobDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	retriever := rag.NewPostgresRetriever(database, llmClient)
	registry := agents.NewRegistry(llmClient, retriever)
	planner := planning.New(llmClient, planning.Config{MaxQuestions: cfg.MaxQuestions})
	analyzer := agents.NewCandidateAgent(llmClient, retriever)
	synthesizer := evaluation.NewSynthesizer(llmClient, database)
	hub := stream.NewHub()

	var fetcher fetch.Fetcher = fetch.NewHTTPFetcher()
	if cfg.UseBrowser {
		fetcher = fetch.NewBrowserFetcher()
	}

	s := &Server{
		db:           database,
		llmClient:    llmClient,
		hub:          hub,
		orchestrator: orchestration.New(database, planner, registry, analyzer, synthesizer, hub, blobs),
		jobAgent:     agents.NewJobAgent(llmClient),
		ingester:     ingestion.New(fetcher, llmClient, database),
	}

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

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for SSE streams
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except health and auth requires a
// bearer token; mutating HR operations additionally require the hr role.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	hrOnly := middleware.RequireRole("hr")

	protected := http.NewServeMux()
	hr := func(h http.HandlerFunc) http.Handler { return hrOnly(h) }

	protected.Handle("POST /jobs", hr(s.handleCreateJob))
	protected.HandleFunc("GET /jobs", s.handleListJobs)
	protected.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	protected.Handle("DELETE /jobs/{id}", hr(s.handleDeleteJob))
	protected.Handle("POST /jobs/{id}/normalize", hr(s.handleNormalizeJob))

	protected.Handle("POST /candidates", hr(s.handleCreateCandidate))
	protected.HandleFunc("GET /candidates", s.handleListCandidates)
	protected.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	protected.Handle("DELETE /candidates/{id}", hr(s.handleDeleteCandidate))
	protected.Handle("POST /candidates/{id}/ingest", hr(s.handleIngestCandidate))

	protected.Handle("POST /interviews", hr(s.handleCreateInterview))
	protected.HandleFunc("GET /interviews", s.handleListInterviews)
	protected.HandleFunc("GET /interviews/{id}", s.handleGetInterview)
	protected.HandleFunc("POST /interviews/{id}/start", s.handleStartInterview)
	protected.HandleFunc("POST /interviews/{id}/answer", s.handleSubmitAnswer)
	protected.Handle("POST /interviews/{id}/cancel", hr(s.handleCancelInterview))
	protected.HandleFunc("GET /interviews/{id}/events", s.handleListInterviewEvents)
	protected.Handle("GET /interviews/{id}/evaluation", hr(s.handleGetEvaluation))
	protected.HandleFunc("GET /interviews/{id}/stream", s.handleStreamInterview)

	mux.Handle("/", auth(protected))
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
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

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response with the mapped status code
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
