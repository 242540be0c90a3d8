package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fitdesk/nutrition-hub/internal/auth"
	"github.com/fitdesk/nutrition-hub/internal/availability"
	"github.com/fitdesk/nutrition-hub/internal/blob"
	"github.com/fitdesk/nutrition-hub/internal/config"
	"github.com/fitdesk/nutrition-hub/internal/dietplans"
	"github.com/fitdesk/nutrition-hub/internal/dietrequests"
	"github.com/fitdesk/nutrition-hub/internal/drafts"
	"github.com/fitdesk/nutrition-hub/internal/reports"
	"github.com/fitdesk/nutrition-hub/internal/sessions"
	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/fitdesk/nutrition-hub/internal/storage/memory"
	"github.com/fitdesk/nutrition-hub/internal/storage/postgres"
	"github.com/fitdesk/nutrition-hub/internal/templates"
)

// Server is the HTTP server wiring config, storage and handlers together.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks Postgres when DATABASE_URL is configured, with an
// in-memory fallback so local development works without a database.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("WARN storage: PostgreSQL connection failed: %v", err)
		log.Println("WARN storage: falling back to in-memory storage")
		s.storage = memory.New()
		return
	}
	log.Println("INFO storage: PostgreSQL connected")
	s.storage = pgStorage
}

func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Diet plan requests API
	requestsHandler := dietrequests.NewHandler(dietrequests.NewService(s.storage))
	s.mux.HandleFunc("GET /v1/diet-requests", requestsHandler.HandleList)
	s.mux.HandleFunc("GET /v1/diet-requests/{id}", requestsHandler.HandleGet)
	s.mux.HandleFunc("PATCH /v1/diet-requests/{id}", requestsHandler.HandleUpdate)

	// Diet plans API
	plansHandler := dietplans.NewHandler(dietplans.NewService(s.storage))
	s.mux.HandleFunc("GET /v1/diet-plans", plansHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/diet-plans", plansHandler.HandleReplace)

	// PDF export
	reportsHandler := reports.NewHandler(reports.NewGenerator(s.storage, s.storage))
	// {file} instead of a literal export.pdf: a literal segment here would
	// conflict with the drafts pattern below at mux registration time.
	s.mux.HandleFunc("GET /v1/diet-plans/{requestID}/{file}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("file") != "export.pdf" {
			http.NotFound(w, r)
			return
		}
		reportsHandler.HandleExportPDF(w, r)
	})

	// Wizard drafts API (dual sink: remote record + local snapshot)
	draftStore, draftMode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: %v", err)
	}
	log.Printf("INFO blob: draft store mode=%s", draftMode)
	draftsHandler := drafts.NewHandler(drafts.NewService(draftStore, s.storage))
	s.mux.HandleFunc("GET /v1/diet-plans/drafts/{requestID}", draftsHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/diet-plans/drafts/{requestID}", draftsHandler.HandleSave)
	s.mux.HandleFunc("DELETE /v1/diet-plans/drafts/{requestID}", draftsHandler.HandleClear)

	// Meal plan templates API
	templatesHandler := templates.NewHandler(templates.NewService(s.storage))
	s.mux.HandleFunc("GET /v1/templates", templatesHandler.HandleList)
	s.mux.HandleFunc("POST /v1/templates", templatesHandler.HandleCreate)

	// Availability API
	availabilityService := availability.NewService(s.storage, s.storage, s.config.DefaultSlotMinutes, s.config.ScheduleMaxRangeDays)
	availabilityHandler := availability.NewHandler(availabilityService)
	s.mux.HandleFunc("GET /v1/availability", availabilityHandler.HandleGetRules)
	s.mux.HandleFunc("PUT /v1/availability", availabilityHandler.HandleReplaceRules)
	s.mux.HandleFunc("GET /v1/availability/slots", availabilityHandler.HandleGetSlots)
	s.mux.HandleFunc("GET /v1/availability/schedule", availabilityHandler.HandleGetSchedule)
	s.mux.HandleFunc("POST /v1/availability/blocks", availabilityHandler.HandleCreateBlock)
	s.mux.HandleFunc("DELETE /v1/availability/blocks/{id}", availabilityHandler.HandleDeleteBlock)

	// Session requests API
	sessionsHandler := sessions.NewHandler(sessions.NewService(s.storage))
	s.mux.HandleFunc("GET /v1/session-requests", sessionsHandler.HandleList)
	s.mux.HandleFunc("PATCH /v1/session-requests/{id}", sessionsHandler.HandleUpdate)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler returns the full middleware chain: CORS -> rate limit -> auth -> router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("INFO server: listening on http://localhost%s", addr)
	log.Printf("INFO server: health check at http://localhost%s/healthz", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close releases storage resources.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
