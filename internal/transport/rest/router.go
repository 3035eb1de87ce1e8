package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"dealerpulse/internal/repository"
	"dealerpulse/internal/service"
	"dealerpulse/internal/transport/rest/handler"
	"dealerpulse/internal/transport/rest/middleware"
	"dealerpulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	ActionRepo        repository.ActionRepo
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	actionHandler := handler.NewActionHandler(c.AssessmentService, c.ActionRepo)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// WebSocket routes (org id in path)
	v1.HandleFunc("/ws/orgs/{orgId}/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Org-scoped routes
	orgRoutes := v1.NewRoute().Subrouter()
	orgRoutes.Use(middleware.RequireOrg)

	orgRoutes.HandleFunc("/assessments", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	orgRoutes.HandleFunc("/assessments/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	orgRoutes.HandleFunc("/assessments/{id}/scorecard", reportHandler.GetScorecard).Methods("GET", "OPTIONS")
	orgRoutes.HandleFunc("/assessments/{id}/scorecard/export", reportHandler.ExportScorecard).Methods("GET", "OPTIONS")
	orgRoutes.HandleFunc("/assessments/{id}/actions", actionHandler.ListByAssessment).Methods("GET", "OPTIONS")
	orgRoutes.HandleFunc("/assessments/{id}/actions/generate", actionHandler.Generate).Methods("POST", "OPTIONS")
	orgRoutes.HandleFunc("/organizations/{orgId}/assessments", assessmentHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, X-Org-ID"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
