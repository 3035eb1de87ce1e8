package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dealerpulse/internal/repository"
	"dealerpulse/internal/service"
	"dealerpulse/internal/transport/rest/middleware"
)

// ActionHandler handles improvement-action endpoints
type ActionHandler struct {
	assessmentSvc *service.AssessmentService
	actionRepo    repository.ActionRepo
}

// NewActionHandler creates a new action handler
func NewActionHandler(assessmentSvc *service.AssessmentService, actionRepo repository.ActionRepo) *ActionHandler {
	return &ActionHandler{
		assessmentSvc: assessmentSvc,
		actionRepo:    actionRepo,
	}
}

// ownsAssessment verifies the caller's organization owns the assessment.
// Foreign and missing assessments are indistinguishable to the caller.
func (h *ActionHandler) ownsAssessment(w http.ResponseWriter, r *http.Request, id string) bool {
	assessment, err := h.assessmentSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return false
	}
	if assessment == nil || assessment.OrganizationID != middleware.GetOrgID(r.Context()) {
		writeError(w, http.StatusNotFound, "assessment not found")
		return false
	}
	return true
}

// ListByAssessment handles GET /v1/assessments/{id}/actions
func (h *ActionHandler) ListByAssessment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.ownsAssessment(w, r, id) {
		return
	}

	actions, err := h.actionRepo.GetByAssessment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"actions": actions,
		"count":   len(actions),
	})
}

// Generate handles POST /v1/assessments/{id}/actions/generate. Safe to call
// repeatedly: an assessment that already has actions reports zero generated.
func (h *ActionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.ownsAssessment(w, r, id) {
		return
	}

	result, err := h.assessmentSvc.Regenerate(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
