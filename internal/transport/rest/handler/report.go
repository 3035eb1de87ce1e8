package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"dealerpulse/internal/service"
	"dealerpulse/internal/transport/rest/middleware"
)

// ReportHandler handles scorecard endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetScorecard handles GET /v1/assessments/{id}/scorecard
func (h *ReportHandler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	scorecard, err := h.reportSvc.GetScorecard(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scorecard == nil || scorecard.OrganizationID != middleware.GetOrgID(r.Context()) {
		writeError(w, http.StatusNotFound, "scorecard not found")
		return
	}

	writeJSON(w, http.StatusOK, scorecard)
}

// ExportScorecard handles GET /v1/assessments/{id}/scorecard/export
func (h *ReportHandler) ExportScorecard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	f, err := h.reportSvc.ExportScorecard(r.Context(), id, middleware.GetOrgID(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scorecard-%s.xlsx"`, id))
	if err := f.Write(w); err != nil {
		// Headers already sent; log-worthy but nothing to return
		return
	}
}
