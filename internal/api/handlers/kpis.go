package handlers

import (
	"fmt"
	"net/http"
	"supplychain-service/internal/api/dto"
	"supplychain-service/internal/services"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type KPIHandler struct {
	Svc *services.KPIService
	// Now dates the export filename.
	Now func() time.Time
}

func (h *KPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	k, err := h.Svc.Compute(r.Context())
	if err != nil {
		writeServiceError(w, r, "compute kpis", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewKPIResponse(k))
}

// Export downloads the KPI report as dashboard-report-YYYY-MM-DD.csv.
func (h *KPIHandler) Export(w http.ResponseWriter, r *http.Request) {
	csv, err := h.Svc.ExportCSV(r.Context())
	if err != nil {
		writeServiceError(w, r, "export kpis", err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	name := fmt.Sprintf("dashboard-report-%s.csv", now().Format(dto.DateLayout))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		zap.L().Warn("write kpi export failed",
			zap.String("req_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
}
