package handlers

import (
	"context"
	"net/http"
	"time"

	"microStepsAPI/services"
)

type ExportHandler struct {
	habitService *services.HabitService
}

func NewExportHandler(habitService *services.HabitService) *ExportHandler {
	return &ExportHandler{
		habitService: habitService,
	}
}

// GET /api/v1/export
func (h *ExportHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	csv := h.habitService.ExportCSV(ctx)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="micro_steps_export.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}
