package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"microStepsAPI/internal/types/habit"
	"microStepsAPI/services"
)

type InsightsHandler struct {
	insightService *services.InsightService
}

func NewInsightsHandler(insightService *services.InsightService) *InsightsHandler {
	return &InsightsHandler{
		insightService: insightService,
	}
}

// POST /api/v1/insights
// The generator call can be slow, so this gets a longer deadline than the
// store-only handlers.
func (h *InsightsHandler) GetAIInsights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req habit.InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.HabitID == "" || req.HabitName == "" {
		respondWithError(w, http.StatusBadRequest, "habitId and habitName are required")
		return
	}

	result := h.insightService.GetAIInsights(ctx, req.HabitID, req.HabitName)
	respondWithJSON(w, http.StatusOK, result)
}
