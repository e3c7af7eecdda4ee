package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/types/habit"
	"microStepsAPI/services"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// GET /api/v1/habits
func (h *HabitHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	habits := h.habitService.GetHabitsWithProgress(ctx)
	respondWithJSON(w, http.StatusOK, habits)
}

// POST /api/v1/habits
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req habit.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	newHabit, err := h.habitService.AddHabit(ctx, &req)
	if err != nil {
		if errors.Is(err, habitstore.ErrEmptyName) {
			respondWithError(w, http.StatusBadRequest, "Habit name cannot be empty.")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, newHabit)
}

// PUT /api/v1/habits/{habitID}
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	habitID := mux.Vars(r)["habitID"]

	var req habit.UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.habitService.UpdateHabit(ctx, habitID, &req)
	if err != nil {
		if errors.Is(err, habitstore.ErrEmptyName) {
			respondWithError(w, http.StatusBadRequest, "Habit name cannot be empty.")
			return
		}
		if errors.Is(err, habitstore.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Habit not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/habits/{habitID}
// Deleting an unknown habit is a no-op, so this always succeeds.
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	habitID := mux.Vars(r)["habitID"]
	h.habitService.DeleteHabit(ctx, habitID)

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

// POST /api/v1/habits/{habitID}/toggle
func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	habitID := mux.Vars(r)["habitID"]

	var req habit.ToggleCompletionRequest
	if r.Body != nil {
		// An empty body means "toggle today".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	completed := h.habitService.ToggleCompletion(ctx, habitID, req.Date)
	respondWithJSON(w, http.StatusOK, habit.ToggleCompletionResponse{Completed: completed})
}

// GET /api/v1/habits/{habitID}/completions
func (h *HabitHandler) GetCompletions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	habitID := mux.Vars(r)["habitID"]
	completions := h.habitService.GetCompletions(ctx, habitID)

	respondWithJSON(w, http.StatusOK, completions)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
