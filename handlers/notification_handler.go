package handlers

import (
	"encoding/json"
	"net/http"

	"microStepsAPI/services"
)

type NotificationHandler struct {
	reminderService *services.ReminderService
}

func NewNotificationHandler(reminderService *services.ReminderService) *NotificationHandler {
	return &NotificationHandler{
		reminderService: reminderService,
	}
}

// POST /api/v1/notifications/register-device
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "Device token is required")
		return
	}

	h.reminderService.RegisterDevice(req.Token)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device registered"})
}
