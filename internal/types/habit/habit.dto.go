package habit

type CreateHabitRequest struct {
	Name         string `json:"name" validate:"required"`
	ReminderTime string `json:"reminderTime,omitempty"`
}

type UpdateHabitRequest struct {
	Name         string `json:"name" validate:"required"`
	ReminderTime string `json:"reminderTime,omitempty"`
}

type ToggleCompletionRequest struct {
	Date string `json:"date,omitempty"`
}

type ToggleCompletionResponse struct {
	Completed bool `json:"completed"`
}

type InsightsRequest struct {
	HabitID   string `json:"habitId" validate:"required"`
	HabitName string `json:"habitName" validate:"required"`
}

type InsightsResponse struct {
	Insights string `json:"insights,omitempty"`
	Error    string `json:"error,omitempty"`
}
