package habit

type Habit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"createdAt"`
	ReminderTime string `json:"reminderTime,omitempty"`
}

type Completion struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
}

// StoreState is the full persisted aggregate. Persistence always writes the
// whole thing, there is no per-field merge.
type StoreState struct {
	Habits      []Habit      `json:"habits"`
	Completions []Completion `json:"completions"`
}

type HabitWithProgress struct {
	Habit
	CompletionsToday  bool         `json:"completionsToday"`
	WeeklyCompletions []Completion `json:"weeklyCompletions"`
	AllCompletions    []Completion `json:"allCompletions"`
}

// CompletionRow is the denormalized join used for CSV export. Rows exist only
// for dates a habit was actually completed.
type CompletionRow struct {
	HabitID   string `json:"habitId"`
	HabitName string `json:"habitName"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}
