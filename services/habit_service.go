package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/types/habit"
	"microStepsAPI/utils"
)

const (
	noDataMessage = "No data to export."
	csvHeader     = "Habit Name,Date,Completed\n"
)

type HabitService struct {
	store *habitstore.Store
}

func NewHabitService(store *habitstore.Store) *HabitService {
	return &HabitService{store: store}
}

func (s *HabitService) AddHabit(ctx context.Context, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	return s.store.AddHabit(ctx, req.Name, req.ReminderTime)
}

func (s *HabitService) UpdateHabit(ctx context.Context, habitID string, req *habit.UpdateHabitRequest) (*habit.Habit, error) {
	return s.store.UpdateHabit(ctx, habitID, req.Name, req.ReminderTime)
}

func (s *HabitService) DeleteHabit(ctx context.Context, habitID string) {
	s.store.DeleteHabit(ctx, habitID)
}

// ToggleCompletion flips the completion for the given date, defaulting to
// today when the date is omitted.
func (s *HabitService) ToggleCompletion(ctx context.Context, habitID, date string) bool {
	if date == "" {
		date = utils.TodayDateString()
	}
	return s.store.ToggleCompletion(ctx, habitID, date)
}

func (s *HabitService) GetCompletions(ctx context.Context, habitID string) []habit.Completion {
	completions := s.store.CompletionsFor(ctx, habitID)
	if completions == nil {
		completions = []habit.Completion{}
	}
	return completions
}

// GetHabitsWithProgress joins every habit with today's completion flag, this
// week's completions and its full history. Linear scans are fine at this
// scale.
func (s *HabitService) GetHabitsWithProgress(ctx context.Context) []habit.HabitWithProgress {
	habits := s.store.ListHabits(ctx)
	today := utils.TodayDateString()
	now := time.Now()

	result := make([]habit.HabitWithProgress, 0, len(habits))
	for _, h := range habits {
		_, completedToday := s.store.CompletionOn(ctx, h.ID, today)
		weekly := s.store.WeeklyCompletions(ctx, h.ID, now)
		if weekly == nil {
			weekly = []habit.Completion{}
		}
		all := s.store.CompletionsFor(ctx, h.ID)
		if all == nil {
			all = []habit.Completion{}
		}
		result = append(result, habit.HabitWithProgress{
			Habit:             h,
			CompletionsToday:  completedToday,
			WeeklyCompletions: weekly,
			AllCompletions:    all,
		})
	}
	return result
}

// ExportCSV renders the full completion history. Every habit appears at
// least once: habits with no completions get an explicit N/A,No row. The
// Completed column uses Yes/No literals.
func (s *HabitService) ExportCSV(ctx context.Context) string {
	habits := s.store.ListHabits(ctx)
	rows := s.store.AllCompletionsWithHabitNames(ctx)

	if len(rows) == 0 && len(habits) == 0 {
		return noDataMessage
	}

	var b strings.Builder
	b.WriteString(csvHeader)

	hasCompletions := make(map[string]bool)
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `"%s",%s,Yes`, escapeQuotes(row.HabitName), row.Date)
		hasCompletions[row.HabitID] = true
	}

	for _, h := range habits {
		if hasCompletions[h.ID] {
			continue
		}
		if b.Len() > len(csvHeader) {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `"%s",N/A,No`, escapeQuotes(h.Name))
	}

	csv := b.String()
	if csv == csvHeader {
		return noDataMessage
	}
	return csv
}

func escapeQuotes(name string) string {
	return strings.ReplaceAll(name, `"`, `""`)
}
