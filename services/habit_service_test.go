package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/persist"
	"microStepsAPI/internal/types/habit"
)

func newTestHabitService() *HabitService {
	store := habitstore.New(persist.NewMemoryBackend(), nil)
	return NewHabitService(store)
}

func TestExportCSVEmptyStore(t *testing.T) {
	svc := newTestHabitService()

	assert.Equal(t, "No data to export.", svc.ExportCSV(context.Background()))
}

func TestExportCSVHabitWithoutCompletions(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	_, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Meditate"})
	require.NoError(t, err)

	csv := svc.ExportCSV(ctx)
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Habit Name,Date,Completed", lines[0])
	assert.Equal(t, `"Meditate",N/A,No`, lines[1])
}

func TestExportCSVCompletionsAndNARows(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	done, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Run"})
	require.NoError(t, err)
	_, err = svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Sleep early"})
	require.NoError(t, err)

	svc.ToggleCompletion(ctx, done.ID, "2024-07-22")
	svc.ToggleCompletion(ctx, done.ID, "2024-07-23")

	csv := svc.ExportCSV(ctx)
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Habit Name,Date,Completed", lines[0])
	assert.Contains(t, lines, `"Run",2024-07-22,Yes`)
	assert.Contains(t, lines, `"Run",2024-07-23,Yes`)
	assert.Contains(t, lines, `"Sleep early",N/A,No`)
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: `Say "hi", twice`})
	require.NoError(t, err)
	svc.ToggleCompletion(ctx, h.ID, "2024-07-22")

	csv := svc.ExportCSV(ctx)
	assert.Contains(t, csv, `"Say ""hi"", twice",2024-07-22,Yes`)
}

func TestToggleCompletionDefaultsToToday(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Drink water"})
	require.NoError(t, err)

	assert.True(t, svc.ToggleCompletion(ctx, h.ID, ""))

	progress := svc.GetHabitsWithProgress(ctx)
	require.Len(t, progress, 1)
	assert.True(t, progress[0].CompletionsToday)
}

func TestDoubleToggleLeavesHabitIncompleteToday(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Drink water"})
	require.NoError(t, err)

	svc.ToggleCompletion(ctx, h.ID, "")
	svc.ToggleCompletion(ctx, h.ID, "")

	progress := svc.GetHabitsWithProgress(ctx)
	require.Len(t, progress, 1)
	assert.False(t, progress[0].CompletionsToday)
	assert.Empty(t, progress[0].AllCompletions)
}

func TestGetHabitsWithProgressJoinsHistory(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "Read", ReminderTime: "20:00"})
	require.NoError(t, err)

	// Today's completion lands in both weekly and full history
	svc.ToggleCompletion(ctx, h.ID, "")
	// An old completion lands in full history only
	svc.ToggleCompletion(ctx, h.ID, "2000-01-03")

	progress := svc.GetHabitsWithProgress(ctx)
	require.Len(t, progress, 1)

	p := progress[0]
	assert.Equal(t, h.ID, p.ID)
	assert.Equal(t, "20:00", p.ReminderTime)
	assert.True(t, p.CompletionsToday)
	assert.Len(t, p.WeeklyCompletions, 1)
	assert.Len(t, p.AllCompletions, 2)
}

func TestGetHabitsWithProgressEmptySlicesNotNil(t *testing.T) {
	svc := newTestHabitService()
	ctx := context.Background()

	_, err := svc.AddHabit(ctx, &habit.CreateHabitRequest{Name: "New"})
	require.NoError(t, err)

	progress := svc.GetHabitsWithProgress(ctx)
	require.Len(t, progress, 1)
	assert.NotNil(t, progress[0].WeeklyCompletions)
	assert.NotNil(t, progress[0].AllCompletions)
}

func TestUpdateHabitPropagatesNotFound(t *testing.T) {
	svc := newTestHabitService()

	_, err := svc.UpdateHabit(context.Background(), "missing", &habit.UpdateHabitRequest{Name: "X"})
	assert.ErrorIs(t, err, habitstore.ErrNotFound)
}
