package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/insight"
	"microStepsAPI/internal/persist"
)

type fakeGenerator struct {
	tips          string
	err           error
	calls         int
	lastHabitName string
	lastData      string
}

func (f *fakeGenerator) GenerateTips(ctx context.Context, habitName, completionData string) (string, error) {
	f.calls++
	f.lastHabitName = habitName
	f.lastData = completionData
	return f.tips, f.err
}

func newTestInsightService(gen insight.Generator) (*InsightService, *habitstore.Store) {
	store := habitstore.New(persist.NewMemoryBackend(), nil)
	return NewInsightService(store, gen), store
}

func TestInsightsWithoutDataSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{tips: "should not be used"}
	svc, store := newTestInsightService(gen)
	ctx := context.Background()

	h, err := store.AddHabit(ctx, "Read", "")
	require.NoError(t, err)

	result := svc.GetAIInsights(ctx, h.ID, h.Name)

	assert.Equal(t, "Not enough data to generate insights. Keep tracking your habit!", result.Insights)
	assert.Empty(t, result.Error)
	assert.Zero(t, gen.calls)
}

func TestInsightsJoinsDatesWithCommas(t *testing.T) {
	gen := &fakeGenerator{tips: "Keep your streak going on Mondays."}
	svc, store := newTestInsightService(gen)
	ctx := context.Background()

	h, err := store.AddHabit(ctx, "Exercise", "")
	require.NoError(t, err)
	store.ToggleCompletion(ctx, h.ID, "2024-07-22")
	store.ToggleCompletion(ctx, h.ID, "2024-07-23")

	result := svc.GetAIInsights(ctx, h.ID, h.Name)

	assert.Equal(t, "Keep your streak going on Mondays.", result.Insights)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Exercise", gen.lastHabitName)
	assert.Equal(t, "2024-07-22,2024-07-23", gen.lastData)
}

func TestInsightsGeneratorFailureMapsToGenericError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream exploded")}
	svc, store := newTestInsightService(gen)
	ctx := context.Background()

	h, err := store.AddHabit(ctx, "Sleep", "")
	require.NoError(t, err)
	store.ToggleCompletion(ctx, h.ID, "2024-07-22")

	result := svc.GetAIInsights(ctx, h.ID, h.Name)

	assert.Empty(t, result.Insights)
	assert.Equal(t, "Failed to generate insights. Please try again later.", result.Error)
	assert.NotContains(t, result.Error, "upstream exploded")
}

func TestInsightsWithoutGeneratorConfigured(t *testing.T) {
	svc, store := newTestInsightService(nil)
	ctx := context.Background()

	h, err := store.AddHabit(ctx, "Stretch", "")
	require.NoError(t, err)
	store.ToggleCompletion(ctx, h.ID, "2024-07-22")

	result := svc.GetAIInsights(ctx, h.ID, h.Name)
	assert.Equal(t, "Failed to generate insights. Please try again later.", result.Error)
}
