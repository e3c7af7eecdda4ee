package services

import (
	"context"
	"log"
	"strings"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/insight"
	"microStepsAPI/internal/types/habit"
)

const (
	notEnoughDataMessage  = "Not enough data to generate insights. Keep tracking your habit!"
	insightFailureMessage = "Failed to generate insights. Please try again later."
)

type InsightService struct {
	store     *habitstore.Store
	generator insight.Generator
}

// NewInsightService accepts a nil generator; insights then degrade to the
// generic failure message instead of crashing.
func NewInsightService(store *habitstore.Store, generator insight.Generator) *InsightService {
	return &InsightService{store: store, generator: generator}
}

// GetAIInsights joins the habit's completion dates with commas and asks the
// generator for tips. Without any completion data the generator is never
// invoked. Generator failures are logged only; the caller sees a generic
// message.
func (s *InsightService) GetAIInsights(ctx context.Context, habitID, habitName string) *habit.InsightsResponse {
	completions := s.store.CompletionsFor(ctx, habitID)

	dates := make([]string, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	completionData := strings.Join(dates, ",")

	if completionData == "" {
		return &habit.InsightsResponse{Insights: notEnoughDataMessage}
	}

	if s.generator == nil {
		log.Println("InsightService: no generator configured")
		return &habit.InsightsResponse{Error: insightFailureMessage}
	}

	tips, err := s.generator.GenerateTips(ctx, habitName, completionData)
	if err != nil {
		log.Printf("InsightService: error generating insights: %v", err)
		return &habit.InsightsResponse{Error: insightFailureMessage}
	}

	return &habit.InsightsResponse{Insights: tips}
}
