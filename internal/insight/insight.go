package insight

import "context"

// Generator turns a habit's completion history into a short motivational tip.
// completionData is a comma-separated list of YYYY-MM-DD dates.
type Generator interface {
	GenerateTips(ctx context.Context, habitName, completionData string) (string, error)
}
