package persist

import (
	"context"

	"microStepsAPI/internal/types/habit"
)

// Storage keys shared by all backends. One blob under one key, schema v1.
const (
	StateKey      = "currentState"
	StoreTable    = "store"
	SchemaVersion = 1
)

// Backend durably persists exactly one serialized StoreState blob. Load
// reports absent=false both when nothing was ever saved and when the backend
// is unavailable; callers treat the two the same way.
type Backend interface {
	Save(ctx context.Context, state *habit.StoreState) error
	Load(ctx context.Context) (*habit.StoreState, bool, error)
	Ping(ctx context.Context) error
	Close()
}
