package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"microStepsAPI/internal/types/habit"
)

// MemoryBackend keeps the blob in process memory. It is the fallback when no
// durable backend can be opened, and the fake used by tests. Unavailable
// simulates a missing storage backend.
type MemoryBackend struct {
	mu          sync.Mutex
	blob        []byte
	SaveCount   int
	Unavailable bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Save(ctx context.Context, state *habit.StoreState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return fmt.Errorf("memory backend unavailable")
	}

	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	m.blob = blob
	m.SaveCount++
	return nil
}

func (m *MemoryBackend) Load(ctx context.Context) (*habit.StoreState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, false, fmt.Errorf("memory backend unavailable")
	}
	if m.blob == nil {
		return nil, false, nil
	}

	state := &habit.StoreState{}
	if err := json.Unmarshal(m.blob, state); err != nil {
		return nil, false, fmt.Errorf("failed to parse state: %w", err)
	}
	return state, true, nil
}

func (m *MemoryBackend) Ping(ctx context.Context) error {
	if m.Unavailable {
		return fmt.Errorf("memory backend unavailable")
	}
	return nil
}

func (m *MemoryBackend) Close() {}
