package habitstore

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"microStepsAPI/internal/persist"
	"microStepsAPI/internal/types/habit"
	"microStepsAPI/utils"
)

var (
	ErrNotFound  = errors.New("habit not found")
	ErrEmptyName = errors.New("habit name cannot be empty")
)

// DefaultSeedHabits returns the example habits installed on first run. IDs
// are fixed so a fresh install always looks the same; CreatedAt is stamped at
// seed time.
func DefaultSeedHabits() []habit.Habit {
	now := time.Now().Format(time.RFC3339)
	return []habit.Habit{
		{ID: "1", Name: "Wake up on time", CreatedAt: now, ReminderTime: "06:00"},
		{ID: "2", Name: "Exercise for 1 minute", CreatedAt: now, ReminderTime: "06:30"},
		{ID: "3", Name: "Read 10 pages of a book", CreatedAt: now, ReminderTime: "20:00"},
	}
}

// Store holds the full application state in memory and writes it through to
// the persistence backend after every mutation. The mutex serializes each
// read-modify-write-persist cycle, so two rapid toggles cannot lose an
// update. Backend failures are logged and swallowed: the store keeps working
// in memory only.
type Store struct {
	mu          sync.Mutex
	backend     persist.Backend
	seed        []habit.Habit
	initialized bool
	state       habit.StoreState
}

func New(backend persist.Backend, seed []habit.Habit) *Store {
	return &Store{
		backend: backend,
		seed:    seed,
	}
}

// EnsureInitialized loads previously persisted state, or seeds and persists
// the defaults on first-ever use. Safe to call repeatedly; only the first
// call does work.
func (s *Store) EnsureInitialized(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)
}

func (s *Store) initLocked(ctx context.Context) {
	if s.initialized {
		return
	}

	loaded, ok, err := s.backend.Load(ctx)
	if err != nil {
		log.Printf("HabitStore: could not load persisted state, starting in-memory only: %v", err)
	}

	if ok && loaded != nil && len(loaded.Habits) > 0 {
		s.state = *loaded
		log.Printf("HabitStore: initialized from persisted state (%d habits, %d completions)", len(s.state.Habits), len(s.state.Completions))
	} else {
		s.state = habit.StoreState{
			Habits:      append([]habit.Habit(nil), s.seed...),
			Completions: []habit.Completion{},
		}
		s.persistLocked(ctx)
		log.Printf("HabitStore: no persisted state, seeded %d default habits", len(s.state.Habits))
	}
	s.initialized = true
}

// persistLocked writes the full state. Loss of persistence degrades to
// in-memory-only behavior rather than failing the operation.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.backend.Save(ctx, &s.state); err != nil {
		log.Printf("HabitStore: failed to persist state: %v", err)
	}
}

func (s *Store) ListHabits(ctx context.Context) []habit.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	return append([]habit.Habit(nil), s.state.Habits...)
}

func (s *Store) AddHabit(ctx context.Context, name, reminderTime string) (*habit.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	newHabit := habit.Habit{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    time.Now().Format(time.RFC3339),
		ReminderTime: reminderTime,
	}
	s.state.Habits = append(s.state.Habits, newHabit)
	s.persistLocked(ctx)

	return &newHabit, nil
}

func (s *Store) UpdateHabit(ctx context.Context, habitID, name, reminderTime string) (*habit.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	for i := range s.state.Habits {
		if s.state.Habits[i].ID == habitID {
			s.state.Habits[i].Name = name
			s.state.Habits[i].ReminderTime = reminderTime
			updated := s.state.Habits[i]
			s.persistLocked(ctx)
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteHabit removes the habit and every completion that references it.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteHabit(ctx context.Context, habitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	habits := s.state.Habits[:0]
	for _, h := range s.state.Habits {
		if h.ID != habitID {
			habits = append(habits, h)
		}
	}
	s.state.Habits = habits

	completions := s.state.Completions[:0]
	for _, c := range s.state.Completions {
		if c.HabitID != habitID {
			completions = append(completions, c)
		}
	}
	s.state.Completions = completions

	s.persistLocked(ctx)
}

// ToggleCompletion flips the completion for (habitID, date) and reports the
// new state: true when the call inserted a completion, false when it removed
// one. Calling twice restores the original state.
func (s *Store) ToggleCompletion(ctx context.Context, habitID, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	for i, c := range s.state.Completions {
		if c.HabitID == habitID && c.Date == date {
			s.state.Completions = append(s.state.Completions[:i], s.state.Completions[i+1:]...)
			s.persistLocked(ctx)
			return false
		}
	}

	s.state.Completions = append(s.state.Completions, habit.Completion{HabitID: habitID, Date: date})
	s.persistLocked(ctx)
	return true
}

func (s *Store) CompletionsFor(ctx context.Context, habitID string) []habit.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	var result []habit.Completion
	for _, c := range s.state.Completions {
		if c.HabitID == habitID {
			result = append(result, c)
		}
	}
	return result
}

func (s *Store) CompletionOn(ctx context.Context, habitID, date string) (*habit.Completion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	for _, c := range s.state.Completions {
		if c.HabitID == habitID && c.Date == date {
			found := c
			return &found, true
		}
	}
	return nil, false
}

// WeeklyCompletions returns the habit's completions falling in the
// Monday-start week containing ref.
func (s *Store) WeeklyCompletions(ctx context.Context, habitID string, ref time.Time) []habit.Completion {
	weekDates := make(map[string]bool)
	for _, d := range utils.WeekDates(ref) {
		weekDates[d] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	var result []habit.Completion
	for _, c := range s.state.Completions {
		if c.HabitID == habitID && weekDates[c.Date] {
			result = append(result, c)
		}
	}
	return result
}

// AllCompletionsWithHabitNames joins every completion with its habit's name
// for export. Absence of a row means "not completed".
func (s *Store) AllCompletionsWithHabitNames(ctx context.Context) []habit.CompletionRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(ctx)

	names := make(map[string]string, len(s.state.Habits))
	for _, h := range s.state.Habits {
		names[h.ID] = h.Name
	}

	var rows []habit.CompletionRow
	for _, c := range s.state.Completions {
		name, ok := names[c.HabitID]
		if !ok {
			name = "Unknown Habit"
		}
		rows = append(rows, habit.CompletionRow{
			HabitID:   c.HabitID,
			HabitName: name,
			Date:      c.Date,
			Completed: true,
		})
	}
	return rows
}
