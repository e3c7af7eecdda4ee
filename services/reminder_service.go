package services

import (
	"context"
	"log"
	"sync"
	"time"

	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/notification"
	"microStepsAPI/utils"
)

// ReminderService checks once a minute for habits whose reminder time has
// arrived and that have not been completed today, and pushes a nudge to every
// registered device. With no push provider it only logs the reminder.
type ReminderService struct {
	store *habitstore.Store
	push  *notification.FCMService

	mu     sync.Mutex
	tokens map[string]bool
}

func NewReminderService(store *habitstore.Store) *ReminderService {
	return &ReminderService{
		store:  store,
		tokens: make(map[string]bool),
	}
}

// SetPushProvider injects the FCM client once credentials are available.
func (s *ReminderService) SetPushProvider(push *notification.FCMService) {
	s.push = push
}

// RegisterDevice records a device token for reminder pushes. Tokens live for
// the process lifetime only.
func (s *ReminderService) RegisterDevice(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
}

func (s *ReminderService) deviceTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		tokens = append(tokens, t)
	}
	return tokens
}

// Start runs the reminder loop until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("ReminderService: stopping")
			return
		case <-ticker.C:
			s.dispatchDueReminders(ctx)
		}
	}
}

func (s *ReminderService) dispatchDueReminders(ctx context.Context) {
	now := time.Now().Format("15:04")
	today := utils.TodayDateString()

	for _, h := range s.store.ListHabits(ctx) {
		if h.ReminderTime == "" || h.ReminderTime != now {
			continue
		}
		if _, done := s.store.CompletionOn(ctx, h.ID, today); done {
			continue
		}

		if s.push == nil {
			log.Printf("ReminderService: reminder due for habit %q (no push provider configured)", h.Name)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := s.push.SendPush(sendCtx, s.deviceTokens(), "Micro Steps", "Time for your habit: "+h.Name, map[string]string{
			"habitId": h.ID,
			"date":    today,
		})
		cancel()
		if err != nil {
			log.Printf("ReminderService: failed to push reminder for habit %s: %v", h.ID, err)
		}
	}
}
