// services/cleanup_service.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// MessageCleaner deletes chat messages. Implemented by the gateway HTTP
// client in production and by fakes in tests.
type MessageCleaner interface {
	DeleteMessages(chatID int64, messageIDs []int) error
}

// CleanupService schedules fire-once deletion of card messages after a
// draw. A job captures only the chat/message IDs and the time it was
// scheduled — never the configuration. Enabled state and delay are re-read
// from ChatConfig when the job fires, so disabling auto-delete (or changing
// the delay) after scheduling still takes effect.
//
// The whole path is best-effort: failures are logged and swallowed, and
// never touch ledger or clan state.
type CleanupService struct {
	Chats   *ChatConfigService
	Cleaner MessageCleaner

	sched gocron.Scheduler
}

func NewCleanupService(chats *ChatConfigService, cleaner MessageCleaner) (*CleanupService, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()
	return &CleanupService{Chats: chats, Cleaner: cleaner, sched: sched}, nil
}

// Stop shuts the underlying scheduler down; pending jobs are dropped.
func (s *CleanupService) Stop() {
	if err := s.sched.Shutdown(); err != nil {
		log.Printf("[CLEANUP] Scheduler shutdown: %v", err)
	}
}

// Schedule registers deletion of the given messages according to the chat's
// current config. Chats with auto-delete off (or a zero delay) schedule
// nothing, matching how the feature has always behaved.
func (s *CleanupService) Schedule(chatID int64, messageIDs ...int) {
	if len(messageIDs) == 0 {
		return
	}
	cfg, err := s.Chats.Get(chatID)
	if err != nil {
		log.Printf("[CLEANUP] Config lookup failed for chat %d: %v", chatID, err)
		return
	}
	if !cfg.AutoDeleteEnabled || cfg.AutoDeleteMinutes <= 0 {
		return
	}
	s.arm(chatID, messageIDs, time.Now(), time.Duration(cfg.AutoDeleteMinutes)*time.Minute)
}

func (s *CleanupService) arm(chatID int64, messageIDs []int, scheduledAt time.Time, delay time.Duration) {
	_, err := s.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(delay))),
		gocron.NewTask(func() {
			s.fire(chatID, messageIDs, scheduledAt)
		}),
	)
	if err != nil {
		log.Printf("[CLEANUP] Failed to schedule job for chat %d: %v", chatID, err)
	}
}

// fire re-reads the chat config and acts on what it finds *now*. A chat
// that disabled auto-delete since scheduling turns the job into a no-op; a
// delay that grew re-arms the job for the remainder.
func (s *CleanupService) fire(chatID int64, messageIDs []int, scheduledAt time.Time) {
	cfg, err := s.Chats.Get(chatID)
	if err != nil {
		log.Printf("[CLEANUP] Config lookup failed for chat %d: %v", chatID, err)
		return
	}
	if !cfg.AutoDeleteEnabled || cfg.AutoDeleteMinutes <= 0 {
		return
	}

	delay := time.Duration(cfg.AutoDeleteMinutes) * time.Minute
	if remaining := delay - time.Since(scheduledAt); remaining > time.Second {
		s.arm(chatID, messageIDs, scheduledAt, remaining)
		return
	}

	if err := s.Cleaner.DeleteMessages(chatID, messageIDs); err != nil {
		log.Printf("[CLEANUP] Failed to delete %d message(s) in chat %d: %v", len(messageIDs), chatID, err)
	}
}
