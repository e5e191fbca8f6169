package workers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"card-reward-system/models"
	"card-reward-system/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// BackupWorker periodically snapshots every table to a JSON blob in R2.
// The game state is small (thousands of rows at most), so a full dump per
// run is fine.
type BackupWorker struct {
	DB       *gorm.DB
	Interval time.Duration

	sched gocron.Scheduler
}

func NewBackupWorker(db *gorm.DB, interval time.Duration) *BackupWorker {
	return &BackupWorker{DB: db, Interval: interval}
}

type backupSnapshot struct {
	TakenAt     time.Time           `json:"taken_at"`
	Cards       []models.Card       `json:"cards"`
	Ledgers     []models.UserLedger `json:"ledgers"`
	Clans       []models.Clan       `json:"clans"`
	ChatConfigs []models.ChatConfig `json:"chat_configs"`
	KnownUsers  []models.KnownUser  `json:"known_users"`
	KnownChats  []models.KnownChat  `json:"known_chats"`
}

// Run takes one snapshot and uploads it. Also invoked directly from the
// admin backup endpoint.
func (w *BackupWorker) Run() (string, error) {
	snap := backupSnapshot{TakenAt: time.Now().UTC()}

	if err := w.DB.Find(&snap.Cards).Error; err != nil {
		return "", fmt.Errorf("failed to read cards: %w", err)
	}
	if err := w.DB.Find(&snap.Ledgers).Error; err != nil {
		return "", fmt.Errorf("failed to read ledgers: %w", err)
	}
	if err := w.DB.Find(&snap.Clans).Error; err != nil {
		return "", fmt.Errorf("failed to read clans: %w", err)
	}
	if err := w.DB.Find(&snap.ChatConfigs).Error; err != nil {
		return "", fmt.Errorf("failed to read chat configs: %w", err)
	}
	if err := w.DB.Find(&snap.KnownUsers).Error; err != nil {
		return "", fmt.Errorf("failed to read known users: %w", err)
	}
	if err := w.DB.Find(&snap.KnownChats).Error; err != nil {
		return "", fmt.Errorf("failed to read known chats: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	key := fmt.Sprintf("backups/%s.json", snap.TakenAt.Format("2006-01-02T15-04-05"))
	url, err := utils.UploadBytesToR2(data, key, "application/json")
	if err != nil {
		return "", err
	}

	log.Printf("💾 [BACKUP] Uploaded %d bytes to %s", len(data), key)
	return url, nil
}

// Start schedules the recurring backup job.
func (w *BackupWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.Interval),
		gocron.NewTask(func() {
			if _, err := w.Run(); err != nil {
				log.Printf("❌ [BACKUP] Snapshot failed: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	w.sched = sched
	log.Printf("✅ Backup worker running (every %s)", w.Interval)
	return nil
}

// Stop shuts the scheduler down.
func (w *BackupWorker) Stop() {
	if w.sched == nil {
		return
	}
	if err := w.sched.Shutdown(); err != nil {
		log.Printf("[BACKUP] Scheduler shutdown: %v", err)
	}
}
