// services/chat_config_service.go
package services

import (
	"errors"

	"card-reward-system/models"

	"gorm.io/gorm"
)

// ChatConfigService manages per-chat auto-delete settings. A chat without a
// row behaves as disabled with a zero delay.
type ChatConfigService struct {
	DB *gorm.DB
}

func NewChatConfigService(db *gorm.DB) *ChatConfigService {
	return &ChatConfigService{DB: db}
}

// Get returns the chat's config; absent rows come back zero-valued
// (disabled, 0 minutes) rather than as an error.
func (s *ChatConfigService) Get(chatID int64) (models.ChatConfig, error) {
	var cfg models.ChatConfig
	if err := s.DB.Where("chat_id = ?", chatID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatConfig{ChatID: chatID}, nil
		}
		return models.ChatConfig{}, err
	}
	return cfg, nil
}

// Toggle flips the enabled flag, creating the row on first use, and returns
// the new state.
func (s *ChatConfigService) Toggle(chatID int64) (bool, error) {
	var enabled bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var cfg models.ChatConfig
		if err := rowLock(tx).Where("chat_id = ?", chatID).First(&cfg).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cfg = models.ChatConfig{ChatID: chatID}
		}
		cfg.AutoDeleteEnabled = !cfg.AutoDeleteEnabled
		enabled = cfg.AutoDeleteEnabled
		return tx.Save(&cfg).Error
	})
	return enabled, err
}

// SetDelay sets the auto-delete delay in minutes, creating the row on first
// use. The enabled flag is untouched.
func (s *ChatConfigService) SetDelay(chatID int64, minutes int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var cfg models.ChatConfig
		if err := rowLock(tx).Where("chat_id = ?", chatID).First(&cfg).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cfg = models.ChatConfig{ChatID: chatID}
		}
		cfg.AutoDeleteMinutes = minutes
		return tx.Save(&cfg).Error
	})
}
