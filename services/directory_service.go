// services/directory_service.go
package services

import (
	"card-reward-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryService tracks which users and chats the bot has seen, for admin
// stats and broadcast fan-out. Delivery itself is the gateway's job — this
// service only keeps the recipient lists.
type DirectoryService struct {
	DB *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{DB: db}
}

// RegisterUser records a private-chat user. Idempotent.
func (s *DirectoryService) RegisterUser(userID int64) error {
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.KnownUser{UserID: userID}).Error
}

// RegisterChat records a group chat. Idempotent.
func (s *DirectoryService) RegisterChat(chatID int64) error {
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.KnownChat{ChatID: chatID}).Error
}

// Stats returns how many users and chats the bot knows about.
func (s *DirectoryService) Stats() (users int64, chats int64, err error) {
	if err = s.DB.Model(&models.KnownUser{}).Count(&users).Error; err != nil {
		return 0, 0, err
	}
	if err = s.DB.Model(&models.KnownChat{}).Count(&chats).Error; err != nil {
		return 0, 0, err
	}
	return users, chats, nil
}

// UserIDs returns every known private-chat user, for broadcast fan-out.
func (s *DirectoryService) UserIDs() ([]int64, error) {
	var ids []int64
	err := s.DB.Model(&models.KnownUser{}).Pluck("user_id", &ids).Error
	return ids, err
}

// ChatIDs returns every known group chat.
func (s *DirectoryService) ChatIDs() ([]int64, error) {
	var ids []int64
	err := s.DB.Model(&models.KnownChat{}).Pluck("chat_id", &ids).Error
	return ids, err
}
