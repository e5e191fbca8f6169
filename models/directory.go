// models/directory.go
package models

import "time"

// KnownUser records a user who has started a private conversation with the
// bot. Used for broadcast fan-out and admin stats.
type KnownUser struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// KnownChat records a group chat the bot was added to.
type KnownChat struct {
	ChatID    int64     `json:"chat_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
