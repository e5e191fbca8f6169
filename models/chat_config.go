// models/chat_config.go
package models

import "time"

// ChatConfig is per-chat auto-delete configuration, owned by chat admins
// through the gateway. A missing row means auto-delete is off.
//
// Both fields are re-read by the cleanup scheduler when a job fires, so a
// change here affects jobs that were scheduled before the change.
type ChatConfig struct {
	ChatID            int64     `json:"chat_id" gorm:"primaryKey;autoIncrement:false"`
	AutoDeleteEnabled bool      `json:"auto_delete_enabled" gorm:"default:false"`
	AutoDeleteMinutes int       `json:"auto_delete_minutes" gorm:"default:0"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
