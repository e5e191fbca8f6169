// models/user.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CardSet is the set of card IDs a user owns, stored as a JSON array in a
// text column (mirrors how the ledger has always been persisted). Membership
// only — it never shrinks.
type CardSet []string

func (s CardSet) Has(cardID string) bool {
	for _, id := range s {
		if id == cardID {
			return true
		}
	}
	return false
}

func (s CardSet) Value() (driver.Value, error) {
	if s == nil {
		s = CardSet{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *CardSet) Scan(value interface{}) error {
	if value == nil {
		*s = CardSet{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("unsupported type %T for CardSet", value)
	}
}

// UserLedger is the per-user record of inventory and points. Created on the
// first successful draw, updated on every draw after that, never deleted.
//
// NowPoints is the current season score (reset externally between seasons);
// AllPoints accumulates forever and only ever increases.
type UserLedger struct {
	UserID      int64      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	DisplayName string     `json:"display_name"` // last seen, overwritten on every draw
	Cards       CardSet    `json:"cards" gorm:"type:text"`
	NowPoints   int64      `json:"now_points" gorm:"default:0"`
	AllPoints   int64      `json:"all_points" gorm:"default:0"`
	LastDrawAt  *time.Time `json:"last_draw_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
