// models/clan.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// ClanMaxMembers caps clan size, creator included.
	ClanMaxMembers = 20
	// ClanNameMaxLen is the maximum clan name length in runes.
	ClanNameMaxLen = 10
)

// MemberSet holds member user IDs as a JSON array in a text column.
// The member sets of all clans are pairwise disjoint: a user belongs to at
// most one clan at a time.
type MemberSet []int64

func (s MemberSet) Has(userID int64) bool {
	for _, id := range s {
		if id == userID {
			return true
		}
	}
	return false
}

// Remove returns the set without userID. No-op if userID is absent.
func (s MemberSet) Remove(userID int64) MemberSet {
	out := make(MemberSet, 0, len(s))
	for _, id := range s {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

func (s MemberSet) Value() (driver.Value, error) {
	if s == nil {
		s = MemberSet{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *MemberSet) Scan(value interface{}) error {
	if value == nil {
		*s = MemberSet{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("unsupported type %T for MemberSet", value)
	}
}

// Clan invariants: Name unique, CreatorID unique (one clan per creator,
// globally), CreatorID always present in Members.
type Clan struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatorID   int64     `json:"creator_id" gorm:"uniqueIndex;not null"`
	Members     MemberSet `json:"members" gorm:"type:text"`
	RequestMode bool      `json:"request_mode" gorm:"default:false"` // joins need creator approval
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
