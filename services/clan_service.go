// services/clan_service.go
package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"card-reward-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClanService owns clan records and the membership state machine. Every
// mutation runs in its own transaction; mutations of one clan lock its row,
// and global checks (name/creator uniqueness, cross-clan membership) are
// re-queried inside the same transaction so they see committed state.
type ClanService struct {
	DB *gorm.DB
}

func NewClanService(db *gorm.DB) *ClanService {
	return &ClanService{DB: db}
}

// JoinRequestNotification is handed back to the gateway when a join hits a
// request-mode clan. The gateway delivers it to the clan creator; no request
// record is persisted here — accept/reject trusts current state only.
type JoinRequestNotification struct {
	ClanID             string `json:"clan_id"`
	ClanName           string `json:"clan_name"`
	CreatorID          int64  `json:"creator_id"`
	CandidateID        int64  `json:"candidate_id"`
	CandidateNowPoints int64  `json:"candidate_now_points"`
	CandidateAllPoints int64  `json:"candidate_all_points"`
	CandidateCards     int    `json:"candidate_cards"`
}

// JoinOutcome is the result of a Join call: either the user was added
// immediately, or a request notification is pending with the creator.
type JoinOutcome struct {
	Pending      bool                     `json:"pending"`
	Clan         *models.Clan             `json:"clan,omitempty"`
	Notification *JoinRequestNotification `json:"notification,omitempty"`
}

// userClanTx finds the clan containing userID, scanning all member sets
// within the given transaction. Returns nil when the user is clanless.
func userClanTx(tx *gorm.DB, userID int64) (*models.Clan, error) {
	var clans []models.Clan
	if err := tx.Find(&clans).Error; err != nil {
		return nil, err
	}
	for i := range clans {
		if clans[i].Members.Has(userID) {
			return &clans[i], nil
		}
	}
	return nil, nil
}

// GetUserClan returns the clan the user belongs to, or nil.
func (s *ClanService) GetUserClan(userID int64) (*models.Clan, error) {
	return userClanTx(s.DB, userID)
}

// Create makes a new clan with the creator as its only member.
// Check order: name validity, creator uniqueness, cross-clan membership,
// name uniqueness.
func (s *ClanService) Create(name string, creatorID int64) (*models.Clan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > models.ClanNameMaxLen {
		return nil, ErrNameTooLong
	}

	var clan models.Clan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Clan{}).Where("creator_id = ?", creatorID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCreatorConflict
		}

		existing, err := userClanTx(tx, creatorID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrMembershipConflict
		}

		if err := tx.Model(&models.Clan{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNameTaken
		}

		clan = models.Clan{
			ID:        uuid.NewString(),
			Name:      name,
			CreatorID: creatorID,
			Members:   models.MemberSet{creatorID},
		}
		return tx.Create(&clan).Error
	})
	if err != nil {
		return nil, err
	}
	return &clan, nil
}

// Leave removes the user from their clan. Creators cannot leave — they must
// delete the clan or transfer leadership first.
func (s *ClanService) Leave(userID int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Clan{}).Where("creator_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCreatorCannotLeave
		}

		clan, err := userClanTx(tx, userID)
		if err != nil {
			return err
		}
		if clan == nil {
			return ErrNotInClan
		}

		// Re-read under lock before mutating the member set.
		var locked models.Clan
		if err := rowLock(tx).Where("id = ?", clan.ID).First(&locked).Error; err != nil {
			return err
		}
		locked.Members = locked.Members.Remove(userID)
		return tx.Save(&locked).Error
	})
}

// Join adds the user to the named clan, or — when the clan is in request
// mode — produces a notification for its creator without touching state.
func (s *ClanService) Join(userID int64, name string) (*JoinOutcome, error) {
	var outcome JoinOutcome

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := userClanTx(tx, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrMembershipConflict
		}

		var clan models.Clan
		if err := rowLock(tx).Where("name = ?", name).First(&clan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClanNotFound
			}
			return err
		}

		if len(clan.Members) >= models.ClanMaxMembers {
			return ErrClanFull
		}

		if !clan.RequestMode {
			clan.Members = append(clan.Members, userID)
			if err := tx.Save(&clan).Error; err != nil {
				return err
			}
			outcome = JoinOutcome{Clan: &clan}
			return nil
		}

		// Request mode: nothing is persisted, the creator just gets a
		// notification with the candidate's stats.
		note := &JoinRequestNotification{
			ClanID:      clan.ID,
			ClanName:    clan.Name,
			CreatorID:   clan.CreatorID,
			CandidateID: userID,
		}
		var ledger models.UserLedger
		if err := tx.Where("user_id = ?", userID).First(&ledger).Error; err == nil {
			note.CandidateNowPoints = ledger.NowPoints
			note.CandidateAllPoints = ledger.AllPoints
			note.CandidateCards = len(ledger.Cards)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		outcome = JoinOutcome{Pending: true, Notification: note}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Accept adds a candidate to the clan owned by creatorID. There is no token
// tying this to a specific join request: anyone currently clanless can be
// accepted, whatever triggered the notification. A candidate who joined
// elsewhere in the meantime is rejected with ErrRaceLost.
func (s *ClanService) Accept(creatorID, candidateID int64) (*models.Clan, error) {
	var clan models.Clan

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := rowLock(tx).Where("creator_id = ?", creatorID).First(&clan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCreator
			}
			return err
		}

		if clan.Members.Has(candidateID) {
			return ErrAlreadyMember
		}
		if len(clan.Members) >= models.ClanMaxMembers {
			return ErrClanFull
		}

		other, err := userClanTx(tx, candidateID)
		if err != nil {
			return err
		}
		if other != nil {
			return ErrRaceLost
		}

		clan.Members = append(clan.Members, candidateID)
		return tx.Save(&clan).Error
	})
	if err != nil {
		return nil, err
	}
	return &clan, nil
}

// Reject is deliberately a no-op: rejection is advisory only and no request
// record exists to discard. Kept as an operation so the gateway has a single
// call for both outcomes.
func (s *ClanService) Reject(creatorID, candidateID int64) error {
	return nil
}

// SetRequestMode toggles whether joins need creator approval. Only the
// clan's creator may change it.
func (s *ClanService) SetRequestMode(clanID string, actorID int64, enabled bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var clan models.Clan
		if err := rowLock(tx).Where("id = ?", clanID).First(&clan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClanNotFound
			}
			return err
		}
		if clan.CreatorID != actorID {
			return ErrNotCreator
		}
		clan.RequestMode = enabled
		return tx.Save(&clan).Error
	})
}

// TransferLeadership reassigns the creator role to another current member.
// The previous creator stays in the clan as an ordinary member.
func (s *ClanService) TransferLeadership(clanID string, actorID, newCreatorID int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var clan models.Clan
		if err := rowLock(tx).Where("id = ?", clanID).First(&clan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClanNotFound
			}
			return err
		}
		if clan.CreatorID != actorID {
			return ErrNotCreator
		}
		if !clan.Members.Has(newCreatorID) {
			return ErrNotClanMember
		}
		clan.CreatorID = newCreatorID
		return tx.Save(&clan).Error
	})
}

// Delete removes the clan record. Members are not relocated — they simply
// become clanless, and the name and creator slot free up immediately.
func (s *ClanService) Delete(clanID string, actorID int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var clan models.Clan
		if err := rowLock(tx).Where("id = ?", clanID).First(&clan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClanNotFound
			}
			return err
		}
		if clan.CreatorID != actorID {
			return ErrNotCreator
		}
		return tx.Delete(&clan).Error
	})
}
