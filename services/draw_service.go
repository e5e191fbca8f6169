// services/draw_service.go
package services

import (
	"errors"
	"math/rand"
	"time"

	"card-reward-system/models"

	"gorm.io/gorm"
)

// DrawCooldown is the minimum time between successful draws for a user.
const DrawCooldown = 90 * time.Minute

// RandSource yields uniform ints in [0,n). Injected so tests can force
// specific tiers and cards.
type RandSource interface {
	Intn(n int) int
}

// DrawService is the reward engine: cooldown gating, weighted rarity roll,
// card selection and the atomic ledger update.
type DrawService struct {
	DB      *gorm.DB
	Catalog *CatalogService
	Rand    RandSource
}

func NewDrawService(db *gorm.DB, catalog *CatalogService) *DrawService {
	return &DrawService{
		DB:      db,
		Catalog: catalog,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DrawResult reports one successful draw. AlreadyOwned means the card was in
// the inventory before this draw; points are awarded either way.
type DrawResult struct {
	Card         models.Card `json:"card"`
	Rarity       string      `json:"rarity"`
	Points       int64       `json:"points"`
	AlreadyOwned bool        `json:"already_owned"`
	NowPoints    int64       `json:"now_points"`
	AllPoints    int64       `json:"all_points"`
}

// rarityForRoll maps a uniform roll in [1,100] to a tier, highest first.
// The ranges are fixed: 5% Animated, 10% Legendary, 15% Mythic,
// 20% UltraRare, 50% Rare.
func rarityForRoll(roll int) string {
	switch {
	case roll >= 1 && roll <= 5:
		return models.RarityAnimated
	case roll <= 15:
		return models.RarityLegendary
	case roll <= 30:
		return models.RarityMythic
	case roll <= 50:
		return models.RarityUltraRare
	default:
		return models.RarityRare
	}
}

// RequestDraw runs one draw attempt for the user at the given instant.
//
// The whole read-roll-write sequence runs in a single transaction with the
// ledger row locked, so two near-simultaneous draws for the same user cannot
// both pass the cooldown check.
//
// A roll into an empty tier returns NoCardsForTierError and leaves the
// ledger untouched — the failed draw does not consume the cooldown and the
// user may retry immediately.
func (s *DrawService) RequestDraw(userID int64, displayName string, now time.Time) (*DrawResult, error) {
	var result *DrawResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ledger models.UserLedger
		exists := true
		if err := rowLock(tx).Where("user_id = ?", userID).First(&ledger).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			exists = false
		}

		if exists && ledger.LastDrawAt != nil {
			if elapsed := now.Sub(*ledger.LastDrawAt); elapsed < DrawCooldown {
				return &CooldownError{Remaining: DrawCooldown - elapsed}
			}
		}

		roll := s.Rand.Intn(100) + 1
		rarity := rarityForRoll(roll)

		eligible := s.Catalog.ByRarity(rarity)
		if len(eligible) == 0 {
			return &NoCardsForTierError{Rarity: rarity}
		}

		card := eligible[s.Rand.Intn(len(eligible))]
		points := models.RarityPoints[rarity]

		// Ownership is decided against the pre-update inventory.
		owned := exists && ledger.Cards.Has(card.ID)

		drawTime := now
		if !exists {
			ledger = models.UserLedger{
				UserID:      userID,
				DisplayName: displayName,
				Cards:       models.CardSet{card.ID},
				NowPoints:   points,
				AllPoints:   points,
				LastDrawAt:  &drawTime,
			}
			if err := tx.Create(&ledger).Error; err != nil {
				return err
			}
		} else {
			if !owned {
				ledger.Cards = append(ledger.Cards, card.ID)
			}
			ledger.DisplayName = displayName
			ledger.NowPoints += points
			ledger.AllPoints += points
			ledger.LastDrawAt = &drawTime
			if err := tx.Save(&ledger).Error; err != nil {
				return err
			}
		}

		result = &DrawResult{
			Card:         card,
			Rarity:       rarity,
			Points:       points,
			AlreadyOwned: owned,
			NowPoints:    ledger.NowPoints,
			AllPoints:    ledger.AllPoints,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResetCooldown unconditionally clears the user's last-draw time. No
// authorization happens at this layer — callers gate access.
func (s *DrawService) ResetCooldown(userID int64) error {
	return s.DB.Model(&models.UserLedger{}).
		Where("user_id = ?", userID).
		Update("last_draw_at", nil).Error
}

// GetLedger returns the user's ledger entry, or ErrUserNotFound for users
// who have never drawn a card.
func (s *DrawService) GetLedger(userID int64) (*models.UserLedger, error) {
	var ledger models.UserLedger
	if err := s.DB.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &ledger, nil
}
