// models/card.go
package models

import "time"

const (
	MediaKindPhoto     = "photo"
	MediaKindAnimation = "animation"
)

// Rarity tiers, ordered lowest → highest.
const (
	RarityRare      = "Rare"
	RarityUltraRare = "UltraRare"
	RarityMythic    = "Mythic"
	RarityLegendary = "Legendary"
	RarityAnimated  = "Animated"
)

// Rarities lists all tiers in ascending order (used for validation and
// profile rarity filters).
var Rarities = []string{
	RarityRare,
	RarityUltraRare,
	RarityMythic,
	RarityLegendary,
	RarityAnimated,
}

// RarityPoints is the fixed point award for drawing a card of each tier.
// Awarded on every draw, including repeats of an already-owned card.
var RarityPoints = map[string]int64{
	RarityRare:      1500,
	RarityUltraRare: 3500,
	RarityMythic:    5000,
	RarityLegendary: 10000,
	RarityAnimated:  15000,
}

// IsValidRarity reports whether r names one of the five tiers.
func IsValidRarity(r string) bool {
	_, ok := RarityPoints[r]
	return ok
}

// Card is a catalog entry. The catalog is append-only: cards are created by
// admins and never mutated or deleted afterwards.
type Card struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Rarity    string    `json:"rarity" gorm:"index;not null"`
	MediaKind string    `json:"media_kind" gorm:"default:'photo'"` // photo | animation
	MediaURL  string    `json:"media_url"`                         // CDN URL of the uploaded media
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
