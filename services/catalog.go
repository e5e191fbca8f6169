// services/catalog.go
package services

import (
	"log"
	"sync"

	"card-reward-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService keeps the card catalog as an in-memory snapshot on top of
// the cards table. The draw path only ever reads the snapshot; writes go
// through Add, which appends to the table and swaps in a fresh snapshot.
type CatalogService struct {
	DB *gorm.DB

	mu    sync.RWMutex
	cards []models.Card
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Reload re-reads the cards table and atomically replaces the snapshot.
// Called at startup and after every append.
func (s *CatalogService) Reload() error {
	var cards []models.Card
	if err := s.DB.Order("created_at ASC").Find(&cards).Error; err != nil {
		return err
	}

	s.mu.Lock()
	s.cards = cards
	s.mu.Unlock()

	log.Printf("[CATALOG] Loaded %d card(s)", len(cards))
	return nil
}

// All returns a copy of the current snapshot.
func (s *CatalogService) All() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// ByRarity returns the snapshot cards of one tier.
func (s *CatalogService) ByRarity(rarity string) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Card
	for _, c := range s.cards {
		if c.Rarity == rarity {
			out = append(out, c)
		}
	}
	return out
}

// Get looks a card up by ID in the snapshot.
func (s *CatalogService) Get(cardID string) (models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID == cardID {
			return c, true
		}
	}
	return models.Card{}, false
}

// Count returns the snapshot size.
func (s *CatalogService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Add appends a card to the catalog and reloads the snapshot. The catalog is
// append-only: there is no update or delete path.
func (s *CatalogService) Add(name, rarity, mediaKind, mediaURL string) (*models.Card, error) {
	card := models.Card{
		ID:        uuid.NewString(),
		Name:      name,
		Rarity:    rarity,
		MediaKind: mediaKind,
		MediaURL:  mediaURL,
	}
	if err := s.DB.Create(&card).Error; err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		// The card is committed; the stale snapshot heals on the next reload.
		log.Printf("[CATALOG] Reload after append failed: %v", err)
	}
	return &card, nil
}
