// services/draw_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"card-reward-system/models"
)

func TestRarityForRoll(t *testing.T) {
	tests := []struct {
		roll int
		want string
	}{
		{1, models.RarityAnimated},
		{5, models.RarityAnimated},
		{6, models.RarityLegendary},
		{15, models.RarityLegendary},
		{16, models.RarityMythic},
		{30, models.RarityMythic},
		{31, models.RarityUltraRare},
		{50, models.RarityUltraRare},
		{51, models.RarityRare},
		{100, models.RarityRare},
	}
	for _, tt := range tests {
		if got := rarityForRoll(tt.roll); got != tt.want {
			t.Errorf("rarityForRoll(%d) = %s, want %s", tt.roll, got, tt.want)
		}
	}
}

func TestRequestDrawCreatesLedger(t *testing.T) {
	db := newTestDB(t)
	catalog := newTestCatalog(t, db)

	svc := NewDrawService(db, catalog)
	svc.Rand = &stubRand{vals: []int{49, 0}} // roll 50 -> UltraRare, first card

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	result, err := svc.RequestDraw(1001, "Alice", now)
	if err != nil {
		t.Fatalf("RequestDraw: %v", err)
	}

	if result.Rarity != models.RarityUltraRare {
		t.Errorf("rarity = %s, want %s", result.Rarity, models.RarityUltraRare)
	}
	if result.Points != models.RarityPoints[models.RarityUltraRare] {
		t.Errorf("points = %d, want %d", result.Points, models.RarityPoints[models.RarityUltraRare])
	}
	if result.AlreadyOwned {
		t.Error("first draw should not be already owned")
	}

	ledger, err := svc.GetLedger(1001)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if ledger.DisplayName != "Alice" {
		t.Errorf("display name = %q, want Alice", ledger.DisplayName)
	}
	if ledger.NowPoints != result.Points || ledger.AllPoints != result.Points {
		t.Errorf("points = %d/%d, want %d/%d", ledger.NowPoints, ledger.AllPoints, result.Points, result.Points)
	}
	if len(ledger.Cards) != 1 || !ledger.Cards.Has(result.Card.ID) {
		t.Errorf("cards = %v, want [%s]", ledger.Cards, result.Card.ID)
	}
	if ledger.LastDrawAt == nil || !ledger.LastDrawAt.Equal(now) {
		t.Errorf("last draw at = %v, want %v", ledger.LastDrawAt, now)
	}
}

func TestRequestDrawCooldown(t *testing.T) {
	db := newTestDB(t)
	catalog := newTestCatalog(t, db)

	svc := NewDrawService(db, catalog)
	svc.Rand = &stubRand{vals: []int{99, 0}} // roll 100 -> Rare every time

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if _, err := svc.RequestDraw(1001, "Alice", t0); err != nil {
		t.Fatalf("first draw: %v", err)
	}

	_, err := svc.RequestDraw(1001, "Alice", t0.Add(1*time.Minute))
	var cooldown *CooldownError
	if !errors.As(err, &cooldown) {
		t.Fatalf("expected CooldownError, got %v", err)
	}
	if cooldown.Remaining != 89*time.Minute {
		t.Errorf("remaining = %v, want 89m", cooldown.Remaining)
	}

	// A rejected draw leaves the ledger untouched.
	ledger, err := svc.GetLedger(1001)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if ledger.AllPoints != models.RarityPoints[models.RarityRare] {
		t.Errorf("all points = %d, want %d", ledger.AllPoints, models.RarityPoints[models.RarityRare])
	}

	if _, err := svc.RequestDraw(1001, "Alice", t0.Add(91*time.Minute)); err != nil {
		t.Fatalf("draw after cooldown: %v", err)
	}
}

func TestRequestDrawEmptyTier(t *testing.T) {
	db := newTestDB(t)
	seedCard(t, db, "card-rare", "Only Rare", models.RarityRare)
	catalog := NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	svc := NewDrawService(db, catalog)
	svc.Rand = &stubRand{vals: []int{0}} // roll 1 -> Animated, which is empty

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	_, err := svc.RequestDraw(1001, "Alice", now)
	var noCards *NoCardsForTierError
	if !errors.As(err, &noCards) {
		t.Fatalf("expected NoCardsForTierError, got %v", err)
	}
	if noCards.Rarity != models.RarityAnimated {
		t.Errorf("empty tier = %s, want %s", noCards.Rarity, models.RarityAnimated)
	}

	// The failed draw consumed nothing: no ledger row, no cooldown.
	if _, err := svc.GetLedger(1001); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// An immediate retry into a populated tier succeeds.
	svc.Rand = &stubRand{vals: []int{50, 0}} // roll 51 -> Rare
	if _, err := svc.RequestDraw(1001, "Alice", now); err != nil {
		t.Fatalf("retry draw: %v", err)
	}
}

func TestRequestDrawDuplicateCard(t *testing.T) {
	db := newTestDB(t)
	seedCard(t, db, "card-rare", "Only Rare", models.RarityRare)
	catalog := NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	svc := NewDrawService(db, catalog)
	svc.Rand = &stubRand{vals: []int{99, 0}} // roll 100 -> Rare, single card

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if _, err := svc.RequestDraw(1001, "Alice", t0); err != nil {
		t.Fatalf("first draw: %v", err)
	}

	result, err := svc.RequestDraw(1001, "Alice", t0.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}
	if !result.AlreadyOwned {
		t.Error("second draw of the only card should be already owned")
	}

	// Duplicates still award points but never grow the inventory.
	ledger, err := svc.GetLedger(1001)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if len(ledger.Cards) != 1 {
		t.Errorf("card count = %d, want 1", len(ledger.Cards))
	}
	want := 2 * models.RarityPoints[models.RarityRare]
	if ledger.NowPoints != want || ledger.AllPoints != want {
		t.Errorf("points = %d/%d, want %d/%d", ledger.NowPoints, ledger.AllPoints, want, want)
	}
}

func TestResetCooldown(t *testing.T) {
	db := newTestDB(t)
	catalog := newTestCatalog(t, db)

	svc := NewDrawService(db, catalog)
	svc.Rand = &stubRand{vals: []int{99, 0}}

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if _, err := svc.RequestDraw(1001, "Alice", t0); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if err := svc.ResetCooldown(1001); err != nil {
		t.Fatalf("ResetCooldown: %v", err)
	}
	if _, err := svc.RequestDraw(1001, "Alice", t0.Add(time.Second)); err != nil {
		t.Fatalf("draw after reset: %v", err)
	}
}
