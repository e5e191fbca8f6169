// services/catalog_test.go
package services

import (
	"testing"

	"card-reward-system/models"
)

func TestCatalogSnapshot(t *testing.T) {
	db := newTestDB(t)
	seedCard(t, db, "c1", "First", models.RarityRare)
	seedCard(t, db, "c2", "Second", models.RarityLegendary)

	catalog := NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if catalog.Count() != 2 {
		t.Errorf("count = %d, want 2", catalog.Count())
	}
	if got := catalog.ByRarity(models.RarityLegendary); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("ByRarity = %+v, want [c2]", got)
	}
	if _, ok := catalog.Get("c1"); !ok {
		t.Error("Get(c1) not found")
	}
	if _, ok := catalog.Get("nope"); ok {
		t.Error("Get(nope) unexpectedly found")
	}
}

func TestCatalogAddRefreshesSnapshot(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	card, err := catalog.Add("Dragon", models.RarityMythic, models.MediaKindAnimation, "https://cdn.test/dragon.gif")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if card.ID == "" {
		t.Error("Add returned card without ID")
	}

	// The new card is drawable without an explicit reload.
	if got := catalog.ByRarity(models.RarityMythic); len(got) != 1 || got[0].Name != "Dragon" {
		t.Errorf("ByRarity after Add = %+v, want the new card", got)
	}
}
