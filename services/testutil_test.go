// services/testutil_test.go
package services

import (
	"testing"

	"card-reward-system/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// Pinning the pool to one connection keeps every session on the same
// in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Card{},
		&models.UserLedger{},
		&models.Clan{},
		&models.ChatConfig{},
		&models.KnownUser{},
		&models.KnownChat{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// stubRand feeds a fixed sequence of values to the draw engine. Values wrap
// around when exhausted.
type stubRand struct {
	vals []int
	i    int
}

func (r *stubRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func seedCard(t *testing.T, db *gorm.DB, id, name, rarity string) models.Card {
	t.Helper()
	card := models.Card{ID: id, Name: name, Rarity: rarity, MediaKind: models.MediaKindPhoto, MediaURL: "https://cdn.test/" + id}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("failed to seed card %s: %v", id, err)
	}
	return card
}

// newTestCatalog seeds one card per rarity tier and returns a loaded catalog.
func newTestCatalog(t *testing.T, db *gorm.DB) *CatalogService {
	t.Helper()
	for _, rarity := range models.Rarities {
		seedCard(t, db, "card-"+rarity, "Card "+rarity, rarity)
	}
	catalog := NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return catalog
}
