// services/leaderboard_service_test.go
package services

import (
	"testing"

	"card-reward-system/models"

	"gorm.io/gorm"
)

func seedLedger(t *testing.T, db *gorm.DB, userID int64, name string, now, all int64, cards ...string) {
	t.Helper()
	if err := db.Create(&models.UserLedger{
		UserID: userID, DisplayName: name,
		Cards: models.CardSet(cards), NowPoints: now, AllPoints: all,
	}).Error; err != nil {
		t.Fatalf("seed ledger %d: %v", userID, err)
	}
}

func TestTopUsersByPoints(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db, 1, "Alice", 5000, 20000)
	seedLedger(t, db, 2, "Bob", 8500, 8500)
	seedLedger(t, db, 3, "Carol", 1500, 30000)

	svc := NewLeaderboardService(db)

	now, err := svc.TopUsersByNowPoints(2)
	if err != nil {
		t.Fatalf("TopUsersByNowPoints: %v", err)
	}
	if len(now) != 2 || now[0].UserID != 2 || now[1].UserID != 1 {
		t.Errorf("now standings = %+v, want Bob then Alice", now)
	}
	if now[0].Value != 8500 {
		t.Errorf("top value = %d, want 8500", now[0].Value)
	}

	lifetime, err := svc.TopUsersByAllPoints(3)
	if err != nil {
		t.Fatalf("TopUsersByAllPoints: %v", err)
	}
	if lifetime[0].UserID != 3 || lifetime[1].UserID != 1 || lifetime[2].UserID != 2 {
		t.Errorf("lifetime standings = %+v, want Carol, Alice, Bob", lifetime)
	}
}

func TestTopUsersByCardCount(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db, 1, "Alice", 0, 0, "a", "b", "c")
	seedLedger(t, db, 2, "Bob", 0, 0, "a")
	seedLedger(t, db, 3, "Carol", 0, 0, "a", "b")

	svc := NewLeaderboardService(db)
	standings, err := svc.TopUsersByCardCount(2)
	if err != nil {
		t.Fatalf("TopUsersByCardCount: %v", err)
	}
	if len(standings) != 2 || standings[0].UserID != 1 || standings[1].UserID != 3 {
		t.Errorf("standings = %+v, want Alice then Carol", standings)
	}
	if standings[0].Value != 3 {
		t.Errorf("top card count = %d, want 3", standings[0].Value)
	}
}

func TestTopClansByPoints(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db, 1, "Alice", 2500, 2500)
	seedLedger(t, db, 2, "Bob", 2500, 2500)
	seedLedger(t, db, 3, "Carol", 7000, 7000)

	// Small clan out-scores the bigger one; member count must not matter.
	for _, clan := range []models.Clan{
		{ID: "c1", Name: "Wolves", CreatorID: 1, Members: models.MemberSet{1, 2}},
		{ID: "c2", Name: "Bears", CreatorID: 3, Members: models.MemberSet{3}},
		{ID: "c3", Name: "Ghosts", CreatorID: 4, Members: models.MemberSet{}},
	} {
		if err := db.Create(&clan).Error; err != nil {
			t.Fatalf("seed clan %s: %v", clan.Name, err)
		}
	}

	svc := NewLeaderboardService(db)
	standings, err := svc.TopClansByPoints(10)
	if err != nil {
		t.Fatalf("TopClansByPoints: %v", err)
	}

	if len(standings) != 2 {
		t.Fatalf("got %d clans, want 2 (empty clan skipped)", len(standings))
	}
	if standings[0].Name != "Bears" || standings[0].Points != 7000 {
		t.Errorf("first = %+v, want Bears with 7000", standings[0])
	}
	if standings[1].Name != "Wolves" || standings[1].Points != 5000 {
		t.Errorf("second = %+v, want Wolves with 5000", standings[1])
	}
	if standings[1].MemberCount != 2 {
		t.Errorf("Wolves member count = %d, want 2", standings[1].MemberCount)
	}
}
