// services/leaderboard_service.go
package services

import (
	"sort"

	"card-reward-system/models"

	"gorm.io/gorm"
)

// LeaderboardService is the read side: every query recomputes from the
// ledger and clan tables, no caching. Ties between equal scores are
// implementation-defined but stable within one query.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// UserStanding is one leaderboard row; Value is the queried metric
// (current points, lifetime points or card count).
type UserStanding struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Value       int64  `json:"value"`
}

// ClanStanding ranks a clan by the sum of its members' current-season
// points (not lifetime — season standing is what clans compete on).
type ClanStanding struct {
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	Points      int64  `json:"points"`
}

// TopUsersByNowPoints returns the n best current-season scores.
func (s *LeaderboardService) TopUsersByNowPoints(n int) ([]UserStanding, error) {
	return s.topUsersByColumn("now_points", n)
}

// TopUsersByAllPoints returns the n best lifetime scores.
func (s *LeaderboardService) TopUsersByAllPoints(n int) ([]UserStanding, error) {
	return s.topUsersByColumn("all_points", n)
}

func (s *LeaderboardService) topUsersByColumn(column string, n int) ([]UserStanding, error) {
	var ledgers []models.UserLedger
	if err := s.DB.Order(column + " DESC").Limit(n).Find(&ledgers).Error; err != nil {
		return nil, err
	}
	out := make([]UserStanding, len(ledgers))
	for i, l := range ledgers {
		value := l.NowPoints
		if column == "all_points" {
			value = l.AllPoints
		}
		out[i] = UserStanding{UserID: l.UserID, DisplayName: l.DisplayName, Value: value}
	}
	return out, nil
}

// TopUsersByCardCount ranks users by inventory size. The card sets live in a
// JSON column, so this is a full scan plus an in-memory sort.
func (s *LeaderboardService) TopUsersByCardCount(n int) ([]UserStanding, error) {
	var ledgers []models.UserLedger
	if err := s.DB.Find(&ledgers).Error; err != nil {
		return nil, err
	}

	out := make([]UserStanding, len(ledgers))
	for i, l := range ledgers {
		out[i] = UserStanding{UserID: l.UserID, DisplayName: l.DisplayName, Value: int64(len(l.Cards))}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// TopClansByPoints sums members' now_points per clan, skips clans with no
// members, and returns the n highest totals.
func (s *LeaderboardService) TopClansByPoints(n int) ([]ClanStanding, error) {
	var clans []models.Clan
	if err := s.DB.Find(&clans).Error; err != nil {
		return nil, err
	}

	var out []ClanStanding
	for _, clan := range clans {
		if len(clan.Members) == 0 {
			continue
		}
		var total int64
		if err := s.DB.Model(&models.UserLedger{}).
			Where("user_id IN ?", []int64(clan.Members)).
			Select("COALESCE(SUM(now_points), 0)").
			Scan(&total).Error; err != nil {
			return nil, err
		}
		out = append(out, ClanStanding{
			Name:        clan.Name,
			MemberCount: len(clan.Members),
			Points:      total,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
