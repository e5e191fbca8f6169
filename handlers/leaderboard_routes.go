// handlers/leaderboard_routes.go
package handlers

import (
	"strconv"

	"card-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

const defaultTopN = 10

func topN(c *fiber.Ctx) int {
	n, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultTopN)))
	if err != nil || n < 1 {
		return defaultTopN
	}
	if n > 100 {
		return 100
	}
	return n
}

// Leaderboards read no per-user state; they only need the Gateway auth that
// guards everything.
func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	app.Get("/top/users/points", func(c *fiber.Ctx) error {
		standings, err := leaderboardService.TopUsersByNowPoints(topN(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"standings": standings})
	})

	app.Get("/top/users/lifetime", func(c *fiber.Ctx) error {
		standings, err := leaderboardService.TopUsersByAllPoints(topN(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"standings": standings})
	})

	app.Get("/top/users/cards", func(c *fiber.Ctx) error {
		standings, err := leaderboardService.TopUsersByCardCount(topN(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"standings": standings})
	})

	app.Get("/top/clans", func(c *fiber.Ctx) error {
		standings, err := leaderboardService.TopClansByPoints(topN(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load clan leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"standings": standings})
	})
}
