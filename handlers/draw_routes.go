// handlers/draw_routes.go
package handlers

import (
	"errors"
	"log"
	"time"

	"card-reward-system/middleware"
	"card-reward-system/models"
	"card-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDrawRoutes(app *fiber.App, drawService *services.DrawService, catalog *services.CatalogService, directory *services.DirectoryService) {
	// 🔐 Secured routes — require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/draw", func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		displayName := middleware.DisplayName(c)

		// Directory registration is best-effort and never blocks a draw.
		if err := directory.RegisterUser(userID); err != nil {
			log.Printf("[DIRECTORY] Failed to register user %d: %v", userID, err)
		}
		if chatID, ok := middleware.ChatID(c); ok {
			if err := directory.RegisterChat(chatID); err != nil {
				log.Printf("[DIRECTORY] Failed to register chat %d: %v", chatID, err)
			}
		}

		result, err := drawService.RequestDraw(userID, displayName, time.Now())
		if err != nil {
			var cooldown *services.CooldownError
			if errors.As(err, &cooldown) {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":               "draw cooldown active",
					"retry_after_seconds": int(cooldown.Remaining.Seconds()),
				})
			}
			var noCards *services.NoCardsForTierError
			if errors.As(err, &noCards) {
				// The roll was not consumed; the user may retry immediately.
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":     "no cards available for rolled tier",
					"rarity":    noCards.Rarity,
					"retryable": true,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "draw failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(result)
	})

	secured.Get("/profile", func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)

		ledger, err := drawService.GetLedger(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "user has not drawn any cards yet",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}

		rarityFilter := c.Query("rarity")
		if rarityFilter != "" && !models.IsValidRarity(rarityFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown rarity",
			})
		}

		// Resolve owned card IDs against the catalog snapshot. Cards that
		// vanished from the catalog (should not happen, it is append-only)
		// are skipped.
		var cards []models.Card
		countsByRarity := map[string]int{}
		for _, id := range ledger.Cards {
			card, ok := catalog.Get(id)
			if !ok {
				continue
			}
			countsByRarity[card.Rarity]++
			if rarityFilter == "" || card.Rarity == rarityFilter {
				cards = append(cards, card)
			}
		}

		return c.JSON(fiber.Map{
			"user_id":      ledger.UserID,
			"display_name": ledger.DisplayName,
			"now_points":   ledger.NowPoints,
			"all_points":   ledger.AllPoints,
			"last_draw_at": ledger.LastDrawAt,
			"card_count":   len(ledger.Cards),
			"by_rarity":    countsByRarity,
			"cards":        cards,
		})
	})
}
