// handlers/chat_routes.go
package handlers

import (
	"log"

	"card-reward-system/middleware"
	"card-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

// chatIDFrom resolves the target chat: explicit body/query value first, then
// the Gateway's X-Chat-ID header.
func chatIDFrom(c *fiber.Ctx, bodyChatID int64) (int64, bool) {
	if bodyChatID != 0 {
		return bodyChatID, true
	}
	return middleware.ChatID(c)
}

func SetupChatRoutes(app *fiber.App, chatConfigService *services.ChatConfigService, cleanupService *services.CleanupService, directory *services.DirectoryService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/chats/config/toggle", func(c *fiber.Ctx) error {
		var body struct {
			ChatID int64 `json:"chat_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		chatID, ok := chatIDFrom(c, body.ChatID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chat_id required"})
		}

		if err := directory.RegisterChat(chatID); err != nil {
			log.Printf("[DIRECTORY] Failed to register chat %d: %v", chatID, err)
		}

		enabled, err := chatConfigService.Toggle(chatID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to toggle auto-delete",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"chat_id": chatID, "auto_delete_enabled": enabled})
	})

	secured.Post("/chats/config/delay", func(c *fiber.Ctx) error {
		var body struct {
			ChatID  int64 `json:"chat_id"`
			Minutes int   `json:"minutes"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		chatID, ok := chatIDFrom(c, body.ChatID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chat_id required"})
		}
		if body.Minutes < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "minutes must not be negative"})
		}

		if err := chatConfigService.SetDelay(chatID, body.Minutes); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to set auto-delete delay",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"chat_id": chatID, "auto_delete_minutes": body.Minutes})
	})

	secured.Get("/chats/config", func(c *fiber.Ctx) error {
		chatID, ok := chatIDFrom(c, int64(c.QueryInt("chat_id")))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chat_id required"})
		}

		cfg, err := chatConfigService.Get(chatID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load chat config",
				"cause": err.Error(),
			})
		}
		return c.JSON(cfg)
	})

	// The Gateway calls this after posting a card so the message IDs it just
	// got back can be cleaned up later.
	secured.Post("/chats/cleanup", func(c *fiber.Ctx) error {
		var body struct {
			ChatID     int64 `json:"chat_id"`
			MessageIDs []int `json:"message_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		chatID, ok := chatIDFrom(c, body.ChatID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chat_id required"})
		}
		if len(body.MessageIDs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message_ids required"})
		}

		cleanupService.Schedule(chatID, body.MessageIDs...)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"scheduled": true})
	})
}
