// handlers/admin_routes.go
package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"card-reward-system/middleware"
	"card-reward-system/models"
	"card-reward-system/services"
	"card-reward-system/utils"
	"card-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func SetupAdminRoutes(app *fiber.App, catalog *services.CatalogService, drawService *services.DrawService, clanService *services.ClanService, directory *services.DirectoryService, backupWorker *workers.BackupWorker) {
	// 🔐 Admin routes — user context plus operator allowlist
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())

	// Multipart form: name, rarity, media_kind + the media file itself.
	// The file goes to R2 first; the catalog row stores the CDN URL.
	admin.Post("/cards", func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		rarity := c.FormValue("rarity")
		mediaKind := c.FormValue("media_kind", models.MediaKindPhoto)

		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
		}
		if !models.IsValidRarity(rarity) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown rarity"})
		}
		if mediaKind != models.MediaKindPhoto && mediaKind != models.MediaKindAnimation {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown media kind"})
		}

		fileHeader, err := c.FormFile("media")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "media file required"})
		}

		key := fmt.Sprintf("cards/%s-%s%s", slug.Make(name), uuid.NewString(), filepath.Ext(fileHeader.Filename))
		mediaURL, err := utils.UploadFileToR2(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload media",
				"cause": err.Error(),
			})
		}

		card, err := catalog.Add(name, rarity, mediaKind, mediaURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create card",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(card)
	})

	admin.Get("/cards", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"count": catalog.Count(),
			"cards": catalog.All(),
		})
	})

	admin.Post("/reset-cooldown", func(c *fiber.Ctx) error {
		var body struct {
			UserID int64 `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id required"})
		}

		if err := drawService.ResetCooldown(body.UserID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset cooldown",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"user_id": body.UserID, "cooldown_reset": true})
	})

	admin.Get("/stats", func(c *fiber.Ctx) error {
		users, chats, err := directory.Stats()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load stats",
				"cause": err.Error(),
			})
		}

		var clans int64
		if err := clanService.DB.Model(&models.Clan{}).Count(&clans).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to count clans",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"known_users": users,
			"known_chats": chats,
			"clans":       clans,
			"cards":       catalog.Count(),
		})
	})

	// Recipient lists for broadcasts; the Gateway does the actual sending.
	admin.Get("/broadcast-targets", func(c *fiber.Ctx) error {
		userIDs, err := directory.UserIDs()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load user targets",
				"cause": err.Error(),
			})
		}
		chatIDs, err := directory.ChatIDs()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load chat targets",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"user_ids": userIDs, "chat_ids": chatIDs})
	})

	admin.Post("/backup", func(c *fiber.Ctx) error {
		url, err := backupWorker.Run()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "backup failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
